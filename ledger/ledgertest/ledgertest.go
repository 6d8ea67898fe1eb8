// Copyright (c) 2023 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/interledger-labs/ilp-node
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ledgertest provides fixtures to set up in-memory ledgers and
// observe the events raised by their adaptors in tests.
package ledgertest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/interledger-labs/ilp-node"
	"github.com/interledger-labs/ilp-node/directory/local"
	"github.com/interledger-labs/ilp-node/ledger/memledger"
)

// Parameters of the ledger set up by NewLedgerT. The three accounts are
// funded so that alice can pay bob, while chloe doubles as the resident
// connector.
const (
	Prefix = "g.sandbox.usd."

	AliceSegment = "alice"
	BobSegment   = "bob"
	ChloeSegment = "chloe"

	AliceBalance = "100.00"
	BobBalance   = "50.00"
	ChloeBalance = "1000.00"
)

// eventTimeout bounds how long tests wait for an expected event.
const eventTimeout = 10 * time.Second

// noEventWindow is how long AssertNoEvent watches for stray events.
const noEventWindow = 100 * time.Millisecond

// NewConfig returns the configuration of the standard test ledger.
func NewConfig() memledger.Config {
	return memledger.Config{
		LedgerPrefix: Prefix,
		Currency:     "USD",
		Decimals:     2,
		Accounts: []memledger.AccountConfig{
			{Segment: AliceSegment, Name: "Alice", Balance: AliceBalance},
			{Segment: BobSegment, Name: "Bob", Balance: BobBalance},
			{Segment: ChloeSegment, Name: "Chloe", Balance: ChloeBalance},
		},
	}
}

// NewLedgerT sets up the standard test ledger without a connector directory.
func NewLedgerT(t *testing.T) *memledger.Ledger {
	t.Helper()

	l, apiErr := memledger.New(NewConfig(), nil)
	require.Nil(t, apiErr)
	return l
}

// NewLedgerWithDirectoryT sets up the standard test ledger with a file
// backed connector directory holding the given connector addresses.
func NewLedgerWithDirectoryT(t *testing.T, directoryFile string) *memledger.Ledger {
	t.Helper()

	d, err := local.New(directoryFile)
	require.NoError(t, err)
	l, apiErr := memledger.New(NewConfig(), d)
	require.Nil(t, apiErr)
	return l
}

// Addr returns the account address for the given segment on the standard
// test ledger.
func Addr(t *testing.T, segment string) ilp.Address {
	t.Helper()

	prefix, apiErr := ilp.ParseAddress(Prefix)
	require.Nil(t, apiErr)
	addr, apiErr := prefix.WithSegment(segment)
	require.Nil(t, apiErr)
	return addr
}

// EventRecorder records the events delivered to one adaptor, for tests to
// consume one at a time in delivery order.
type EventRecorder struct {
	events chan ilp.LedgerEvent
}

// NewEventRecorder returns an event recorder with room for the events of one
// test scenario.
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{
		events: make(chan ilp.LedgerEvent, 64),
	}
}

// Handler returns the handler to register on the adaptor under test.
func (r *EventRecorder) Handler() ilp.LedgerEventHandler {
	return func(e ilp.LedgerEvent) {
		r.events <- e
	}
}

// NextEvent returns the next recorded event, waiting for it if necessary.
// The test fails fatally if no event arrives within the timeout.
func (r *EventRecorder) NextEvent(t *testing.T) ilp.LedgerEvent {
	t.Helper()

	select {
	case e := <-r.events:
		return e
	case <-time.After(eventTimeout):
		t.Fatal("timeout waiting for ledger event")
		return nil
	}
}

// AssertNoEvent asserts that no event is delivered within a short watch
// window. Use it to pin down that an operation raised nothing.
func (r *EventRecorder) AssertNoEvent(t *testing.T) {
	t.Helper()

	select {
	case e := <-r.events:
		t.Fatalf("expected no ledger event, got %T: %+v", e, e)
	case <-time.After(noEventWindow):
	}
}

// NewConnectedAdaptorT returns an adaptor for the given account segment,
// with the recorder's handler registered, connected, and the Connect event
// already consumed.
func NewConnectedAdaptorT(t *testing.T, l *memledger.Ledger, segment string) (*memledger.Adaptor, *EventRecorder) {
	t.Helper()

	a, apiErr := l.NewAdaptor(Addr(t, segment))
	require.Nil(t, apiErr)
	t.Cleanup(a.Close)

	r := NewEventRecorder()
	a.SetEventHandler(r.Handler())
	a.Connect()

	e := r.NextEvent(t)
	connected, ok := e.(ilp.ConnectEvent)
	require.True(t, ok, "first event should report the connection")
	require.Equal(t, Prefix, connected.Info.Prefix.String())
	return a, r
}
