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

package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interledger-labs/ilp-node"
	"github.com/interledger-labs/ilp-node/ledger"
	"github.com/interledger-labs/ilp-node/log"
)

const eventWait = 10 * time.Second

func newDispatcher(t *testing.T) *ledger.Dispatcher {
	t.Helper()
	d := ledger.NewDispatcher(log.NewLoggerWithField("test", t.Name()))
	t.Cleanup(d.Close)
	return d
}

func nextEvent(t *testing.T, events <-chan ilp.LedgerEvent) ilp.LedgerEvent {
	t.Helper()
	select {
	case e := <-events:
		return e
	case <-time.After(eventWait):
		t.Fatal("timeout waiting for event")
		return nil
	}
}

func Test_Dispatcher_DeliversInRaiseOrder(t *testing.T) {
	d := newDispatcher(t)
	events := make(chan ilp.LedgerEvent, 10)
	d.SetHandler(func(e ilp.LedgerEvent) { events <- e })

	for i := 0; i < 5; i++ {
		d.Raise(ilp.TransferPreparedEvent{Transfer: ilp.Transfer{ID: string(rune('a' + i))}})
	}
	for i := 0; i < 5; i++ {
		e := nextEvent(t, events)
		prepared, ok := e.(ilp.TransferPreparedEvent)
		require.True(t, ok)
		assert.Equal(t, string(rune('a'+i)), prepared.Transfer.ID)
	}
}

func Test_Dispatcher_BuffersUntilHandlerRegistered(t *testing.T) {
	d := newDispatcher(t)

	d.Raise(ilp.ConnectEvent{})
	d.Raise(ilp.DisconnectEvent{})

	events := make(chan ilp.LedgerEvent, 10)
	d.SetHandler(func(e ilp.LedgerEvent) { events <- e })

	assert.IsType(t, ilp.ConnectEvent{}, nextEvent(t, events))
	assert.IsType(t, ilp.DisconnectEvent{}, nextEvent(t, events))
}

func Test_Dispatcher_ReplaceHandler(t *testing.T) {
	d := newDispatcher(t)

	first := make(chan ilp.LedgerEvent, 10)
	d.SetHandler(func(e ilp.LedgerEvent) { first <- e })
	d.Raise(ilp.ConnectEvent{})
	nextEvent(t, first)

	second := make(chan ilp.LedgerEvent, 10)
	d.SetHandler(func(e ilp.LedgerEvent) { second <- e })
	d.Raise(ilp.DisconnectEvent{})

	assert.IsType(t, ilp.DisconnectEvent{}, nextEvent(t, second))
	select {
	case e := <-first:
		t.Fatalf("detached handler received event %T", e)
	case <-time.After(100 * time.Millisecond):
	}
}

func Test_Dispatcher_NilHandlerDetaches(t *testing.T) {
	d := newDispatcher(t)

	events := make(chan ilp.LedgerEvent, 10)
	d.SetHandler(func(e ilp.LedgerEvent) { events <- e })
	d.SetHandler(nil)
	d.Raise(ilp.ConnectEvent{})

	select {
	case e := <-events:
		t.Fatalf("detached handler received event %T", e)
	case <-time.After(100 * time.Millisecond):
	}

	// Re-registering delivers the event buffered while detached.
	d.SetHandler(func(e ilp.LedgerEvent) { events <- e })
	assert.IsType(t, ilp.ConnectEvent{}, nextEvent(t, events))
}

func Test_Dispatcher_Close(t *testing.T) {
	d := ledger.NewDispatcher(log.NewLoggerWithField("test", t.Name()))
	d.Close()
	d.Close() // close is idempotent

	// Events raised after close are dropped without panicking.
	d.Raise(ilp.ConnectEvent{})
}
