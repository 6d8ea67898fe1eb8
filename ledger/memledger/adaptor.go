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

package memledger

import (
	"sync"

	"github.com/interledger-labs/ilp-node"
	"github.com/interledger-labs/ilp-node/ledger"
	"github.com/interledger-labs/ilp-node/log"
)

// Adaptor implements the ilp.LedgerAdaptor contract on top of an in-memory
// Ledger. It is bound to exactly one account, which authorizes its
// receiver-side operations, and it owns one event dispatcher, so each party
// observes its events in raise order regardless of the others.
type Adaptor struct {
	log.Logger

	ledger     *Ledger
	own        ilp.Address
	dispatcher *ledger.Dispatcher

	mtx           sync.Mutex
	connected     bool
	subscriptions map[string]struct{}
}

// NewAdaptor returns an adaptor bound to the given account, initially
// disconnected.
//
// If there is an error, it will be an APIError with code ErrAccountNotFound.
func (l *Ledger) NewAdaptor(own ilp.Address) (*Adaptor, ilp.APIError) {
	if !l.hasAccount(own) {
		return nil, ilp.NewAPIErrAccountNotFound(own.String())
	}
	logger := log.NewDerivedLoggerWithField(l.Logger, "account", own.String())
	a := &Adaptor{
		Logger:        logger,
		ledger:        l,
		own:           own,
		dispatcher:    ledger.NewDispatcher(logger),
		subscriptions: make(map[string]struct{}),
	}
	l.attach(a)
	return a, nil
}

// Connect establishes the connection to the ledger. It returns immediately;
// the outcome is reported via a Connect event. Connecting an already
// connected adaptor is a no-op.
func (a *Adaptor) Connect() {
	go func() {
		a.mtx.Lock()
		if a.connected {
			a.mtx.Unlock()
			return
		}
		a.connected = true
		a.mtx.Unlock()

		a.Debug("Connected to ledger")
		a.dispatcher.Raise(ilp.ConnectEvent{Info: a.ledger.Info()})
	}()
}

// IsConnected returns an instantaneous snapshot of the connection state.
func (a *Adaptor) IsConnected() bool {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return a.connected
}

// Disconnect tears down the connection and raises a Disconnect event. It is
// idempotent.
func (a *Adaptor) Disconnect() {
	a.mtx.Lock()
	if !a.connected {
		a.mtx.Unlock()
		return
	}
	a.connected = false
	a.mtx.Unlock()

	a.Debug("Disconnected from ledger")
	a.dispatcher.Raise(ilp.DisconnectEvent{})
}

// SetEventHandler registers the single event handler for this adaptor,
// replacing and detaching any previously registered one. Events raised while
// no handler is registered are buffered and delivered once one is.
func (a *Adaptor) SetEventHandler(handler ilp.LedgerEventHandler) {
	a.dispatcher.SetHandler(handler)
}

// GetLedgerInfo returns the static description of the attached ledger.
func (a *Adaptor) GetLedgerInfo() ilp.LedgerInfo {
	return a.ledger.Info()
}

// SendMessage delivers an opaque message to a peer account on the ledger.
// The From and Ledger fields are stamped by this adaptor; values set by the
// caller are ignored.
//
// If there is an error, it will be one of the following codes:
// - ErrNotConnected when the adaptor is not connected.
// - ErrInvalidArgument when the recipient address is not an account address.
// - ErrAccountNotFound when the recipient account is not known.
func (a *Adaptor) SendMessage(msg ilp.Message) ilp.APIError {
	if !a.IsConnected() {
		return ilp.NewAPIErrNotConnected(a.ledger.Info().Prefix.String())
	}
	msg.From = a.own
	return a.ledger.message(msg)
}

// SendTransfer initiates a ledger-local transfer from the adaptor's own
// account, driving it from Proposed to Prepared. The Sender field is stamped
// by this adaptor; a value set by the caller is ignored.
//
// If there is an error, it will be one of the following codes:
// - ErrNotConnected when the adaptor is not connected.
// - ErrInvalidArgument when the transfer is malformed.
// - ErrAccountNotFound when the receiver account is not known.
// - ErrDuplicateTransfer when the transfer ID was already submitted.
// - ErrInsufficientFunds when the sender cannot cover the amount.
func (a *Adaptor) SendTransfer(transfer ilp.Transfer) ilp.APIError {
	if !a.IsConnected() {
		return ilp.NewAPIErrNotConnected(a.ledger.Info().Prefix.String())
	}
	transfer.Sender = a.own
	return a.ledger.prepare(transfer)
}

// RejectTransfer rejects a prepared transfer, returning the escrowed funds
// to the sender. Authorization is checked against the ledger's own record of
// the transfer, so only the adaptor bound to the receiver account succeeds.
//
// If there is an error, it will be one of the following codes:
// - ErrNotConnected when the adaptor is not connected.
// - ErrInvalidArgument when the reason carries an unknown rejection code.
// - ErrUnauthorized when this adaptor's account is not the receiver.
// - ErrInvalidState when the transfer is unknown or not in Prepared.
func (a *Adaptor) RejectTransfer(transfer ilp.Transfer, reason ilp.RejectionReason) ilp.APIError {
	if !a.IsConnected() {
		return ilp.NewAPIErrNotConnected(a.ledger.Info().Prefix.String())
	}
	if !reason.Code.Valid() {
		return ilp.NewAPIErrInvalidArgument(ArgNameRejectionCode, string(reason.Code),
			"rejection code must be one of the defined codes")
	}
	return a.ledger.reject(transfer.ID, a.own, reason)
}

// GetAccountInfo returns a snapshot of the given account. It is a read-only
// query and is allowed while disconnected.
//
// If there is an error, it will be one of the following codes:
// - ErrAccountNotFound when the address is not known to the ledger.
func (a *Adaptor) GetAccountInfo(addr ilp.Address) (ilp.AccountInfo, ilp.APIError) {
	return a.ledger.accountInfo(addr)
}

// SubscribeToAccountNotifications registers interest in the given account,
// so that activity on it is surfaced as events on this adaptor. Subscribing
// twice to the same account is idempotent. Subscriptions are allowed while
// disconnected and take effect once connected.
//
// If there is an error, it will be one of the following codes:
// - ErrAccountNotFound when the address is not known to the ledger.
func (a *Adaptor) SubscribeToAccountNotifications(addr ilp.Address) ilp.APIError {
	if !a.ledger.hasAccount(addr) {
		return ilp.NewAPIErrAccountNotFound(addr.String())
	}
	a.mtx.Lock()
	a.subscriptions[addr.String()] = struct{}{}
	a.mtx.Unlock()
	return nil
}

// GetConnectors returns the currently known set of connector addresses on
// the ledger, as a snapshot in canonical order.
func (a *Adaptor) GetConnectors() ([]ilp.Address, ilp.APIError) {
	return a.ledger.connectors(), nil
}

// Close stops the adaptor's event delivery. Buffered events are dropped. It
// is intended for teardown; a closed adaptor cannot be reused.
func (a *Adaptor) Close() {
	a.dispatcher.Close()
}

// interestedIn reports whether any of the given accounts is the adaptor's
// own account or one of its subscriptions. Events with no account scope
// (connection lifecycle) are raised directly on the dispatcher and never
// pass through here.
func (a *Adaptor) interestedIn(accounts []ilp.Address) bool {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	for _, acc := range accounts {
		if acc == a.own {
			return true
		}
		if _, ok := a.subscriptions[acc.String()]; ok {
			return true
		}
	}
	return false
}

// deliver hands a routed ledger event to this adaptor's dispatcher. Events
// routed while the adaptor is disconnected are dropped, matching the
// behavior of a ledger connection that is actually down.
func (a *Adaptor) deliver(event ilp.LedgerEvent) {
	if !a.IsConnected() {
		a.Debugf("Dropping event while disconnected: %T", event)
		return
	}
	a.dispatcher.Raise(event)
}
