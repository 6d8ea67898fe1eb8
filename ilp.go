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

// Package ilp defines the protocol core of an interledger payment network:
// the canonical address scheme, the payment packet carried across ledger
// hops, the ledger-local transfer model and the uniform, event-driven
// contract through which a connector drives any underlying ledger.
//
// Concrete ledger integrations, inter-connector transport and routing table
// computation are external collaborators. They interact with this core only
// through the interfaces and value types defined here.
package ilp

import (
	"math/big"
)

// LedgerInfo describes the ledger an adaptor is attached to. It is reported
// in the Connect event and can be queried at any time via GetLedgerInfo.
type LedgerInfo struct {
	// Prefix is the address scope of the ledger. All accounts on the ledger
	// are addressed underneath it.
	Prefix Address

	// CurrencySymbol identifies the ledger-native asset.
	CurrencySymbol string

	// Decimals is the scale of the smallest indivisible unit of the
	// ledger-native asset. All amounts in transfers and packets are
	// denominated in this unit.
	Decimals uint8
}

// AccountInfo is a read-only snapshot of an account on a ledger. It is not
// live-updated; query again for a fresh view.
type AccountInfo struct {
	Address Address

	// Name is the display name assigned by the ledger.
	Name string

	// CurrencySymbol and Decimals carry the ledger-native precision
	// metadata, so that the balance can be rendered without a separate
	// LedgerInfo lookup.
	CurrencySymbol string
	Decimals       uint8

	// Balance available to the account at snapshot time, in the smallest
	// indivisible unit. Escrowed funds are excluded.
	Balance *big.Int
}

// Message is an opaque application message exchanged between two accounts of
// the same ledger. The core never interprets the data.
type Message struct {
	// Ledger is the prefix of the ledger carrying the message.
	Ledger Address

	From Address
	To   Address

	Data []byte
}

// LedgerEventHandler consumes the events raised by one adaptor. At most one
// handler is active per adaptor at any time.
//
// Events for the same adaptor are delivered sequentially, so a handler need
// not synchronize state it owns privately. The same handler registered on
// multiple adaptors may however be invoked concurrently by each of them and
// must guard any state shared across adaptors itself.
type LedgerEventHandler func(LedgerEvent)

// LedgerAdaptor is the uniform operation set through which a connector
// drives one attached ledger. A connector holds one adaptor per ledger.
//
// All mutating operations are non-blocking from the caller's perspective:
// they either fail synchronously on a local precondition or hand off to the
// ledger and complete via a later event. Ledger-reported outcomes
// (execution, rejection, expiry) are never returned from these calls; they
// are always delivered as events.
type LedgerAdaptor interface {
	// Connect asynchronously establishes the connection to the ledger.
	// It returns immediately; success or failure is reported solely via a
	// later Connect or Disconnect event.
	Connect()

	// IsConnected returns an instantaneous snapshot of the connection
	// state. It may be stale by the time the caller acts on it.
	IsConnected() bool

	// Disconnect tears down the connection. It is idempotent and safe to
	// call when already disconnected.
	Disconnect()

	// SetEventHandler registers the single event handler for this adaptor,
	// replacing and detaching any previously registered one. Events raised
	// before the first handler is registered are buffered and delivered
	// once one is.
	SetEventHandler(handler LedgerEventHandler)

	// GetLedgerInfo returns the static description of the attached ledger.
	GetLedgerInfo() LedgerInfo

	// SendMessage delivers an opaque message to a peer account on the
	// ledger, best-effort and at most once.
	//
	// If there is an error, it will be one of the following codes:
	// - ErrNotConnected when the adaptor is not connected.
	// - ErrInvalidArgument when the message is malformed.
	// - ErrAccountNotFound when the recipient account is not known.
	SendMessage(msg Message) APIError

	// SendTransfer initiates a ledger-local transfer, driving it from
	// Proposed to Prepared. For a conditional transfer the sender's funds
	// are escrowed until execution, rejection or expiry; an unconditional
	// transfer executes immediately through a zero-length Prepared window.
	//
	// If there is an error, it will be one of the following codes:
	// - ErrNotConnected when the adaptor is not connected.
	// - ErrInvalidArgument when the transfer is malformed.
	// - ErrAccountNotFound when either account is not known.
	// - ErrDuplicateTransfer when the transfer ID was already submitted.
	// - ErrInsufficientFunds when the sender cannot cover the amount.
	SendTransfer(transfer Transfer) APIError

	// RejectTransfer rejects a prepared transfer, returning the escrowed
	// funds to the sender. Only the receiver of the transfer may reject it;
	// this is enforced as a precondition, not merely a convention.
	//
	// If there is an error, it will be one of the following codes:
	// - ErrNotConnected when the adaptor is not connected.
	// - ErrInvalidArgument when the reason is not a valid rejection reason.
	// - ErrUnauthorized when the caller is not the transfer's receiver.
	// - ErrInvalidState when the transfer is not in the Prepared state.
	RejectTransfer(transfer Transfer, reason RejectionReason) APIError

	// GetAccountInfo returns a snapshot of the given account.
	//
	// If there is an error, it will be one of the following codes:
	// - ErrAccountNotFound when the address is not known to the ledger.
	GetAccountInfo(addr Address) (AccountInfo, APIError)

	// SubscribeToAccountNotifications registers interest in the given
	// account, so that ledger-side activity on it is surfaced as events on
	// this adaptor. Subscribing twice to the same account is idempotent.
	//
	// If there is an error, it will be one of the following codes:
	// - ErrAccountNotFound when the address is not known to the ledger.
	SubscribeToAccountNotifications(addr Address) APIError

	// GetConnectors returns the currently known set of connector-owned
	// addresses on the ledger. The returned slice is a snapshot in
	// canonical order, not a live view.
	GetConnectors() ([]Address, APIError)
}

// ConnectorReader provides read access to the set of connector addresses
// known on a ledger.
type ConnectorReader interface {
	// Connectors returns a snapshot of all known connector addresses in
	// canonical (lexical) order.
	Connectors() []Address

	// IsKnown reports whether the given address is a known connector.
	IsKnown(addr Address) bool
}

// ConnectorDirectory provides read and write access to the locally cached
// set of connector addresses, and a function to sync the cache with its
// storage backend.
type ConnectorDirectory interface {
	ConnectorReader
	Add(addr Address) error
	Remove(addr Address) error
	UpdateStorage() error
}

// Currency represents a parser that can convert between the display string
// representation of an amount and its equivalent value in the smallest
// indivisible unit, represented as a big integer.
type Currency interface {
	Parse(string) (*big.Int, error)
	Print(*big.Int) string
	Symbol() string
}

// ROCurrencyRegistry provides an interface to retrieve currency parsers.
type ROCurrencyRegistry interface {
	IsRegistered(symbol string) bool
	Currency(symbol string) Currency
	Symbols() []string
}

// CurrencyRegistry provides an interface to register and retrieve currency
// parsers.
type CurrencyRegistry interface {
	ROCurrencyRegistry
	Register(symbol string, maxDecimals uint8) (Currency, error)
}
