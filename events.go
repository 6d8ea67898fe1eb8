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

package ilp

// LedgerEvent is the tagged union of all notifications a ledger adaptor
// raises towards its handler.
//
// An event is an immutable snapshot owned by the dispatcher. Handlers must
// not retain mutable references into adaptor-internal state through it.
//
// Events are delivered in the order the underlying ledger observed them for
// the same transfer or account; no ordering is guaranteed across unrelated
// transfers.
type LedgerEvent interface {
	// ledgerEvent seals the union: only the event types defined in this
	// package can be dispatched.
	ledgerEvent()
}

type (
	// ConnectEvent reports that the adaptor established its connection to
	// the ledger. It is the only way a Connect call reports success.
	ConnectEvent struct {
		Info LedgerInfo
	}

	// DisconnectEvent reports that the adaptor lost or tore down its
	// connection. Connectivity failures are surfaced only this way, never
	// as errors on unrelated calls.
	DisconnectEvent struct {
		// Reason is a human-readable cause, empty for a deliberate
		// disconnect.
		Reason string
	}

	// TransferPreparedEvent reports that a transfer reached the Prepared
	// status and the sender's funds are escrowed.
	TransferPreparedEvent struct {
		Transfer Transfer
	}

	// TransferExecutedEvent reports that the correct fulfillment was
	// presented before expiry and the escrowed funds moved to the
	// receiver. It is raised to the handlers of both sides.
	TransferExecutedEvent struct {
		Transfer    Transfer
		Fulfillment Fulfillment
	}

	// TransferRejectedEvent reports that a prepared transfer did not
	// execute: either the receiver rejected it, or it expired, in which
	// case the reason code is RejectedExpired. The escrowed funds are back
	// with the sender.
	TransferRejectedEvent struct {
		Transfer Transfer
		Reason   RejectionReason
	}

	// MessageReceivedEvent reports an incoming application message for an
	// account this adaptor is interested in.
	MessageReceivedEvent struct {
		Message Message
	}
)

func (ConnectEvent) ledgerEvent()          {}
func (DisconnectEvent) ledgerEvent()       {}
func (TransferPreparedEvent) ledgerEvent() {}
func (TransferExecutedEvent) ledgerEvent() {}
func (TransferRejectedEvent) ledgerEvent() {}
func (MessageReceivedEvent) ledgerEvent()  {}
