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

import (
	"crypto/sha256"
	"crypto/subtle"
	"math/big"
	"time"
)

// Condition is a 32-byte SHA-256 commitment that must be satisfied for a
// conditional transfer to execute.
type Condition [32]byte

// Fulfillment is the preimage proving a Condition.
type Fulfillment []byte

// NewCondition returns the condition committed to by the given fulfillment.
func NewCondition(f Fulfillment) Condition {
	return sha256.Sum256(f)
}

// IsSatisfiedBy reports whether the given fulfillment proves this condition.
// The comparison is constant time.
func (c Condition) IsSatisfiedBy(f Fulfillment) bool {
	sum := sha256.Sum256(f)
	return subtle.ConstantTimeCompare(sum[:], c[:]) == 1
}

// TransferStatus enumerates the lifecycle states of a ledger-local transfer.
//
// Valid transitions are Proposed to Prepared and Prepared to exactly one of
// Executed, Rejected or Expired. The status is tracked by the ledger adaptor
// holding the transfer, never by the Transfer value itself: each transition
// is represented by a corresponding LedgerEvent, so that past events remain
// replayable and auditable.
type TransferStatus uint8

// Enumeration of transfer statuses.
const (
	// TransferProposed is the initial status of a transfer submitted via
	// SendTransfer, before the ledger has reserved the sender's funds.
	TransferProposed TransferStatus = iota

	// TransferPrepared means the sender's funds are escrowed: unavailable
	// to the sender, not yet credited to the receiver.
	TransferPrepared

	// TransferExecuted means the correct fulfillment was presented before
	// expiry and the escrowed funds moved atomically to the receiver.
	TransferExecuted

	// TransferRejected means the receiver rejected the transfer before the
	// condition was fulfilled and the escrowed funds returned to the
	// sender.
	TransferRejected

	// TransferExpired means neither execution nor rejection occurred before
	// the transfer's expiry and the ledger reverted the escrow on its own.
	TransferExpired
)

// String implements the stringer interface for TransferStatus.
func (s TransferStatus) String() string {
	if s > TransferExpired {
		return "unknown"
	}
	return [...]string{
		"proposed",
		"prepared",
		"executed",
		"rejected",
		"expired",
	}[s]
}

// IsTerminal reports whether no further transition is possible from this
// status.
func (s TransferStatus) IsTerminal() bool {
	return s == TransferExecuted || s == TransferRejected || s == TransferExpired
}

// Transfer is a ledger-local conditional transfer. It is immutable once
// prepared; only its status evolves, and that is tracked by the adaptor
// holding the transfer.
type Transfer struct {
	// ID identifies the transfer on its ledger. Re-submitting a known ID
	// fails with ErrDuplicateTransfer and never double-reserves funds.
	ID string

	// Sender and Receiver are the two accounts of the transfer on this
	// ledger. For a multi-hop payment these are the hop-local accounts, not
	// the end-to-end parties.
	Sender   Address
	Receiver Address

	// Amount in the smallest indivisible unit of the ledger's asset.
	Amount *big.Int

	// Condition gating execution. Nil for an unconditional transfer, which
	// executes immediately through a zero-length Prepared window.
	Condition *Condition

	// ExpiresAt is the instant at which a still-prepared transfer is
	// reverted by the ledger on its own. The zero value means no expiry.
	ExpiresAt time.Time

	// Packet is the interledger payment carried opaquely by this transfer
	// leg, preserved byte-for-byte across hops.
	Packet PaymentPacket
}

// Clone returns a deep copy of the transfer, so that snapshots handed to
// event handlers share no mutable state with adaptor internals.
func (t Transfer) Clone() Transfer {
	c := t
	if t.Amount != nil {
		c.Amount = new(big.Int).Set(t.Amount)
	}
	if t.Condition != nil {
		cond := *t.Condition
		c.Condition = &cond
	}
	return c
}

// RejectionCode enumerates the closed set of reasons for which a receiving
// side rejects a transfer.
type RejectionCode string

// Enumeration of rejection codes.
const (
	RejectedExpired             RejectionCode = "expired"
	RejectedInsufficientFunds   RejectionCode = "insufficient-funds"
	RejectedInvalidFulfillment  RejectionCode = "invalid-fulfillment"
	RejectedReceiverUnreachable RejectionCode = "receiver-unreachable"
	RejectedCancelled           RejectionCode = "cancelled"
)

// Valid reports whether the code is one of the defined rejection codes.
func (c RejectionCode) Valid() bool {
	switch c {
	case RejectedExpired, RejectedInsufficientFunds, RejectedInvalidFulfillment,
		RejectedReceiverUnreachable, RejectedCancelled:
		return true
	}
	return false
}

// RejectionReason is the reason attached to a rejected transfer: one of the
// closed set of codes plus a free-text explanation.
type RejectionReason struct {
	Code        RejectionCode
	Explanation string
}

// String implements the stringer interface for RejectionReason.
func (r RejectionReason) String() string {
	if r.Explanation == "" {
		return string(r.Code)
	}
	return string(r.Code) + ": " + r.Explanation
}
