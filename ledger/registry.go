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

package ledger

import (
	"sync"
	"time"

	"github.com/interledger-labs/ilp-node"
)

// TransferRegistry tracks the lifecycle status of the transfers held by one
// ledger, together with their expiry timers.
//
// All transitions go through a single mutex-guarded step, so that of the
// racing terminal transitions (execute, reject, expire) exactly the first
// one wins and all others degrade to no-ops. The expiry timer of a transfer
// is cancelled exactly once, by whichever terminal transition wins.
type TransferRegistry struct {
	mtx     sync.Mutex
	entries map[string]*transferEntry
}

type transferEntry struct {
	transfer ilp.Transfer
	status   ilp.TransferStatus
	timer    *time.Timer
}

// NewTransferRegistry returns an empty transfer registry.
func NewTransferRegistry() *TransferRegistry {
	return &TransferRegistry{
		entries: make(map[string]*transferEntry),
	}
}

// Add registers a new transfer in the Proposed status.
//
// If there is an error, it will be an APIError with code ErrDuplicateTransfer:
// re-submitting an already known transfer ID has no effect, so funds are
// never double-reserved.
func (r *TransferRegistry) Add(transfer ilp.Transfer) ilp.APIError {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.entries[transfer.ID]; ok {
		return ilp.NewAPIErrDuplicateTransfer(transfer.ID)
	}
	r.entries[transfer.ID] = &transferEntry{
		transfer: transfer.Clone(),
		status:   ilp.TransferProposed,
	}
	return nil
}

// Get returns the transfer and its current status.
func (r *TransferRegistry) Get(id string) (ilp.Transfer, ilp.TransferStatus, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return ilp.Transfer{}, 0, false
	}
	return entry.transfer.Clone(), entry.status, true
}

// Transition atomically moves the transfer to the given status, if that is a
// valid next step from its current status. It returns a snapshot of the
// transfer and whether the transition was taken.
//
// Valid steps are Proposed to Prepared and Prepared to exactly one of
// Executed, Rejected or Expired. A transfer already in a terminal status
// stays there: the first terminal transition wins and all later attempts
// report false.
//
// Reaching a terminal status stops the expiry timer, if one is armed.
func (r *TransferRegistry) Transition(id string, to ilp.TransferStatus) (ilp.Transfer, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	entry, ok := r.entries[id]
	if !ok || !validStep(entry.status, to) {
		return ilp.Transfer{}, false
	}
	entry.status = to
	if to.IsTerminal() && entry.timer != nil {
		entry.timer.Stop()
		entry.timer = nil
	}
	return entry.transfer.Clone(), true
}

func validStep(from, to ilp.TransferStatus) bool {
	switch to {
	case ilp.TransferPrepared:
		return from == ilp.TransferProposed
	case ilp.TransferExecuted, ilp.TransferRejected, ilp.TransferExpired:
		return from == ilp.TransferPrepared
	}
	return false
}

// ArmExpiry arms the expiry timer of a prepared transfer. When the deadline
// passes, the registry attempts the Prepared to Expired transition itself
// and invokes onExpired only if that transition won; if the transfer already
// executed or was rejected, the firing timer is a no-op.
//
// Arming is skipped for transfers that are not in the Prepared status or
// already carry a timer.
func (r *TransferRegistry) ArmExpiry(id string, at time.Time, onExpired func(ilp.Transfer)) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	entry, ok := r.entries[id]
	if !ok || entry.status != ilp.TransferPrepared || entry.timer != nil {
		return
	}
	entry.timer = time.AfterFunc(time.Until(at), func() {
		if transfer, ok := r.Transition(id, ilp.TransferExpired); ok {
			onExpired(transfer)
		}
	})
}

// Statuses returns the status of every known transfer, keyed by transfer ID.
// It is a snapshot for inspection, not a live view.
func (r *TransferRegistry) Statuses() map[string]ilp.TransferStatus {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	statuses := make(map[string]ilp.TransferStatus, len(r.entries))
	for id, entry := range r.entries {
		statuses[id] = entry.status
	}
	return statuses
}
