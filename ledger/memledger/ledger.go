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
	"math/big"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/interledger-labs/ilp-node"
	"github.com/interledger-labs/ilp-node/currency"
	"github.com/interledger-labs/ilp-node/ledger"
	"github.com/interledger-labs/ilp-node/log"
)

// Enumeration of valid argument names used in InvalidArgument errors raised
// by this package.
const (
	ArgNameTransferID     ilp.ArgumentName = "transferID"
	ArgNameAmount         ilp.ArgumentName = "amount"
	ArgNameSender         ilp.ArgumentName = "sender"
	ArgNameReceiver       ilp.ArgumentName = "receiver"
	ArgNameFulfillment    ilp.ArgumentName = "fulfillment"
	ArgNameRejectionCode  ilp.ArgumentName = "rejectionCode"
	ArgNameMessageTo      ilp.ArgumentName = "messageTo"
	ArgNameAccountAddress ilp.ArgumentName = "accountAddress"
)

// statusUnknown is reported in InvalidState errors for transfer IDs the
// ledger has never seen.
const statusUnknown = "unknown"

// Ledger is an in-memory ledger holding accounts, balances and conditional
// transfers for one ledger scope.
//
// All operations on a Ledger are safe for concurrent use. Parties interact
// with it only through Adaptor instances, except Fulfill, which is the
// ledger-side entry point through which a receiver presents a fulfillment
// out of band from the adaptor contract.
type Ledger struct {
	log.Logger

	info   ilp.LedgerInfo
	parser ilp.Currency

	mtx       sync.Mutex
	accounts  map[string]*account
	transfers *ledger.TransferRegistry
	adaptors  []*Adaptor
	directory ilp.ConnectorReader
}

type account struct {
	addr ilp.Address
	name string

	// balance available to the account; escrowed amounts are already
	// deducted from it and held by the pending transfer.
	balance *big.Int
}

// New sets up an in-memory ledger from the given configuration. The
// directory provides the set of connector addresses known on this ledger;
// it may be nil, in which case GetConnectors reports an empty set.
//
// If there is an error, it will be an APIError with code ErrInvalidConfig.
func New(cfg Config, directory ilp.ConnectorReader) (*Ledger, ilp.APIError) {
	prefix, apiErr := ilp.ParseAddress(cfg.LedgerPrefix)
	if apiErr != nil {
		return nil, ilp.NewAPIErrInvalidConfig(apiErr, "ledgerPrefix", cfg.LedgerPrefix)
	}
	if !prefix.IsPrefix() {
		return nil, ilp.NewAPIErrInvalidConfig(errors.New(
			"ledger prefix must end with the separator"), "ledgerPrefix", cfg.LedgerPrefix)
	}

	registry := currency.NewRegistry()
	parser, err := registry.Register(cfg.Currency, cfg.Decimals)
	if err != nil {
		return nil, ilp.NewAPIErrInvalidConfig(err, "currency", cfg.Currency)
	}

	l := &Ledger{
		Logger: log.NewLoggerWithField("ledger", cfg.LedgerPrefix),
		info: ilp.LedgerInfo{
			Prefix:         prefix,
			CurrencySymbol: cfg.Currency,
			Decimals:       cfg.Decimals,
		},
		parser:    parser,
		accounts:  make(map[string]*account),
		transfers: ledger.NewTransferRegistry(),
		directory: directory,
	}
	for _, acc := range cfg.Accounts {
		addr, apiErr := prefix.WithSegment(acc.Segment)
		if apiErr != nil {
			return nil, ilp.NewAPIErrInvalidConfig(apiErr, "accounts.segment", acc.Segment)
		}
		balance, err := parser.Parse(acc.Balance)
		if err != nil {
			return nil, ilp.NewAPIErrInvalidConfig(err, "accounts.balance", acc.Balance)
		}
		if _, ok := l.accounts[addr.String()]; ok {
			return nil, ilp.NewAPIErrInvalidConfig(errors.New(
				"account segment is used twice"), "accounts.segment", acc.Segment)
		}
		l.accounts[addr.String()] = &account{
			addr:    addr,
			name:    acc.Name,
			balance: balance,
		}
	}
	return l, nil
}

// Info returns the static description of the ledger.
func (l *Ledger) Info() ilp.LedgerInfo {
	return l.info
}

// Fulfill presents the fulfillment for a prepared conditional transfer,
// moving the escrowed funds atomically to the receiver and raising a
// TransferExecuted event to both sides.
//
// If there is an error, it will be one of the following codes:
// - ErrInvalidState when the transfer is unknown, not prepared or already
//   past its expiry (in which case the expiry transition is taken instead).
// - ErrInvalidArgument when the fulfillment does not satisfy the condition.
func (l *Ledger) Fulfill(transferID string, fulfillment ilp.Fulfillment) ilp.APIError {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	transfer, status, ok := l.transfers.Get(transferID)
	if !ok {
		return ilp.NewAPIErrInvalidState(transferID, statusUnknown, ilp.TransferPrepared.String())
	}
	if status != ilp.TransferPrepared {
		return ilp.NewAPIErrInvalidState(transferID, status.String(), ilp.TransferPrepared.String())
	}
	if transfer.Condition == nil {
		// Unreachable for transfers accepted by this ledger: unconditional
		// transfers never rest in Prepared.
		return ilp.NewAPIErrInvalidState(transferID, status.String(), ilp.TransferPrepared.String())
	}
	if !transfer.ExpiresAt.IsZero() && !time.Now().Before(transfer.ExpiresAt) {
		// The deadline passed but the timer has not won yet. Take the
		// expiry transition now rather than execute a stale transfer.
		if expired, ok := l.transfers.Transition(transferID, ilp.TransferExpired); ok {
			l.revertEscrow(expired, ilp.RejectionReason{
				Code:        ilp.RejectedExpired,
				Explanation: "transfer expired before a fulfillment was presented",
			})
		}
		return ilp.NewAPIErrInvalidState(transferID, ilp.TransferExpired.String(), ilp.TransferPrepared.String())
	}
	if !transfer.Condition.IsSatisfiedBy(fulfillment) {
		return ilp.NewAPIErrInvalidArgument(ArgNameFulfillment, "",
			"sha256 of the fulfillment must equal the transfer condition")
	}

	executed, ok := l.transfers.Transition(transferID, ilp.TransferExecuted)
	if !ok {
		return ilp.NewAPIErrInvalidState(transferID, statusUnknown, ilp.TransferPrepared.String())
	}
	l.accounts[executed.Receiver.String()].balance.Add(
		l.accounts[executed.Receiver.String()].balance, executed.Amount)
	l.WithField("transferID", transferID).Info("Transfer executed")
	l.route(ilp.TransferExecutedEvent{
		Transfer:    executed,
		Fulfillment: fulfillment,
	}, executed.Sender, executed.Receiver)
	return nil
}

// attach registers an adaptor for event routing.
func (l *Ledger) attach(a *Adaptor) {
	l.mtx.Lock()
	l.adaptors = append(l.adaptors, a)
	l.mtx.Unlock()
}

// prepare drives a submitted transfer from Proposed to Prepared, escrowing
// the sender's funds. An unconditional transfer continues immediately to
// Executed through a zero-length Prepared window, so that observers see the
// uniform Prepared then Executed event sequence.
func (l *Ledger) prepare(transfer ilp.Transfer) ilp.APIError {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if apiErr := l.validateTransfer(transfer); apiErr != nil {
		return apiErr
	}
	sender := l.accounts[transfer.Sender.String()]
	if sender.balance.Cmp(transfer.Amount) < 0 {
		return ilp.NewAPIErrInsufficientFunds(transfer.Sender.String(),
			sender.balance.Text(10), transfer.Amount.Text(10))
	}
	// Duplicate detection and escrow happen under the same lock, so a
	// re-submission can never double-reserve.
	if apiErr := l.transfers.Add(transfer); apiErr != nil {
		return apiErr
	}
	sender.balance.Sub(sender.balance, transfer.Amount)

	prepared, ok := l.transfers.Transition(transfer.ID, ilp.TransferPrepared)
	if !ok {
		return ilp.NewAPIErrUnknownInternal(errors.New("freshly added transfer could not be prepared"))
	}
	l.WithField("transferID", transfer.ID).Info("Transfer prepared")
	l.route(ilp.TransferPreparedEvent{Transfer: prepared}, prepared.Sender, prepared.Receiver)

	if prepared.Condition == nil {
		executed, ok := l.transfers.Transition(transfer.ID, ilp.TransferExecuted)
		if !ok {
			return ilp.NewAPIErrUnknownInternal(errors.New("unconditional transfer could not be executed"))
		}
		receiver := l.accounts[executed.Receiver.String()]
		receiver.balance.Add(receiver.balance, executed.Amount)
		l.WithField("transferID", transfer.ID).Info("Unconditional transfer executed")
		l.route(ilp.TransferExecutedEvent{Transfer: executed}, executed.Sender, executed.Receiver)
		return nil
	}

	if !prepared.ExpiresAt.IsZero() {
		l.transfers.ArmExpiry(transfer.ID, prepared.ExpiresAt, l.expire)
	}
	return nil
}

func (l *Ledger) validateTransfer(transfer ilp.Transfer) ilp.APIError {
	if transfer.ID == "" {
		return ilp.NewAPIErrInvalidArgument(ArgNameTransferID, "", "transfer ID must not be empty")
	}
	if transfer.Amount == nil || transfer.Amount.Sign() < 0 {
		return ilp.NewAPIErrInvalidArgument(ArgNameAmount, "", "amount must be a non-negative integer")
	}
	if transfer.Sender.IsZero() || transfer.Sender.IsPrefix() {
		return ilp.NewAPIErrInvalidArgument(ArgNameSender, transfer.Sender.String(),
			"sender must be an account address")
	}
	if transfer.Receiver.IsZero() || transfer.Receiver.IsPrefix() {
		return ilp.NewAPIErrInvalidArgument(ArgNameReceiver, transfer.Receiver.String(),
			"receiver must be an account address")
	}
	if _, ok := l.accounts[transfer.Sender.String()]; !ok {
		return ilp.NewAPIErrAccountNotFound(transfer.Sender.String())
	}
	if _, ok := l.accounts[transfer.Receiver.String()]; !ok {
		return ilp.NewAPIErrAccountNotFound(transfer.Receiver.String())
	}
	return nil
}

// reject is the receiver-side rejection of a prepared transfer. The caller
// is the account the rejecting adaptor is bound to; only the transfer's
// receiver is authorized.
func (l *Ledger) reject(transferID string, caller ilp.Address, reason ilp.RejectionReason) ilp.APIError {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	transfer, status, ok := l.transfers.Get(transferID)
	if !ok {
		return ilp.NewAPIErrInvalidState(transferID, statusUnknown, ilp.TransferPrepared.String())
	}
	// Authorization is checked against the ledger's own record of the
	// transfer, not against whatever the caller passed in.
	if transfer.Receiver != caller {
		return ilp.NewAPIErrUnauthorized(transferID, caller.String(), transfer.Receiver.String())
	}
	if status != ilp.TransferPrepared {
		return ilp.NewAPIErrInvalidState(transferID, status.String(), ilp.TransferPrepared.String())
	}

	rejected, ok := l.transfers.Transition(transferID, ilp.TransferRejected)
	if !ok {
		return ilp.NewAPIErrInvalidState(transferID, statusUnknown, ilp.TransferPrepared.String())
	}
	l.revertEscrow(rejected, reason)
	return nil
}

// expire is invoked by a transfer's expiry timer after it won the Prepared
// to Expired transition. It is the ledger's own timeout obligation and has
// no caller.
func (l *Ledger) expire(transfer ilp.Transfer) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.revertEscrow(transfer, ilp.RejectionReason{
		Code:        ilp.RejectedExpired,
		Explanation: "transfer expired before execution or rejection",
	})
}

// revertEscrow returns the escrowed amount to the sender and raises the
// TransferRejected event. Callers must hold l.mtx and have already taken
// the terminal transition.
func (l *Ledger) revertEscrow(transfer ilp.Transfer, reason ilp.RejectionReason) {
	sender := l.accounts[transfer.Sender.String()]
	sender.balance.Add(sender.balance, transfer.Amount)
	l.WithFields(log.Fields{"transferID": transfer.ID, "reason": reason.Code}).Info("Transfer rejected")
	l.route(ilp.TransferRejectedEvent{
		Transfer: transfer,
		Reason:   reason,
	}, transfer.Sender, transfer.Receiver)
}

// message relays an application message, best-effort and at most once, to
// the adaptors interested in the recipient account.
func (l *Ledger) message(msg ilp.Message) ilp.APIError {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if msg.To.IsZero() || msg.To.IsPrefix() {
		return ilp.NewAPIErrInvalidArgument(ArgNameMessageTo, msg.To.String(),
			"message recipient must be an account address")
	}
	if _, ok := l.accounts[msg.To.String()]; !ok {
		return ilp.NewAPIErrAccountNotFound(msg.To.String())
	}
	msgCopy := msg
	msgCopy.Ledger = l.info.Prefix
	msgCopy.Data = append([]byte(nil), msg.Data...)
	l.route(ilp.MessageReceivedEvent{Message: msgCopy}, msgCopy.To)
	return nil
}

// accountInfo returns a point-in-time snapshot of the account.
func (l *Ledger) accountInfo(addr ilp.Address) (ilp.AccountInfo, ilp.APIError) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	acc, ok := l.accounts[addr.String()]
	if !ok {
		return ilp.AccountInfo{}, ilp.NewAPIErrAccountNotFound(addr.String())
	}
	return ilp.AccountInfo{
		Address:        acc.addr,
		Name:           acc.name,
		CurrencySymbol: l.info.CurrencySymbol,
		Decimals:       l.info.Decimals,
		Balance:        new(big.Int).Set(acc.balance),
	}, nil
}

// hasAccount reports whether the address identifies an account on this
// ledger.
func (l *Ledger) hasAccount(addr ilp.Address) bool {
	l.mtx.Lock()
	_, ok := l.accounts[addr.String()]
	l.mtx.Unlock()
	return ok
}

// connectors returns the current snapshot of connector addresses known on
// this ledger.
func (l *Ledger) connectors() []ilp.Address {
	if l.directory == nil {
		return []ilp.Address{}
	}
	return l.directory.Connectors()
}

// route hands the event to every attached adaptor interested in at least
// one of the given accounts. Raising on a dispatcher never blocks, so a
// slow handler on one adaptor cannot delay the others.
func (l *Ledger) route(event ilp.LedgerEvent, accounts ...ilp.Address) {
	for _, a := range l.adaptors {
		if a.interestedIn(accounts) {
			a.deliver(event)
		}
	}
}
