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

// Package memledger implements an in-memory ledger and the adaptors through
// which connectors drive it.
//
// One Ledger instance holds the accounts, balances and transfers of a single
// ledger scope. Each party attaches to it through its own Adaptor, which
// implements the ilp.LedgerAdaptor contract: a connector holding adaptors on
// two memledger instances can relay a payment between them end to end.
//
// The package serves two purposes: it is the executable reference for the
// conditional-transfer semantics (escrow, fulfillment, rejection, expiry),
// and it is the backend used by tests throughout this repository.
package memledger
