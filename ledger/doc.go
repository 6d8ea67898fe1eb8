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

// Package ledger provides the machinery shared by ledger adaptor
// implementations: the event dispatcher that delivers ledger events to a
// single registered handler sequentially, and the transfer registry that
// tracks the lifecycle of conditional transfers with a first-transition-wins
// guard and per-transfer expiry timers.
//
// Adaptors for concrete ledger backends compose these pieces; the memledger
// subpackage is the reference composition over an in-memory ledger.
package ledger
