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

// Package directory defines the errors common to all implementations of the
// connector directory. A connector directory holds the set of account
// addresses on a ledger that are known to belong to connectors; it is the
// source behind the GetConnectors operation of a ledger adaptor.
package directory

import "github.com/pkg/errors"

// Definition of errors returned by directory implementations. Callers can
// match against these with errors.Is.
var (
	// ErrConnectorAlreadyRegistered is returned when adding a connector
	// address that is already present in the directory.
	ErrConnectorAlreadyRegistered = errors.New("connector address already registered")

	// ErrUnknownConnector is returned when removing a connector address that
	// is not present in the directory.
	ErrUnknownConnector = errors.New("connector address not registered")

	// ErrInvalidConnectorAddress is returned when an entry is not a valid
	// account address. Prefix addresses identify ledgers, not connectors,
	// and are rejected as well.
	ErrInvalidConnectorAddress = errors.New("connector address must be an account address")
)
