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

// Package ilptest provides assertion helpers shared by the tests in this
// repository.
package ilptest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interledger-labs/ilp-node"
)

// AssertAPIError tests if the passed error contains expected category, code
// and phrases in the message.
func AssertAPIError(t *testing.T, e ilp.APIError, categ ilp.ErrorCategory, code ilp.ErrorCode, msgs ...string) {
	t.Helper()

	require.Error(t, e)
	assert.Equal(t, categ, e.Category())
	assert.Equal(t, code, e.Code())
	for _, msg := range msgs {
		assert.Contains(t, e.Message(), msg)
	}
}

// AssertErrInfoInvalidAddress tests if additional info field is of correct
// type and has expected values.
func AssertErrInfoInvalidAddress(t *testing.T, info interface{}, value string) {
	t.Helper()

	addInfo, ok := info.(ilp.ErrInfoInvalidAddress)
	require.True(t, ok)
	assert.Equal(t, value, addInfo.Value)
	t.Log("requirement:", addInfo.Requirement)
}

// AssertErrInfoInvalidArgument tests if additional info field is of correct
// type and has expected values.
func AssertErrInfoInvalidArgument(t *testing.T, info interface{}, name ilp.ArgumentName, value string) {
	t.Helper()

	addInfo, ok := info.(ilp.ErrInfoInvalidArgument)
	require.True(t, ok)
	assert.Equal(t, string(name), addInfo.Name)
	assert.Equal(t, value, addInfo.Value)
	t.Log("requirement:", addInfo.Requirement)
}

// AssertErrInfoIncompleteBuilder tests if additional info field is of
// correct type and names the expected missing fields.
func AssertErrInfoIncompleteBuilder(t *testing.T, info interface{}, missingFields ...string) {
	t.Helper()

	addInfo, ok := info.(ilp.ErrInfoIncompleteBuilder)
	require.True(t, ok)
	assert.Equal(t, missingFields, addInfo.MissingFields)
}

// AssertErrInfoNotConnected tests if additional info field is of correct
// type and has expected values.
func AssertErrInfoNotConnected(t *testing.T, info interface{}, ledgerPrefix string) {
	t.Helper()

	addInfo, ok := info.(ilp.ErrInfoNotConnected)
	require.True(t, ok)
	assert.Equal(t, ledgerPrefix, addInfo.LedgerPrefix)
}

// AssertErrInfoAccountNotFound tests if additional info field is of correct
// type and has expected values.
func AssertErrInfoAccountNotFound(t *testing.T, info interface{}, addr string) {
	t.Helper()

	addInfo, ok := info.(ilp.ErrInfoAccountNotFound)
	require.True(t, ok)
	assert.Equal(t, addr, addInfo.Address)
}

// AssertErrInfoUnauthorized tests if additional info field is of correct
// type and has expected values.
func AssertErrInfoUnauthorized(t *testing.T, info interface{}, transferID, caller, receiver string) {
	t.Helper()

	addInfo, ok := info.(ilp.ErrInfoUnauthorized)
	require.True(t, ok)
	assert.Equal(t, transferID, addInfo.TransferID)
	assert.Equal(t, caller, addInfo.Caller)
	assert.Equal(t, receiver, addInfo.Receiver)
}

// AssertErrInfoInvalidState tests if additional info field is of correct
// type and has expected values.
func AssertErrInfoInvalidState(t *testing.T, info interface{}, transferID, currentStatus string) {
	t.Helper()

	addInfo, ok := info.(ilp.ErrInfoInvalidState)
	require.True(t, ok)
	assert.Equal(t, transferID, addInfo.TransferID)
	assert.Equal(t, currentStatus, addInfo.CurrentStatus)
}

// AssertErrInfoDuplicateTransfer tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoDuplicateTransfer(t *testing.T, info interface{}, transferID string) {
	t.Helper()

	addInfo, ok := info.(ilp.ErrInfoDuplicateTransfer)
	require.True(t, ok)
	assert.Equal(t, transferID, addInfo.TransferID)
}

// AssertErrInfoInsufficientFunds tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoInsufficientFunds(t *testing.T, info interface{}, account, available, required string) {
	t.Helper()

	addInfo, ok := info.(ilp.ErrInfoInsufficientFunds)
	require.True(t, ok)
	assert.Equal(t, account, addInfo.Account)
	assert.Equal(t, available, addInfo.Available)
	assert.Equal(t, required, addInfo.Required)
}
