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

package ilp_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/interledger-labs/ilp-node"
	"github.com/interledger-labs/ilp-node/ilptest"
)

func Test_ErrorCategory_String(t *testing.T) {
	assert.Equal(t, "Validation", ilp.ValidationError.String())
	assert.Equal(t, "Operational", ilp.OperationalError.String())
	assert.Equal(t, "Ledger", ilp.LedgerError.String())
	assert.Equal(t, "Internal", ilp.InternalError.String())
}

func Test_NewAPIErrInvalidAddress(t *testing.T) {
	apiErr := ilp.NewAPIErrInvalidAddress("g..usd", "segments must not be empty")
	ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidAddress, "g..usd")
	ilptest.AssertErrInfoInvalidAddress(t, apiErr.AddInfo(), "g..usd")
}

func Test_NewAPIErrInvalidArgument(t *testing.T) {
	apiErr := ilp.NewAPIErrInvalidArgument("amount", "-5", "amount must be a non-negative integer")
	ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidArgument, "amount")
	ilptest.AssertErrInfoInvalidArgument(t, apiErr.AddInfo(), "amount", "-5")
}

func Test_NewAPIErrIncompleteBuilder(t *testing.T) {
	apiErr := ilp.NewAPIErrIncompleteBuilder("destinationAccount", "data")
	ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrIncompleteBuilder,
		"destinationAccount", "data")
	ilptest.AssertErrInfoIncompleteBuilder(t, apiErr.AddInfo(), "destinationAccount", "data")
}

func Test_NewAPIErrInvalidConfig(t *testing.T) {
	cause := errors.New("unknown currency")
	apiErr := ilp.NewAPIErrInvalidConfig(cause, "currency", "XYZ")
	ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidConfig, "currency", "XYZ")

	addInfo, ok := apiErr.AddInfo().(ilp.ErrInfoInvalidConfig)
	assert.True(t, ok)
	assert.Equal(t, "currency", addInfo.Name)
	assert.Equal(t, "XYZ", addInfo.Value)
}

func Test_NewAPIErrNotConnected(t *testing.T) {
	apiErr := ilp.NewAPIErrNotConnected("g.usd.bank.")
	ilptest.AssertAPIError(t, apiErr, ilp.OperationalError, ilp.ErrNotConnected, "g.usd.bank.")
	ilptest.AssertErrInfoNotConnected(t, apiErr.AddInfo(), "g.usd.bank.")
}

func Test_NewAPIErrAccountNotFound(t *testing.T) {
	apiErr := ilp.NewAPIErrAccountNotFound("g.usd.bank.mallory")
	ilptest.AssertAPIError(t, apiErr, ilp.OperationalError, ilp.ErrAccountNotFound, "g.usd.bank.mallory")
	ilptest.AssertErrInfoAccountNotFound(t, apiErr.AddInfo(), "g.usd.bank.mallory")
}

func Test_NewAPIErrUnauthorized(t *testing.T) {
	apiErr := ilp.NewAPIErrUnauthorized("transfer-1", "g.usd.bank.mallory", "g.usd.bank.bob")
	ilptest.AssertAPIError(t, apiErr, ilp.OperationalError, ilp.ErrUnauthorized, "transfer-1")
	ilptest.AssertErrInfoUnauthorized(t, apiErr.AddInfo(),
		"transfer-1", "g.usd.bank.mallory", "g.usd.bank.bob")
}

func Test_NewAPIErrInvalidState(t *testing.T) {
	apiErr := ilp.NewAPIErrInvalidState("transfer-1", "executed", "prepared")
	ilptest.AssertAPIError(t, apiErr, ilp.OperationalError, ilp.ErrInvalidState, "transfer-1", "executed")
	ilptest.AssertErrInfoInvalidState(t, apiErr.AddInfo(), "transfer-1", "executed")
}

func Test_NewAPIErrDuplicateTransfer(t *testing.T) {
	apiErr := ilp.NewAPIErrDuplicateTransfer("transfer-1")
	ilptest.AssertAPIError(t, apiErr, ilp.OperationalError, ilp.ErrDuplicateTransfer, "transfer-1")
	ilptest.AssertErrInfoDuplicateTransfer(t, apiErr.AddInfo(), "transfer-1")
}

func Test_NewAPIErrInsufficientFunds(t *testing.T) {
	apiErr := ilp.NewAPIErrInsufficientFunds("g.usd.bank.alice", "100", "250")
	ilptest.AssertAPIError(t, apiErr, ilp.LedgerError, ilp.ErrInsufficientFunds, "g.usd.bank.alice")
	ilptest.AssertErrInfoInsufficientFunds(t, apiErr.AddInfo(), "g.usd.bank.alice", "100", "250")
}

func Test_NewAPIErrUnknownInternal(t *testing.T) {
	cause := errors.New("some cause")
	apiErr := ilp.NewAPIErrUnknownInternal(cause)
	ilptest.AssertAPIError(t, apiErr, ilp.InternalError, ilp.ErrUnknownInternal, "some cause")
	assert.Nil(t, apiErr.AddInfo())
}

func Test_APIError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	apiErr := ilp.NewAPIErrUnknownInternal(cause)
	assert.ErrorIs(t, apiErr, cause)
}

func Test_APIErrAsMap(t *testing.T) {
	apiErr := ilp.NewAPIErrAccountNotFound("g.usd.bank.mallory")
	got := ilp.APIErrAsMap("GetAccountInfo", apiErr)
	assert.Equal(t, "GetAccountInfo", got["method"])
	assert.Equal(t, "Operational", got["category"])
	assert.Equal(t, ilp.ErrAccountNotFound, got["code"])
}
