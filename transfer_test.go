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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interledger-labs/ilp-node"
)

func Test_Condition_IsSatisfiedBy(t *testing.T) {
	fulfillment := ilp.Fulfillment("an example preimage")
	condition := ilp.NewCondition(fulfillment)

	assert.True(t, condition.IsSatisfiedBy(fulfillment))
	assert.False(t, condition.IsSatisfiedBy(ilp.Fulfillment("a wrong preimage")))
	assert.False(t, condition.IsSatisfiedBy(nil))
}

func Test_Condition_EmptyFulfillment(t *testing.T) {
	// The empty preimage is a valid fulfillment of its own condition.
	condition := ilp.NewCondition(ilp.Fulfillment{})
	assert.True(t, condition.IsSatisfiedBy(ilp.Fulfillment{}))
	assert.False(t, condition.IsSatisfiedBy(ilp.Fulfillment("x")))
}

func Test_TransferStatus_String(t *testing.T) {
	tests := []struct {
		status ilp.TransferStatus
		want   string
	}{
		{ilp.TransferProposed, "proposed"},
		{ilp.TransferPrepared, "prepared"},
		{ilp.TransferExecuted, "executed"},
		{ilp.TransferRejected, "rejected"},
		{ilp.TransferExpired, "expired"},
		{ilp.TransferStatus(200), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}

func Test_TransferStatus_IsTerminal(t *testing.T) {
	assert.False(t, ilp.TransferProposed.IsTerminal())
	assert.False(t, ilp.TransferPrepared.IsTerminal())
	assert.True(t, ilp.TransferExecuted.IsTerminal())
	assert.True(t, ilp.TransferRejected.IsTerminal())
	assert.True(t, ilp.TransferExpired.IsTerminal())
}

func Test_Transfer_Clone(t *testing.T) {
	sender, apiErr := ilp.ParseAddress("g.usd.bank.alice")
	require.Nil(t, apiErr)
	receiver, apiErr := ilp.ParseAddress("g.usd.bank.bob")
	require.Nil(t, apiErr)
	condition := ilp.NewCondition(ilp.Fulfillment("preimage"))

	original := ilp.Transfer{
		ID:        "transfer-1",
		Sender:    sender,
		Receiver:  receiver,
		Amount:    big.NewInt(1050),
		Condition: &condition,
	}
	clone := original.Clone()
	assert.Equal(t, original, clone)

	clone.Amount.SetInt64(-999)
	clone.Condition[0] ^= 0xff
	assert.Equal(t, big.NewInt(1050), original.Amount, "clone should not share the amount")
	assert.Equal(t, condition, *original.Condition, "clone should not share the condition")
}

func Test_Transfer_Clone_Unconditional(t *testing.T) {
	original := ilp.Transfer{ID: "transfer-1"}
	clone := original.Clone()
	assert.Nil(t, clone.Amount)
	assert.Nil(t, clone.Condition)
}

func Test_RejectionCode_Valid(t *testing.T) {
	valid := []ilp.RejectionCode{
		ilp.RejectedExpired,
		ilp.RejectedInsufficientFunds,
		ilp.RejectedInvalidFulfillment,
		ilp.RejectedReceiverUnreachable,
		ilp.RejectedCancelled,
	}
	for _, code := range valid {
		assert.True(t, code.Valid(), string(code))
	}
	assert.False(t, ilp.RejectionCode("").Valid())
	assert.False(t, ilp.RejectionCode("made-up-code").Valid())
}

func Test_RejectionReason_String(t *testing.T) {
	withExplanation := ilp.RejectionReason{Code: ilp.RejectedCancelled, Explanation: "payment no longer needed"}
	assert.Equal(t, "cancelled: payment no longer needed", withExplanation.String())

	withoutExplanation := ilp.RejectionReason{Code: ilp.RejectedExpired}
	assert.Equal(t, "expired", withoutExplanation.String())
}
