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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interledger-labs/ilp-node"
	"github.com/interledger-labs/ilp-node/ilptest"
)

func Test_ParseAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"happy_account", "g.usd.bank.alice", false},
		{"happy_prefix", "g.usd.bank.", false},
		{"happy_single_segment", "g", false},
		{"happy_single_segment_prefix", "g.", false},
		{"happy_all_allowed_chars", "g.us-d.ba_nk.al~ice", false},
		{"happy_digits", "g.3.ledger42", false},

		{"err_empty", "", true},
		{"err_only_separator", ".", true},
		{"err_leading_separator", ".g.usd", true},
		{"err_consecutive_separators", "g..usd", true},
		{"err_double_trailing_separator", "g.usd..", true},
		{"err_space_in_segment", "g.usd bank.alice", true},
		{"err_disallowed_char", "g.usd.bank.al!ce", true},
		{"err_unicode", "g.usd.bänk", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, apiErr := ilp.ParseAddress(tt.input)
			if tt.wantErr {
				ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidAddress)
				ilptest.AssertErrInfoInvalidAddress(t, apiErr.AddInfo(), tt.input)
				assert.True(t, got.IsZero())
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, tt.input, got.String(), "parsing should round-trip the canonical form")
		})
	}
}

func Test_ParseAddress_Limits(t *testing.T) {
	t.Run("happy_max_length", func(t *testing.T) {
		addr := "g." + strings.Repeat("a", ilp.AddressMaxLength-2)
		_, apiErr := ilp.ParseAddress(addr)
		assert.Nil(t, apiErr)
	})

	t.Run("err_exceeds_max_length", func(t *testing.T) {
		addr := "g." + strings.Repeat("a", ilp.AddressMaxLength-1)
		_, apiErr := ilp.ParseAddress(addr)
		ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidAddress)
	})

	t.Run("happy_max_segments", func(t *testing.T) {
		addr := strings.TrimSuffix(strings.Repeat("a.", ilp.AddressMaxSegments), ".")
		_, apiErr := ilp.ParseAddress(addr)
		assert.Nil(t, apiErr)
	})

	t.Run("err_exceeds_max_segments", func(t *testing.T) {
		addr := strings.TrimSuffix(strings.Repeat("a.", ilp.AddressMaxSegments+1), ".")
		_, apiErr := ilp.ParseAddress(addr)
		ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidAddress)
	})
}

func Test_Address_IsPrefix(t *testing.T) {
	prefix, apiErr := ilp.ParseAddress("g.usd.bank.")
	require.Nil(t, apiErr)
	account, apiErr := ilp.ParseAddress("g.usd.bank.alice")
	require.Nil(t, apiErr)

	assert.True(t, prefix.IsPrefix())
	assert.False(t, account.IsPrefix())
	assert.False(t, ilp.Address{}.IsPrefix())
}

func Test_Address_IsPrefixOf(t *testing.T) {
	parse := func(s string) ilp.Address {
		addr, apiErr := ilp.ParseAddress(s)
		require.Nil(t, apiErr)
		return addr
	}

	tests := []struct {
		name   string
		scope  string
		other  string
		result bool
	}{
		{"prefix_of_account", "g.usd.bank.", "g.usd.bank.alice", true},
		{"bare_scope_of_account", "g.usd", "g.usd.bank", true},
		{"equal_addresses", "g.usd.bank", "g.usd.bank", true},
		{"equal_prefixes", "g.usd.bank.", "g.usd.bank.", true},
		{"not_segment_aligned", "g.us", "g.usd.bob", false},
		{"reversed_roles", "g.usd.bank.alice", "g.usd.bank.", false},
		{"unrelated", "g.eur.bank.", "g.usd.bank.alice", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.result, parse(tt.scope).IsPrefixOf(parse(tt.other)))
		})
	}
}

func Test_Address_WithSegment(t *testing.T) {
	prefix, apiErr := ilp.ParseAddress("g.usd.bank.")
	require.Nil(t, apiErr)

	t.Run("happy", func(t *testing.T) {
		got, apiErr := prefix.WithSegment("alice")
		require.Nil(t, apiErr)
		assert.Equal(t, "g.usd.bank.alice", got.String())
		assert.False(t, got.IsPrefix())
		assert.True(t, prefix.IsPrefixOf(got))
	})

	t.Run("err_not_a_prefix", func(t *testing.T) {
		account, apiErr := ilp.ParseAddress("g.usd.bank.alice")
		require.Nil(t, apiErr)
		_, apiErr = account.WithSegment("sub")
		ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidAddress)
	})

	t.Run("err_empty_segment", func(t *testing.T) {
		_, apiErr := prefix.WithSegment("")
		ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidAddress)
	})

	t.Run("err_segment_with_separator", func(t *testing.T) {
		_, apiErr := prefix.WithSegment("alice.savings")
		ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidAddress)
	})

	t.Run("err_segment_with_invalid_char", func(t *testing.T) {
		_, apiErr := prefix.WithSegment("al ice")
		ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidAddress)
	})
}
