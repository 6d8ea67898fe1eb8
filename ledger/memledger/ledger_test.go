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

package memledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interledger-labs/ilp-node"
	"github.com/interledger-labs/ilp-node/ilptest"
	"github.com/interledger-labs/ilp-node/ledger/ledgertest"
	"github.com/interledger-labs/ilp-node/ledger/memledger"
)

func Test_New(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		l, apiErr := memledger.New(ledgertest.NewConfig(), nil)
		require.Nil(t, apiErr)
		require.NotNil(t, l)

		info := l.Info()
		assert.Equal(t, ledgertest.Prefix, info.Prefix.String())
		assert.Equal(t, "USD", info.CurrencySymbol)
		assert.Equal(t, uint8(2), info.Decimals)
	})

	t.Run("err_prefix_not_a_prefix", func(t *testing.T) {
		cfg := ledgertest.NewConfig()
		cfg.LedgerPrefix = "g.sandbox.usd"
		_, apiErr := memledger.New(cfg, nil)
		ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidConfig, "ledgerPrefix")
	})

	t.Run("err_prefix_malformed", func(t *testing.T) {
		cfg := ledgertest.NewConfig()
		cfg.LedgerPrefix = "g..sandbox."
		_, apiErr := memledger.New(cfg, nil)
		ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidConfig, "ledgerPrefix")
	})

	t.Run("err_invalid_account_segment", func(t *testing.T) {
		cfg := ledgertest.NewConfig()
		cfg.Accounts[0].Segment = "al ice"
		_, apiErr := memledger.New(cfg, nil)
		ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidConfig, "accounts.segment")
	})

	t.Run("err_duplicate_account_segment", func(t *testing.T) {
		cfg := ledgertest.NewConfig()
		cfg.Accounts[1].Segment = cfg.Accounts[0].Segment
		_, apiErr := memledger.New(cfg, nil)
		ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidConfig, "accounts.segment")
	})

	t.Run("err_invalid_balance", func(t *testing.T) {
		cfg := ledgertest.NewConfig()
		cfg.Accounts[0].Balance = "not-a-number"
		_, apiErr := memledger.New(cfg, nil)
		ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidConfig, "accounts.balance")
	})

	t.Run("err_balance_excess_precision", func(t *testing.T) {
		cfg := ledgertest.NewConfig()
		cfg.Accounts[0].Balance = "100.005"
		_, apiErr := memledger.New(cfg, nil)
		ilptest.AssertAPIError(t, apiErr, ilp.ValidationError, ilp.ErrInvalidConfig, "accounts.balance")
	})
}

func Test_NewAdaptor(t *testing.T) {
	l := ledgertest.NewLedgerT(t)

	t.Run("happy", func(t *testing.T) {
		a, apiErr := l.NewAdaptor(ledgertest.Addr(t, ledgertest.AliceSegment))
		require.Nil(t, apiErr)
		require.NotNil(t, a)
		t.Cleanup(a.Close)
		assert.False(t, a.IsConnected(), "a fresh adaptor starts disconnected")
	})

	t.Run("err_account_not_found", func(t *testing.T) {
		_, apiErr := l.NewAdaptor(ledgertest.Addr(t, "mallory"))
		ilptest.AssertAPIError(t, apiErr, ilp.OperationalError, ilp.ErrAccountNotFound)
		ilptest.AssertErrInfoAccountNotFound(t, apiErr.AddInfo(), ledgertest.Prefix+"mallory")
	})
}
