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
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interledger-labs/ilp-node/ledger/memledger"
)

func newConfigFileT(t *testing.T, contents string) string {
	t.Helper()

	f, err := ioutil.TempFile("", "*.yaml")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := os.Remove(f.Name()); err != nil {
			t.Log("Error in test cleanup: removing file - " + f.Name())
		}
	})
	_, err = f.WriteString(contents)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func Test_ParseConfig(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		file := newConfigFileT(t, `
ledgerprefix: g.sandbox.usd.
currency: USD
decimals: 2
accounts:
  - segment: alice
    name: Alice
    balance: "100.00"
  - segment: bob
    name: Bob
    balance: "50.00"
`)
		cfg, err := memledger.ParseConfig(file)
		require.NoError(t, err)
		assert.Equal(t, "g.sandbox.usd.", cfg.LedgerPrefix)
		assert.Equal(t, "USD", cfg.Currency)
		assert.Equal(t, uint8(2), cfg.Decimals)
		require.Len(t, cfg.Accounts, 2)
		assert.Equal(t, "alice", cfg.Accounts[0].Segment)
		assert.Equal(t, "100.00", cfg.Accounts[0].Balance)
	})

	t.Run("err_missing_file", func(t *testing.T) {
		_, err := memledger.ParseConfig("./file-that-does-not-exist.yaml")
		assert.Error(t, err)
	})

	t.Run("err_malformed_file", func(t *testing.T) {
		file := newConfigFileT(t, "accounts: [unterminated")
		_, err := memledger.ParseConfig(file)
		assert.Error(t, err)
	})
}
