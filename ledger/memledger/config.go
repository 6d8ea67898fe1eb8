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
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	// Config defines the parameters required to set up an in-memory ledger.
	Config struct {
		// LedgerPrefix is the address scope of the ledger. Must be a prefix
		// address, e.g. "g.sandbox.usd.".
		LedgerPrefix string

		// Currency is the symbol of the ledger-native asset.
		Currency string

		// Decimals is the scale of the smallest indivisible unit.
		Decimals uint8

		// Accounts initially present on the ledger.
		Accounts []AccountConfig

		// DirectoryFile is the path of the yaml file listing the connector
		// addresses known on this ledger. Optional; without it the ledger
		// reports no connectors.
		DirectoryFile string
	}

	// AccountConfig defines one account on the ledger.
	AccountConfig struct {
		// Segment is the local account segment, appended to the ledger
		// prefix to form the account address.
		Segment string

		// Name is the display name of the account.
		Name string

		// Balance is the opening balance as a display amount in the
		// ledger's currency, e.g. "100.50". It is parsed with the ledger's
		// currency parser into the smallest indivisible unit.
		Balance string
	}
)

// ParseConfig reads the ledger configuration from the given file.
//
// Supported file formats are those supported by the viper library, with the
// file format being detected from the extension. Recommended format is yaml.
func ParseConfig(configFile string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Clean(configFile))

	var cfg Config
	err := v.ReadInConfig()
	if err != nil {
		return Config{}, errors.Wrap(err, "reading from source")
	}
	return cfg, errors.Wrap(v.Unmarshal(&cfg), "unmarshalling")
}
