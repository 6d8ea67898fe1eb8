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

// Package currency implements parsers that convert between the display
// string representation of an amount and its value in the smallest
// indivisible unit of a ledger-native asset, together with a registry that
// indexes the parsers by currency symbol.
package currency

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type currency struct {
	symbol string

	// multiplier is 10^maxDecimals, the number of smallest indivisible
	// units that make up one whole unit of the currency.
	multiplier decimal.Decimal

	maxDecimals uint8
}

// Symbol returns the currency symbol this parser was registered under.
func (c currency) Symbol() string {
	return c.symbol
}

// Parse parses the given display amount and returns its value in the
// smallest indivisible unit of the currency.
//
// Negative amounts are rejected, as are amounts with more decimal places
// than the currency supports: such amounts cannot be represented on the
// ledger without loss of accuracy.
func (c currency) Parse(input string) (*big.Int, error) {
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return nil, errors.Wrap(err, "invalid decimal string")
	}
	if amount.IsNegative() {
		return nil, errors.New("amount must not be negative")
	}

	amountBaseUnit := amount.Mul(c.multiplier)
	if !amountBaseUnit.Equal(amountBaseUnit.Truncate(0)) {
		return nil, errors.Errorf("amount has more than %d decimal places", c.maxDecimals)
	}
	return amountBaseUnit.BigInt(), nil
}

// Print converts the given value in the smallest indivisible unit to its
// display representation, with exactly maxDecimals decimal places.
func (c currency) Print(input *big.Int) string {
	amount := decimal.NewFromBigInt(input, 0)
	return amount.Div(c.multiplier).StringFixedBank(int32(c.maxDecimals))
}
