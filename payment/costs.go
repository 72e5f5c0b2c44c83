// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payment

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/bitmark-inc/meditrace/fault"
)

// Operation - a chargeable ledger operation
type Operation int

// the chargeable operations
const (
	AddProduct Operation = iota
	AssignProduct
	SellProduct
	ViewHistory
)

// Cost - price of one operation in ETH
type Cost struct {
	Operation   Operation `json:"-"`
	Name        string    `json:"operation"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
}

// Costs - the fixed price list, indexed by Operation
var Costs = []Cost{
	{AddProduct, "ADD_PRODUCT", "0.001", "Adding product to blockchain"},
	{AssignProduct, "ASSIGN_PRODUCT", "0.0008", "Assigning product to distributor"},
	{SellProduct, "SELL_PRODUCT", "0.0006", "Recording product sale"},
	{ViewHistory, "VIEW_HISTORY", "0.0002", "Verifying product authenticity"},
}

// CostOf - price list entry for an operation
func CostOf(op Operation) (Cost, error) {
	if op < 0 || int(op) >= len(Costs) {
		return Cost{}, fault.InvalidCount
	}
	return Costs[op], nil
}

// FormatEth - display form of an amount
func FormatEth(amount string) string {
	return amount + " ETH"
}

// one ETH in wei
var weiPerEth = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// GasCost - ETH cost of gas at a price in wei, six decimal places
func GasCost(gasPrice uint64, gasLimit uint64) string {
	wei := new(big.Int).Mul(new(big.Int).SetUint64(gasPrice), new(big.Int).SetUint64(gasLimit))
	eth := new(big.Rat).SetFrac(wei, weiPerEth)
	return eth.FloatString(6)
}

// ToWei - convert a decimal ETH amount to a 0x prefixed hex wei value
func ToWei(amount string) (string, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(amount))
	if !ok || r.Sign() < 0 {
		return "", fault.PaymentError(fmt.Sprintf("invalid amount: %q", amount))
	}
	r.Mul(r, new(big.Rat).SetInt(weiPerEth))
	if !r.IsInt() {
		return "", fault.PaymentError(fmt.Sprintf("amount below one wei: %q", amount))
	}
	return "0x" + r.Num().Text(16), nil
}
