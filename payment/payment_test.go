// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/payment"
)

func TestValidate(t *testing.T) {
	var none *payment.SettlementRef
	assert.Nil(t, none.Validate(), "nil reference rejected")

	ref := &payment.SettlementRef{TxId: "0xabc", Cost: "0.001"}
	assert.Nil(t, ref.Validate(), "valid reference rejected")

	empty := &payment.SettlementRef{Cost: "0.001"}
	assert.Equal(t, fault.InvalidSettlement, empty.Validate(), "wrong error")
}

func TestCopy(t *testing.T) {
	var none *payment.SettlementRef
	assert.Nil(t, none.Copy(), "nil copy")

	ref := &payment.SettlementRef{TxId: "0xabc", Cost: "0.001"}
	c := ref.Copy()
	assert.Equal(t, ref, c, "wrong copy")
	c.TxId = "changed"
	assert.Equal(t, "0xabc", ref.TxId, "copy shares storage")
}

func TestCosts(t *testing.T) {
	expected := map[payment.Operation]string{
		payment.AddProduct:    "0.001",
		payment.AssignProduct: "0.0008",
		payment.SellProduct:   "0.0006",
		payment.ViewHistory:   "0.0002",
	}
	for op, amount := range expected {
		c, err := payment.CostOf(op)
		assert.Nil(t, err, "cost error")
		assert.Equal(t, op, c.Operation, "table out of order")
		assert.Equal(t, amount, c.Amount, "wrong amount")
		assert.NotEqual(t, "", c.Description, "missing description")
	}

	_, err := payment.CostOf(payment.Operation(99))
	assert.NotNil(t, err, "unknown operation accepted")

	assert.Equal(t, "0.001 ETH", payment.FormatEth("0.001"), "wrong format")
}

func TestGasCost(t *testing.T) {
	assert.Equal(t, "0.000420", payment.GasCost(20000000000, 21000), "wrong gas cost")
	assert.Equal(t, "0.000000", payment.GasCost(0, 21000), "wrong zero gas cost")
}

func TestToWei(t *testing.T) {
	items := []struct {
		amount string
		wei    string
	}{
		{"0.001", "0x38d7ea4c68000"},
		{"0.0002", "0xb5e620f48000"},
		{"1", "0xde0b6b3a7640000"},
		{"0", "0x0"},
	}
	for _, item := range items {
		wei, err := payment.ToWei(item.amount)
		assert.Nil(t, err, "conversion error for %s", item.amount)
		assert.Equal(t, item.wei, wei, "wrong wei for %s", item.amount)
	}

	_, err := payment.ToWei("abc")
	assert.True(t, fault.IsErrPayment(err), "invalid amount accepted")

	_, err = payment.ToWei("-1")
	assert.True(t, fault.IsErrPayment(err), "negative amount accepted")

	_, err = payment.ToWei("0.0000000000000000001")
	assert.True(t, fault.IsErrPayment(err), "fractional wei accepted")
}
