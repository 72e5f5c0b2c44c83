// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/bitmark-inc/meditrace/payment"
)

// settle - pay for an operation before submitting it
//
// without a wallet nothing is paid and the reference is nil; any
// payment error aborts the operation
func settle(m *metadata, op payment.Operation, subject string) (*payment.SettlementRef, error) {
	if nil == m.settler {
		return nil, nil
	}
	if "" == m.payTo {
		return nil, ErrRequiredPayTo
	}

	cost, err := payment.CostOf(op)
	if nil != err {
		return nil, err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "paying: %s for: %s\n", payment.FormatEth(cost.Amount), cost.Description)
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	memo := []byte(cost.Name + ":" + subject)
	ref, err := m.settler.Settle(ctx, m.payTo, cost.Amount, memo)
	if nil != err {
		return nil, err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "paid: %s  tx: %s\n", payment.FormatEth(ref.Cost), ref.TxId)
	}
	return ref, nil
}
