// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payment

import (
	"context"

	"github.com/bitmark-inc/meditrace/fault"
)

// SettlementRef - an already settled external value transfer
type SettlementRef struct {
	TxId string `json:"txId"`
	Cost string `json:"cost,omitempty"`
}

//go:generate mockgen -destination=mocks/settler.go -package=mocks github.com/bitmark-inc/meditrace/payment Settler

// Settler - a payment provider able to transfer value and report the
// resulting transaction id
type Settler interface {
	Settle(ctx context.Context, to string, amount string, memo []byte) (*SettlementRef, error)
}

// Validate - a nil reference is valid (no payment), a supplied one
// must identify its transaction
func (ref *SettlementRef) Validate() error {
	if nil == ref {
		return nil
	}
	if "" == ref.TxId {
		return fault.InvalidSettlement
	}
	return nil
}

// Copy - detached copy so stored references are never shared
func (ref *SettlementRef) Copy() *SettlementRef {
	if nil == ref {
		return nil
	}
	r := *ref
	return &r
}
