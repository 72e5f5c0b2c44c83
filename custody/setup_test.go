// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody_test

import (
	"testing"

	"github.com/bitmark-inc/meditrace/custody"
	"github.com/bitmark-inc/meditrace/storage"
)

var amoxicillin = custody.ProductData{
	Name:           "Amoxicillin 500mg",
	BatchNumber:    "AMX-2024-001",
	ExpirationDate: "2026-06-30",
	Description:    "broad spectrum antibiotic",
}

func newLedger(t *testing.T, policy custody.Policy) (*storage.Store, *custody.Ledger) {
	store, err := storage.Open("", storage.ReadWrite)
	if nil != err {
		t.Fatalf("open store error: %s", err)
	}
	ledger, err := custody.New(store, custody.Options{Policy: policy})
	if nil != err {
		store.Close()
		t.Fatalf("new ledger error: %s", err)
	}
	return store, ledger
}
