// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody

import (
	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/registry"
	"github.com/bitmark-inc/meditrace/transactionrecord"
)

// Product - current state of a product
func (ledger *Ledger) Product(productId string) (registry.Product, error) {
	if err := ledger.ready(); nil != err {
		return registry.Product{}, err
	}

	ledger.global.RLock()
	defer ledger.global.RUnlock()

	lock := ledger.locks.get(productId)
	lock.RLock()
	defer lock.RUnlock()

	p, ok := ledger.registry.Get(productId)
	if !ok {
		return registry.Product{}, fault.ProductNotFound
	}
	return p, nil
}

// History - events of a product in the order they were recorded,
// empty for an unknown product
func (ledger *Ledger) History(productId string) ([]*transactionrecord.Transaction, error) {
	if err := ledger.ready(); nil != err {
		return nil, err
	}

	ledger.global.RLock()
	defer ledger.global.RUnlock()

	lock := ledger.locks.get(productId)
	lock.RLock()
	defer lock.RUnlock()

	return ledger.txlog.History(productId)
}

// Transaction - a single event by id
func (ledger *Ledger) Transaction(txId string) (*transactionrecord.Transaction, error) {
	if err := ledger.ready(); nil != err {
		return nil, err
	}
	return ledger.txlog.Get(txId)
}

// ListBy - products matching a predicate in creation order
func (ledger *Ledger) ListBy(predicate func(*registry.Product) bool) []registry.Product {
	if nil != ledger.ready() {
		return []registry.Product{}
	}

	ledger.global.RLock()
	defer ledger.global.RUnlock()

	return ledger.registry.ListBy(predicate)
}

// Holding - products currently held by an actor
func (ledger *Ledger) Holding(actorId string) []registry.Product {
	return ledger.ListBy(func(p *registry.Product) bool {
		return actorId == p.CurrentHolderId
	})
}

// ManufacturedBy - products created by an actor
func (ledger *Ledger) ManufacturedBy(actorId string) []registry.Product {
	return ledger.ListBy(func(p *registry.Product) bool {
		return actorId == p.ManufacturerId
	})
}

// VerifyIntegrity - check the hash chain of a product's events
func (ledger *Ledger) VerifyIntegrity(productId string) error {
	if err := ledger.ready(); nil != err {
		return err
	}

	ledger.global.RLock()
	defer ledger.global.RUnlock()

	lock := ledger.locks.get(productId)
	lock.RLock()
	defer lock.RUnlock()

	return ledger.txlog.Verify(productId)
}
