// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"sync"

	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/transactionrecord"
)

// Registry - products indexed by id, in creation order
type Registry struct {
	sync.RWMutex
	products map[string]*Product
	order    []string
}

// New - empty registry
func New() *Registry {
	return &Registry{
		products: make(map[string]*Product),
		order:    make([]string, 0, 100),
	}
}

// Get - copy of a product
func (r *Registry) Get(productId string) (Product, bool) {
	r.RLock()
	defer r.RUnlock()

	p, ok := r.products[productId]
	if !ok {
		return Product{}, false
	}
	return p.clone(), true
}

// Len - number of products
func (r *Registry) Len() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.order)
}

// Apply - the effect of one event
//
// a created event adds the product, any other event must refer to a
// known product and updates it in place
func (r *Registry) Apply(tx *transactionrecord.Transaction) error {
	if nil == tx {
		return fault.MissingParameters
	}

	r.Lock()
	defer r.Unlock()

	p, exists := r.products[tx.ProductId]

	if transactionrecord.Created == tx.Kind {
		if exists {
			return fault.ProductExists
		}
		p = &Product{
			Id:              tx.ProductId,
			Name:            tx.Details[transactionrecord.DetailName],
			BatchNumber:     tx.Details[transactionrecord.DetailBatchNumber],
			ExpirationDate:  tx.Details[transactionrecord.DetailExpirationDate],
			Description:     tx.Details[transactionrecord.DetailDescription],
			ManufacturerId:  tx.From,
			CurrentHolderId: tx.From,
		}
		r.products[tx.ProductId] = p
		r.order = append(r.order, tx.ProductId)
	} else if !exists {
		return fault.ProductNotFound
	}

	if !tx.Kind.IsValid() {
		return fault.InvalidKind
	}

	// after creation every status change moves custody to the receiver
	if status, changed := StatusAfter(tx.Kind); changed {
		p.Status = status
		if transactionrecord.Created != tx.Kind {
			p.CurrentHolderId = tx.To
		}
	}
	if transactionrecord.Sold == tx.Kind && "" == p.QrCode {
		p.QrCode = tx.Details[transactionrecord.DetailQrCode]
	}

	if nil != tx.SettlementRef {
		p.SettlementRef = tx.SettlementRef.Copy()
	}
	return nil
}

// ListBy - products matching a predicate in creation order
func (r *Registry) ListBy(predicate func(*Product) bool) []Product {
	r.RLock()
	defer r.RUnlock()

	result := make([]Product, 0)
	for _, id := range r.order {
		p := r.products[id].clone()
		if nil == predicate || predicate(&p) {
			result = append(result, p)
		}
	}
	return result
}

// Snapshot - all products in creation order
func (r *Registry) Snapshot() []Product {
	return r.ListBy(nil)
}

// Replace - take over the contents of another registry, which must
// not be used afterwards
func (r *Registry) Replace(other *Registry) {
	other.RLock()
	products := other.products
	order := other.order
	other.RUnlock()

	r.Lock()
	r.products = products
	r.order = order
	r.Unlock()
}
