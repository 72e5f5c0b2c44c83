// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody

import (
	"strings"

	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/payment"
	"github.com/bitmark-inc/meditrace/registry"
	"github.com/bitmark-inc/meditrace/transactionrecord"
)

// attempts to find an unused product id
const maximumProductIdAttempts = 10

// ProductData - the descriptive fields fixed at creation
type ProductData struct {
	Name           string `json:"name"`
	BatchNumber    string `json:"batchNumber"`
	ExpirationDate string `json:"expirationDate"`
	Description    string `json:"description"`
}

// Validate - the required fields must be present and every field must
// fit in a record
func (data ProductData) Validate() error {
	if isBlank(data.Name) {
		return fault.InvalidName
	}
	if isBlank(data.BatchNumber) {
		return fault.InvalidBatchNumber
	}
	if isBlank(data.ExpirationDate) {
		return fault.InvalidExpirationDate
	}
	for _, s := range []string{data.Name, data.BatchNumber, data.ExpirationDate, data.Description} {
		if len(s) > transactionrecord.MaxValueLength {
			return fault.FieldTooLong
		}
	}
	return nil
}

// Create - register a new product held by its manufacturer
func (ledger *Ledger) Create(data ProductData, manufacturerId string, ref *payment.SettlementRef) (string, *transactionrecord.Transaction, error) {
	if err := ledger.ready(); nil != err {
		return "", nil, err
	}
	if err := data.Validate(); nil != err {
		return "", nil, err
	}
	if err := checkActor(manufacturerId, fault.InvalidManufacturer); nil != err {
		return "", nil, err
	}
	if err := checkSettlement(ref); nil != err {
		return "", nil, err
	}

	ledger.global.RLock()
	defer ledger.global.RUnlock()

	for i := 0; i < maximumProductIdAttempts; i += 1 {
		productId := ledger.ids.ProductId()

		tx, err := ledger.createLocked(productId, data, manufacturerId, ref)
		if fault.ProductExists == err {
			continue
		}
		if nil != err {
			return "", nil, err
		}
		return productId, tx, nil
	}
	return "", nil, fault.ProductExists
}

func (ledger *Ledger) createLocked(productId string, data ProductData, manufacturerId string, ref *payment.SettlementRef) (*transactionrecord.Transaction, error) {
	lock := ledger.locks.get(productId)
	lock.Lock()
	defer lock.Unlock()

	if _, exists := ledger.registry.Get(productId); exists {
		return nil, fault.ProductExists
	}

	return ledger.record(&transactionrecord.Transaction{
		ProductId: productId,
		Kind:      transactionrecord.Created,
		From:      manufacturerId,
		Details: transactionrecord.Details{
			transactionrecord.DetailName:           data.Name,
			transactionrecord.DetailBatchNumber:    data.BatchNumber,
			transactionrecord.DetailExpirationDate: data.ExpirationDate,
			transactionrecord.DetailDescription:    data.Description,
			transactionrecord.DetailManufacturer:   manufacturerId,
		},
		SettlementRef: ref,
	})
}

// Assign - pass custody to a distributor
func (ledger *Ledger) Assign(productId string, distributorId string, dispatchDate string, ref *payment.SettlementRef) (*transactionrecord.Transaction, error) {
	if err := ledger.ready(); nil != err {
		return nil, err
	}
	if isBlank(productId) {
		return nil, fault.InvalidProductId
	}
	if err := checkActor(distributorId, fault.InvalidDistributor); nil != err {
		return nil, err
	}
	if len(dispatchDate) > transactionrecord.MaxValueLength {
		return nil, fault.FieldTooLong
	}
	if err := checkSettlement(ref); nil != err {
		return nil, err
	}

	ledger.global.RLock()
	defer ledger.global.RUnlock()

	lock := ledger.locks.get(productId)
	lock.Lock()
	defer lock.Unlock()

	p, err := ledger.transitionFrom(productId, registry.Assigned)
	if nil != err {
		return nil, err
	}

	return ledger.record(&transactionrecord.Transaction{
		ProductId: productId,
		Kind:      transactionrecord.Assigned,
		From:      p.CurrentHolderId,
		To:        distributorId,
		Details: transactionrecord.Details{
			transactionrecord.DetailDispatchDate: dispatchDate,
		},
		SettlementRef: ref,
	})
}

// Sell - pass custody to a healthcare provider, returns the product's
// QR code which is generated by the first sale
func (ledger *Ledger) Sell(productId string, providerId string, ref *payment.SettlementRef) (string, *transactionrecord.Transaction, error) {
	if err := ledger.ready(); nil != err {
		return "", nil, err
	}
	if isBlank(productId) {
		return "", nil, fault.InvalidProductId
	}
	if err := checkActor(providerId, fault.InvalidHealthcareProvider); nil != err {
		return "", nil, err
	}
	if err := checkSettlement(ref); nil != err {
		return "", nil, err
	}

	ledger.global.RLock()
	defer ledger.global.RUnlock()

	lock := ledger.locks.get(productId)
	lock.Lock()
	defer lock.Unlock()

	p, err := ledger.transitionFrom(productId, registry.Sold)
	if nil != err {
		return "", nil, err
	}

	qrCode := p.QrCode
	if "" == qrCode {
		qrCode = ledger.ids.QrCode(productId)
	}

	tx, err := ledger.record(&transactionrecord.Transaction{
		ProductId: productId,
		Kind:      transactionrecord.Sold,
		From:      p.CurrentHolderId,
		To:        providerId,
		Details: transactionrecord.Details{
			transactionrecord.DetailQrCode: qrCode,
		},
		SettlementRef: ref,
	})
	if nil != err {
		return "", nil, err
	}
	return qrCode, tx, nil
}

// Verify - record that a product was checked, custody is unchanged
func (ledger *Ledger) Verify(productId string, verifierId string, ref *payment.SettlementRef) (*transactionrecord.Transaction, error) {
	if err := ledger.ready(); nil != err {
		return nil, err
	}
	if isBlank(productId) {
		return nil, fault.InvalidProductId
	}
	if err := checkSettlement(ref); nil != err {
		return nil, err
	}
	if isBlank(verifierId) {
		verifierId = DefaultVerifier
	} else if len(verifierId) > transactionrecord.MaxActorLength {
		return nil, fault.FieldTooLong
	}

	ledger.global.RLock()
	defer ledger.global.RUnlock()

	lock := ledger.locks.get(productId)
	lock.Lock()
	defer lock.Unlock()

	if _, exists := ledger.registry.Get(productId); !exists {
		return nil, fault.ProductNotFound
	}

	return ledger.record(&transactionrecord.Transaction{
		ProductId: productId,
		Kind:      transactionrecord.Verified,
		From:      verifierId,
		Details: transactionrecord.Details{
			transactionrecord.DetailVerified: "true",
		},
		SettlementRef: ref,
	})
}

// current product if it may move to the target status, product lock
// must be held
func (ledger *Ledger) transitionFrom(productId string, target registry.Status) (registry.Product, error) {
	p, exists := ledger.registry.Get(productId)
	if !exists {
		return registry.Product{}, fault.ProductNotFound
	}
	if ledger.policy.Strict && p.Status > target {
		return registry.Product{}, fault.InvalidTransition
	}
	return p, nil
}

// append then apply, product lock must be held
func (ledger *Ledger) record(partial *transactionrecord.Transaction) (*transactionrecord.Transaction, error) {
	tx, err := ledger.txlog.Append(partial)
	if nil != err {
		ledger.warnf("append: %s  product: %s  error: %s", partial.Kind, partial.ProductId, err)
		return nil, err
	}

	err = ledger.registry.Apply(tx)
	if nil != err {
		// the log is authoritative, the next audit repairs the registry
		ledger.criticalf("apply: %s  tx: %s  product: %s  error: %s", tx.Kind, tx.Id, tx.ProductId, err)
		return nil, err
	}

	ledger.infof("%s: product: %s  tx: %s  from: %q  to: %q", tx.Kind, tx.ProductId, tx.Id, tx.From, tx.To)
	return tx, nil
}

// an actor must be present and fit the from/to fields
func checkActor(actorId string, blank error) error {
	if isBlank(actorId) {
		return blank
	}
	if len(actorId) > transactionrecord.MaxActorLength {
		return fault.FieldTooLong
	}
	return nil
}

// a supplied reference must have a transaction id and fit in a record
func checkSettlement(ref *payment.SettlementRef) error {
	if err := ref.Validate(); nil != err {
		return err
	}
	if nil != ref && (len(ref.TxId) > transactionrecord.MaxValueLength || len(ref.Cost) > transactionrecord.MaxValueLength) {
		return fault.FieldTooLong
	}
	return nil
}

func isBlank(s string) bool {
	return "" == strings.TrimSpace(s)
}
