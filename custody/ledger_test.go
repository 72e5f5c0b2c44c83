// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody_test

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/meditrace/custody"
	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/payment"
	"github.com/bitmark-inc/meditrace/registry"
	"github.com/bitmark-inc/meditrace/storage"
	"github.com/bitmark-inc/meditrace/transactionrecord"
)

func TestCustodyChain(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	productId, created, err := ledger.Create(amoxicillin, "mfg@x", nil)
	assert.Nil(t, err, "create error")
	assert.Equal(t, productId, created.ProductId, "wrong product id")

	_, err = ledger.Assign(productId, "dist@y", "2024-01-01", nil)
	assert.Nil(t, err, "assign error")

	qrCode, _, err := ledger.Sell(productId, "clinic@z", nil)
	assert.Nil(t, err, "sell error")

	p, err := ledger.Product(productId)
	assert.Nil(t, err, "product error")
	assert.Equal(t, registry.Sold, p.Status, "wrong status")
	assert.Equal(t, "clinic@z", p.CurrentHolderId, "wrong holder")
	assert.Equal(t, "mfg@x", p.ManufacturerId, "wrong manufacturer")
	assert.Equal(t, qrCode, p.QrCode, "wrong QR code")
	assert.NotEqual(t, "", p.QrCode, "empty QR code")
	assert.True(t, strings.Contains(p.QrCode, productId), "QR code does not contain product id")

	history, err := ledger.History(productId)
	assert.Nil(t, err, "history error")
	assert.Equal(t, 3, len(history), "wrong history length")
	assert.Equal(t, transactionrecord.Created, history[0].Kind, "first event")
	assert.Equal(t, transactionrecord.Assigned, history[1].Kind, "second event")
	assert.Equal(t, transactionrecord.Sold, history[2].Kind, "third event")

	assert.Equal(t, "mfg@x", history[0].From, "created not from manufacturer")
	assert.Equal(t, "mfg@x", history[1].From, "assigned not from previous holder")
	assert.Equal(t, "dist@y", history[1].To, "wrong distributor")
	assert.Equal(t, "2024-01-01", history[1].Details[transactionrecord.DetailDispatchDate], "wrong dispatch date")
	assert.Equal(t, "dist@y", history[2].From, "sold not from previous holder")
	assert.Equal(t, "clinic@z", history[2].To, "wrong provider")
	assert.Equal(t, qrCode, history[2].Details[transactionrecord.DetailQrCode], "QR code not recorded")

	assert.Nil(t, ledger.VerifyIntegrity(productId), "integrity error")
}

func TestCreatedIsFirst(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	for i := 0; i < 10; i += 1 {
		manufacturer := fmt.Sprintf("mfg-%d@x", i)
		productId, _, err := ledger.Create(amoxicillin, manufacturer, nil)
		assert.Nil(t, err, "create error")

		if 0 == i%2 {
			_, err = ledger.Assign(productId, "dist@y", "", nil)
			assert.Nil(t, err, "assign error")
		}

		history, err := ledger.History(productId)
		assert.Nil(t, err, "history error")
		assert.Equal(t, transactionrecord.Created, history[0].Kind, "first event is not created")
		assert.Equal(t, manufacturer, history[0].From, "created not from manufacturer")
		assert.Equal(t, manufacturer, history[0].Details[transactionrecord.DetailManufacturer], "manufacturer detail")
	}
}

func TestCreateValidation(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	missingName := amoxicillin
	missingName.Name = " "
	missingBatch := amoxicillin
	missingBatch.BatchNumber = ""
	missingExpiration := amoxicillin
	missingExpiration.ExpirationDate = ""
	noDescription := amoxicillin
	noDescription.Description = ""

	items := []struct {
		data         custody.ProductData
		manufacturer string
		ref          *payment.SettlementRef
		err          error
	}{
		{missingName, "m", nil, fault.InvalidName},
		{missingBatch, "m", nil, fault.InvalidBatchNumber},
		{missingExpiration, "m", nil, fault.InvalidExpirationDate},
		{amoxicillin, "", nil, fault.InvalidManufacturer},
		{amoxicillin, "m", &payment.SettlementRef{Cost: "0.001"}, fault.InvalidSettlement},
	}
	for i, item := range items {
		_, _, err := ledger.Create(item.data, item.manufacturer, item.ref)
		assert.Equal(t, item.err, err, "%d: wrong error", i)
		assert.True(t, fault.IsErrInvalid(err), "%d: wrong error class", i)
	}
	assert.Equal(t, uint64(0), ledger.TransactionCount(), "failed create was logged")
	assert.Equal(t, 0, ledger.ProductCount(), "failed create made a product")

	// description is optional
	_, _, err := ledger.Create(noDescription, "m", nil)
	assert.Nil(t, err, "optional description rejected")
}

func TestFieldLengthLimits(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	value := strings.Repeat("v", transactionrecord.MaxValueLength)
	actor := strings.Repeat("a", transactionrecord.MaxActorLength)

	longName := amoxicillin
	longName.Name = value + "x"
	longBatch := amoxicillin
	longBatch.BatchNumber = value + "x"
	longExpiration := amoxicillin
	longExpiration.ExpirationDate = value + "x"
	longDescription := amoxicillin
	longDescription.Description = value + "x"
	longRef := &payment.SettlementRef{TxId: value + "x"}
	longCost := &payment.SettlementRef{TxId: "0xabc", Cost: value + "x"}

	rejected := []struct {
		data         custody.ProductData
		manufacturer string
		ref          *payment.SettlementRef
	}{
		{longName, "m", nil},
		{longBatch, "m", nil},
		{longExpiration, "m", nil},
		{longDescription, "m", nil},
		{amoxicillin, actor + "x", nil},
		{amoxicillin, "m", longRef},
		{amoxicillin, "m", longCost},
	}
	for i, item := range rejected {
		_, _, err := ledger.Create(item.data, item.manufacturer, item.ref)
		assert.Equal(t, fault.FieldTooLong, err, "%d: wrong error", i)
		assert.True(t, fault.IsErrInvalid(err), "%d: wrong error class", i)
	}
	assert.Equal(t, uint64(0), ledger.TransactionCount(), "rejected create was logged")

	// exactly at the limits
	largest := custody.ProductData{
		Name:           value,
		BatchNumber:    value,
		ExpirationDate: value,
		Description:    value,
	}
	productId, _, err := ledger.Create(largest, actor, &payment.SettlementRef{TxId: value, Cost: value})
	assert.Nil(t, err, "create at the limits")

	p, err := ledger.Product(productId)
	assert.Nil(t, err, "product error")
	assert.Equal(t, value, p.Description, "wrong description")
	assert.Equal(t, actor, p.ManufacturerId, "wrong manufacturer")
	before := ledger.TransactionCount()

	_, err = ledger.Assign(productId, actor+"x", "2024-01-01", nil)
	assert.Equal(t, fault.FieldTooLong, err, "long distributor")
	_, err = ledger.Assign(productId, "d", value+"x", nil)
	assert.Equal(t, fault.FieldTooLong, err, "long dispatch date")
	_, _, err = ledger.Sell(productId, actor+"x", nil)
	assert.Equal(t, fault.FieldTooLong, err, "long provider")
	_, err = ledger.Verify(productId, actor+"x", nil)
	assert.Equal(t, fault.FieldTooLong, err, "long verifier")
	_, err = ledger.Verify(productId, "", longRef)
	assert.Equal(t, fault.FieldTooLong, err, "long settlement")
	assert.Equal(t, before, ledger.TransactionCount(), "rejected transition was logged")

	_, err = ledger.Assign(productId, actor, value, nil)
	assert.Nil(t, err, "assign at the limits")
	_, _, err = ledger.Sell(productId, actor, nil)
	assert.Nil(t, err, "sell at the limits")
	_, err = ledger.Verify(productId, actor, nil)
	assert.Nil(t, err, "verify at the limits")
	assert.Nil(t, ledger.VerifyIntegrity(productId), "integrity at the limits")
}

func TestUnknownProduct(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	productId, _, err := ledger.Create(amoxicillin, "m", nil)
	assert.Nil(t, err, "create error")
	before := ledger.TransactionCount()

	_, err = ledger.Assign("MED-0-NONE", "d", "2024-01-01", nil)
	assert.Equal(t, fault.ProductNotFound, err, "assign unknown")

	_, _, err = ledger.Sell("MED-0-NONE", "c", nil)
	assert.Equal(t, fault.ProductNotFound, err, "sell unknown")

	_, err = ledger.Verify("MED-0-NONE", "", nil)
	assert.Equal(t, fault.ProductNotFound, err, "verify unknown")
	assert.True(t, fault.IsErrNotFound(err), "wrong error class")

	_, err = ledger.Product("MED-0-NONE")
	assert.Equal(t, fault.ProductNotFound, err, "get unknown")

	history, err := ledger.History("MED-0-NONE")
	assert.Nil(t, err, "history of unknown product is not an error")
	assert.Equal(t, 0, len(history), "history of unknown product")

	assert.Equal(t, before, ledger.TransactionCount(), "log length changed")

	p, err := ledger.Product(productId)
	assert.Nil(t, err, "product error")
	assert.Equal(t, registry.Manufactured, p.Status, "existing product changed")
}

func TestTransitionValidation(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	productId, _, _ := ledger.Create(amoxicillin, "m", nil)
	before := ledger.TransactionCount()

	_, err := ledger.Assign("", "d", "", nil)
	assert.Equal(t, fault.InvalidProductId, err, "empty product id")
	_, err = ledger.Assign(productId, "", "", nil)
	assert.Equal(t, fault.InvalidDistributor, err, "empty distributor")
	_, _, err = ledger.Sell(productId, "", nil)
	assert.Equal(t, fault.InvalidHealthcareProvider, err, "empty provider")
	_, err = ledger.Verify(productId, "", &payment.SettlementRef{})
	assert.Equal(t, fault.InvalidSettlement, err, "empty settlement")

	// validation comes before existence
	_, err = ledger.Assign("MED-0-NONE", "", "", nil)
	assert.Equal(t, fault.InvalidDistributor, err, "existence checked first")

	assert.Equal(t, before, ledger.TransactionCount(), "log length changed")
}

func TestStatusFollowsLastTransition(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	productId, _, _ := ledger.Create(amoxicillin, "m", nil)

	steps := []func() error{
		func() error { _, err := ledger.Assign(productId, "d1", "2024-01-01", nil); return err },
		func() error { _, err := ledger.Verify(productId, "auditor", nil); return err },
		func() error { _, _, err := ledger.Sell(productId, "c1", nil); return err },
		func() error { _, err := ledger.Verify(productId, "", nil); return err },
		func() error { _, err := ledger.Assign(productId, "d2", "2024-02-01", nil); return err },
		func() error { _, _, err := ledger.Sell(productId, "c2", nil); return err },
		func() error { _, err := ledger.Verify(productId, "", nil); return err },
	}

	for i, step := range steps {
		assert.Nil(t, step(), "%d: step error", i)

		history, err := ledger.History(productId)
		assert.Nil(t, err, "history error")

		var expected registry.Status
		var holder string
		for _, tx := range history {
			if s, ok := registry.StatusAfter(tx.Kind); ok {
				expected = s
				holder = tx.To
				if transactionrecord.Created == tx.Kind {
					holder = tx.From
				}
			}
		}

		p, err := ledger.Product(productId)
		assert.Nil(t, err, "product error")
		assert.Equal(t, expected, p.Status, "%d: status does not follow last transition", i)
		assert.Equal(t, holder, p.CurrentHolderId, "%d: holder does not follow last transition", i)
	}
}

func TestVerifyKeepsStatus(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	productId, _, _ := ledger.Create(amoxicillin, "m", nil)
	_, err := ledger.Assign(productId, "d", "2024-01-01", nil)
	assert.Nil(t, err, "assign error")

	before, _ := ledger.Product(productId)

	tx, err := ledger.Verify(productId, "", nil)
	assert.Nil(t, err, "verify error")
	assert.Equal(t, transactionrecord.Verified, tx.Kind, "wrong kind")
	assert.Equal(t, custody.DefaultVerifier, tx.From, "wrong default verifier")
	assert.Equal(t, "true", tx.Details[transactionrecord.DetailVerified], "verified detail")

	after, _ := ledger.Product(productId)
	assert.Equal(t, before, after, "verify changed the product")

	tx, err = ledger.Verify(productId, "pharmacist@z", nil)
	assert.Nil(t, err, "verify error")
	assert.Equal(t, "pharmacist@z", tx.From, "verifier not recorded")
}

func TestVerifySettlement(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	productId, _, _ := ledger.Create(amoxicillin, "m", nil)

	ref := &payment.SettlementRef{TxId: "0xabc123", Cost: "0.0002"}
	before := ledger.TransactionCount()
	_, err := ledger.Verify(productId, "", ref)
	assert.Nil(t, err, "verify error")
	assert.Equal(t, before+1, ledger.TransactionCount(), "not exactly one event")

	history, _ := ledger.History(productId)
	last := history[len(history)-1]
	assert.Equal(t, transactionrecord.Verified, last.Kind, "wrong kind")
	assert.Equal(t, ref, last.SettlementRef, "reference not stored verbatim")

	// the caller's reference is not shared with the log
	ref.TxId = "changed"
	history, _ = ledger.History(productId)
	assert.Equal(t, "0xabc123", history[len(history)-1].SettlementRef.TxId, "reference aliased")

	_, err = ledger.Verify(productId, "", nil)
	assert.Nil(t, err, "verify error")
	history, _ = ledger.History(productId)
	assert.Nil(t, history[len(history)-1].SettlementRef, "settlement present without reference")

	p, _ := ledger.Product(productId)
	assert.Equal(t, "0xabc123", p.SettlementRef.TxId, "most recent reference not kept")
}

func TestSettlementOnTransitions(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	productId, tx, err := ledger.Create(amoxicillin, "m", &payment.SettlementRef{TxId: "0x1", Cost: "0.001"})
	assert.Nil(t, err, "create error")
	assert.Equal(t, "0x1", tx.SettlementRef.TxId, "create reference")

	tx, err = ledger.Assign(productId, "d", "2024-01-01", &payment.SettlementRef{TxId: "0x2", Cost: "0.0008"})
	assert.Nil(t, err, "assign error")
	assert.Equal(t, "0x2", tx.SettlementRef.TxId, "assign reference")

	p, _ := ledger.Product(productId)
	assert.Equal(t, &payment.SettlementRef{TxId: "0x2", Cost: "0.0008"}, p.SettlementRef, "product reference")

	_, tx, err = ledger.Sell(productId, "c", nil)
	assert.Nil(t, err, "sell error")
	assert.Nil(t, tx.SettlementRef, "sell reference")

	p, _ = ledger.Product(productId)
	assert.Equal(t, "0x2", p.SettlementRef.TxId, "reference cleared by event without one")
}

func TestQrCodeKeptOnResale(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	productId, _, _ := ledger.Create(amoxicillin, "m", nil)
	first, _, err := ledger.Sell(productId, "c1", nil)
	assert.Nil(t, err, "sell error")

	second, _, err := ledger.Sell(productId, "c2", nil)
	assert.Nil(t, err, "resell error")
	assert.Equal(t, first, second, "QR code changed")

	p, _ := ledger.Product(productId)
	assert.Equal(t, first, p.QrCode, "QR code changed")
	assert.Equal(t, "c2", p.CurrentHolderId, "holder not re-targeted")
}

func TestPermissivePolicy(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	productId, _, _ := ledger.Create(amoxicillin, "m", nil)
	_, _, err := ledger.Sell(productId, "c", nil)
	assert.Nil(t, err, "sell error")

	_, err = ledger.Assign(productId, "d", "2024-01-01", nil)
	assert.Nil(t, err, "re-assignment after sale refused")

	p, _ := ledger.Product(productId)
	assert.Equal(t, registry.Assigned, p.Status, "wrong status")
	assert.Equal(t, "d", p.CurrentHolderId, "wrong holder")
}

func TestStrictPolicy(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{Strict: true})
	defer store.Close()

	assert.True(t, ledger.Policy().Strict, "policy not kept")

	productId, _, _ := ledger.Create(amoxicillin, "m", nil)
	_, err := ledger.Assign(productId, "d1", "2024-01-01", nil)
	assert.Nil(t, err, "assign error")
	_, err = ledger.Assign(productId, "d2", "2024-01-02", nil)
	assert.Nil(t, err, "re-assign refused")

	_, _, err = ledger.Sell(productId, "c1", nil)
	assert.Nil(t, err, "sell error")
	_, _, err = ledger.Sell(productId, "c2", nil)
	assert.Nil(t, err, "re-sell refused")

	before := ledger.TransactionCount()
	_, err = ledger.Assign(productId, "d3", "2024-01-03", nil)
	assert.Equal(t, fault.InvalidTransition, err, "regression accepted")
	assert.Equal(t, before, ledger.TransactionCount(), "refused transition was logged")

	_, err = ledger.Verify(productId, "", nil)
	assert.Nil(t, err, "verify refused")
}

func TestSetPolicy(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	productId, _, _ := ledger.Create(amoxicillin, "m", nil)
	_, _, err := ledger.Sell(productId, "c", nil)
	assert.Nil(t, err, "sell error")

	ledger.SetPolicy(custody.Policy{Strict: true})
	assert.True(t, ledger.Policy().Strict, "policy not changed")

	_, err = ledger.Assign(productId, "d", "2024-01-01", nil)
	assert.Equal(t, fault.InvalidTransition, err, "regression accepted")

	ledger.SetPolicy(custody.Policy{})
	_, err = ledger.Assign(productId, "d", "2024-01-01", nil)
	assert.Nil(t, err, "regression refused after relaxing")
}

func TestReadsAreIdempotent(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	productId, _, _ := ledger.Create(amoxicillin, "m", nil)
	ledger.Assign(productId, "d", "2024-01-01", &payment.SettlementRef{TxId: "0x1"})
	ledger.Sell(productId, "c", nil)

	p1, err := ledger.Product(productId)
	assert.Nil(t, err, "product error")
	h1, err := ledger.History(productId)
	assert.Nil(t, err, "history error")

	for i := 0; i < 5; i += 1 {
		p2, _ := ledger.Product(productId)
		h2, _ := ledger.History(productId)
		assert.Equal(t, p1, p2, "product changed between reads")
		assert.Equal(t, h1, h2, "history changed between reads")
	}

	// modifying a result does not affect later reads
	h1[0].Details[transactionrecord.DetailName] = "changed"
	h3, _ := ledger.History(productId)
	assert.Equal(t, amoxicillin.Name, h3[0].Details[transactionrecord.DetailName], "history aliased")
}

func TestReplayReproducesRegistry(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	ids := make([]string, 0)
	for i := 0; i < 6; i += 1 {
		productId, _, err := ledger.Create(amoxicillin, fmt.Sprintf("m%d", i), &payment.SettlementRef{TxId: fmt.Sprintf("0x%d", i)})
		assert.Nil(t, err, "create error")
		ids = append(ids, productId)
		if i > 0 {
			ledger.Assign(productId, "d", "2024-01-01", nil)
		}
		if i > 2 {
			ledger.Sell(productId, "c", &payment.SettlementRef{TxId: "0xs", Cost: "0.0006"})
		}
		if i > 4 {
			ledger.Verify(productId, "", nil)
		}
	}

	for _, productId := range ids {
		live, err := ledger.Product(productId)
		assert.Nil(t, err, "product error")

		history, err := ledger.History(productId)
		assert.Nil(t, err, "history error")

		replayed := registry.New()
		for _, tx := range history {
			assert.Nil(t, replayed.Apply(tx), "replay error")
		}
		snapshot, ok := replayed.Get(productId)
		assert.True(t, ok, "product missing after replay")
		assert.Equal(t, live, snapshot, "replay differs from live registry")
	}

	before := ledger.ListBy(nil)
	assert.Nil(t, ledger.Rebuild(), "rebuild error")
	assert.Equal(t, before, ledger.ListBy(nil), "rebuild changed the registry")

	drifted, err := ledger.Audit(false)
	assert.Nil(t, err, "audit error")
	assert.Equal(t, 0, len(drifted), "drift in consistent ledger")
}

func TestConcurrentAssign(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	productId, _, _ := ledger.Create(amoxicillin, "m", nil)

	const rounds = 50
	for i := 0; i < rounds; i += 1 {
		a := fmt.Sprintf("dist-a-%d", i)
		b := fmt.Sprintf("dist-b-%d", i)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := ledger.Assign(productId, a, "date-a", nil)
			assert.Nil(t, err, "assign a error")
		}()
		go func() {
			defer wg.Done()
			_, err := ledger.Assign(productId, b, "date-b", nil)
			assert.Nil(t, err, "assign b error")
		}()
		wg.Wait()

		p, _ := ledger.Product(productId)
		history, _ := ledger.History(productId)
		last := history[len(history)-1]

		assert.True(t, a == p.CurrentHolderId || b == p.CurrentHolderId, "holder from neither assignment: %s", p.CurrentHolderId)
		assert.Equal(t, last.To, p.CurrentHolderId, "registry disagrees with last event")

		previous := history[len(history)-2]
		assert.Equal(t, previous.To, last.From, "second assignment did not see the first")
	}

	history, _ := ledger.History(productId)
	assert.Equal(t, 1+2*rounds, len(history), "lost update")
	assert.Nil(t, ledger.VerifyIntegrity(productId), "chain broken")
}

func TestConcurrentProducts(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	const workers = 8
	const perWorker = 10

	var wg sync.WaitGroup
	for w := 0; w < workers; w += 1 {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i += 1 {
				productId, _, err := ledger.Create(amoxicillin, fmt.Sprintf("m%d", w), nil)
				if !assert.Nil(t, err, "create error") {
					return
				}
				_, err = ledger.Assign(productId, fmt.Sprintf("d%d", w), "2024-01-01", nil)
				assert.Nil(t, err, "assign error")
				_, _, err = ledger.Sell(productId, fmt.Sprintf("c%d", w), nil)
				assert.Nil(t, err, "sell error")
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, ledger.ProductCount(), "wrong product count")
	assert.Equal(t, uint64(3*workers*perWorker), ledger.TransactionCount(), "wrong transaction count")

	for w := 0; w < workers; w += 1 {
		held := ledger.Holding(fmt.Sprintf("c%d", w))
		assert.Equal(t, perWorker, len(held), "wrong holding count")
		made := ledger.ManufacturedBy(fmt.Sprintf("m%d", w))
		assert.Equal(t, perWorker, len(made), "wrong manufactured count")
	}

	drifted, err := ledger.Audit(false)
	assert.Nil(t, err, "audit error")
	assert.Equal(t, 0, len(drifted), "drift after concurrent use")
}

func TestTransactionLookup(t *testing.T) {
	store, ledger := newLedger(t, custody.Policy{})
	defer store.Close()

	_, created, _ := ledger.Create(amoxicillin, "m", nil)
	tx, err := ledger.Transaction(created.Id)
	assert.Nil(t, err, "lookup error")
	assert.Equal(t, created, tx, "wrong transaction")

	_, err = ledger.Transaction("missing")
	assert.Equal(t, fault.TransactionNotFound, err, "wrong error")
}

func TestPersistentLedger(t *testing.T) {
	dir, err := ioutil.TempDir("", "custody-test")
	assert.Nil(t, err, "temp dir error")
	defer os.RemoveAll(dir)
	name := filepath.Join(dir, "ledger.leveldb")

	store, err := storage.Open(name, storage.ReadWrite)
	assert.Nil(t, err, "open error")
	ledger, err := custody.New(store, custody.Options{})
	assert.Nil(t, err, "new ledger error")

	productId, _, _ := ledger.Create(amoxicillin, "m", nil)
	ledger.Assign(productId, "d", "2024-01-01", nil)
	qrCode, _, _ := ledger.Sell(productId, "c", nil)
	expected, _ := ledger.Product(productId)
	store.Close()

	store, err = storage.Open(name, storage.ReadWrite)
	assert.Nil(t, err, "reopen error")
	defer store.Close()

	ledger, err = custody.New(store, custody.Options{})
	assert.Nil(t, err, "new ledger error")

	actual, err := ledger.Product(productId)
	assert.Nil(t, err, "product lost")
	assert.Equal(t, expected, actual, "product not rebuilt from the log")

	again, _, err := ledger.Sell(productId, "c2", nil)
	assert.Nil(t, err, "sell after reopen")
	assert.Equal(t, qrCode, again, "QR code changed after reopen")
	assert.Nil(t, ledger.VerifyIntegrity(productId), "chain broken across reopen")
}

func TestZeroLedger(t *testing.T) {
	var ledger custody.Ledger
	_, _, err := ledger.Create(amoxicillin, "m", nil)
	assert.Equal(t, fault.NotInitialised, err, "zero ledger used")
	_, err = ledger.Product("x")
	assert.Equal(t, fault.NotInitialised, err, "zero ledger used")
	assert.Equal(t, 0, len(ledger.Holding("x")), "zero ledger list")
}
