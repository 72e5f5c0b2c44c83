// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txlog

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/digest"
	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/gnomon"
	"github.com/bitmark-inc/meditrace/identifier"
	"github.com/bitmark-inc/meditrace/storage"
	"github.com/bitmark-inc/meditrace/transactionrecord"
	"github.com/bitmark-inc/meditrace/util"
)

// attempts to find an unused transaction id
const maximumIdAttempts = 10

// Log - the append-only event store
type Log struct {
	sync.Mutex
	log   *logger.L
	store *storage.Store
	ids   identifier.Generator
	clock *gnomon.Clock
	count uint64
}

// New - attach a log to a store, continuing any events already there
func New(store *storage.Store, ids identifier.Generator, clock *gnomon.Clock, log *logger.L) (*Log, error) {
	if nil == store {
		return nil, fault.DatabaseIsNotSet
	}

	l := &Log{
		log:   log,
		store: store,
		ids:   ids,
		clock: clock,
	}

	last, found := store.Pools.Sequence.LastElement()
	if found {
		if 8 != len(last.Key) {
			return nil, fault.RecordTruncated
		}
		l.count = binary.BigEndian.Uint64(last.Key) + 1

		tx, err := l.Get(string(last.Value))
		if nil != err {
			return nil, err
		}
		clock.Restore(gnomon.FromTime(tx.Timestamp))
	}

	l.infof("log opened with: %d transactions", l.count)
	return l, nil
}

// Append - complete a partial event with its id, timestamp and hash
// and store it
//
// the returned event is a copy of what was stored
func (l *Log) Append(partial *transactionrecord.Transaction) (*transactionrecord.Transaction, error) {

	if nil == partial {
		return nil, fault.MissingParameters
	}

	tx := partial.Copy()

	l.Lock()
	defer l.Unlock()

	id, err := l.unusedId()
	if nil != err {
		return nil, err
	}
	tx.Id = id
	tx.Timestamp = l.clock.Next().Time()

	pools := &l.store.Pools
	productKey := productKey(tx.ProductId)

	n, previous, err := l.head(productKey)
	if nil != err {
		return nil, err
	}

	sealed, err := tx.Seal(previous)
	if nil != err {
		return nil, err
	}

	trx, err := l.store.Begin()
	if nil != err {
		return nil, err
	}
	trx.Put(pools.Transactions, []byte(tx.Id), sealed)
	trx.Put(pools.ProductIndex, indexKey(productKey, n), []byte(tx.Id))
	trx.PutN(pools.ProductHead, productKey, n+1, tx.Hash[:])
	trx.Put(pools.Sequence, uint64Key(l.count), []byte(tx.Id))

	err = trx.Commit()
	if nil != err {
		return nil, err
	}
	l.count += 1

	l.debugf("append: %s  product: %s  kind: %s  sequence: %d", tx.Id, tx.ProductId, tx.Kind, l.count-1)

	return tx.Copy(), nil
}

// History - all events of a product in append order, empty if none
func (l *Log) History(productId string) ([]*transactionrecord.Transaction, error) {
	history := make([]*transactionrecord.Transaction, 0, 4)

	cursor := l.store.Pools.ProductIndex.NewPrefixCursor(productKey(productId))
	err := cursor.Map(func(key []byte, value []byte) error {
		tx, err := l.Get(string(value))
		if nil != err {
			return err
		}
		history = append(history, tx)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return history, nil
}

// Count - number of events recorded for a product
func (l *Log) Count(productId string) uint64 {
	n, _ := l.store.Pools.ProductHead.GetN(productKey(productId))
	return n
}

// Len - total number of events
func (l *Log) Len() uint64 {
	l.Lock()
	defer l.Unlock()
	return l.count
}

// Get - a single event by its id
func (l *Log) Get(txId string) (*transactionrecord.Transaction, error) {
	record := l.store.Pools.Transactions.Get([]byte(txId))
	if nil == record {
		return nil, fault.TransactionNotFound
	}
	tx, err := transactionrecord.Open(record)
	if nil != err {
		return nil, fmt.Errorf("transaction: %s: %w", txId, err)
	}
	return tx, nil
}

// Replay - call f for every event in global append order, stopping at
// the first error
func (l *Log) Replay(f func(*transactionrecord.Transaction) error) error {
	return l.store.Pools.Sequence.NewFetchCursor().Map(func(key []byte, value []byte) error {
		tx, err := l.Get(string(value))
		if nil != err {
			return err
		}
		return f(tx)
	})
}

// Verify - recompute the hash chain of a product and check it against
// every stored hash and the product head
func (l *Log) Verify(productId string) error {
	history, err := l.History(productId)
	if nil != err {
		return err
	}

	previous := digest.Zero
	for i, tx := range history {
		h, err := tx.ComputeHash(previous)
		if nil != err {
			return err
		}
		if h != tx.Hash {
			l.warnf("product: %s  event: %d  tx: %s  hash mismatch", productId, i, tx.Id)
			return fault.IntegrityMismatch
		}
		previous = h
	}

	n, head, err := l.head(productKey(productId))
	if nil != err {
		return err
	}
	if n != uint64(len(history)) || head != previous {
		l.warnf("product: %s  head does not match history", productId)
		return fault.IntegrityMismatch
	}
	return nil
}

// must be called with lock held
func (l *Log) unusedId() (string, error) {
	for i := 0; i < maximumIdAttempts; i += 1 {
		id := l.ids.TransactionId()
		if !l.store.Pools.Transactions.Has([]byte(id)) {
			return id, nil
		}
	}
	return "", fault.ProcessError("cannot allocate transaction id")
}

// event count and last hash for a product
func (l *Log) head(productKey []byte) (uint64, digest.Digest, error) {
	n, data := l.store.Pools.ProductHead.GetNB(productKey)
	if nil == data {
		return 0, digest.Zero, nil
	}
	var d digest.Digest
	err := digest.FromBytes(&d, data)
	return n, d, err
}

// length prefixed so no product key is a prefix of another
func productKey(productId string) []byte {
	return util.AppendString(nil, productId)
}

func indexKey(productKey []byte, n uint64) []byte {
	return append(append([]byte{}, productKey...), uint64Key(n)...)
}

func uint64Key(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key
}

func (l *Log) infof(format string, arguments ...interface{}) {
	if nil != l.log {
		l.log.Infof(format, arguments...)
	}
}

func (l *Log) debugf(format string, arguments ...interface{}) {
	if nil != l.log {
		l.log.Debugf(format, arguments...)
	}
}

func (l *Log) warnf(format string, arguments ...interface{}) {
	if nil != l.log {
		l.log.Warnf(format, arguments...)
	}
}
