// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/meditrace/fault"
)

// Transaction - a set of writes applied together
type Transaction struct {
	store   *Store
	batch   *leveldb.Batch
	pending map[string]entry
	done    bool
}

// Begin - start collecting writes
func (s *Store) Begin() (*Transaction, error) {
	if s.readOnly {
		return nil, fault.NotAvailableInReadOnlyMode
	}
	return &Transaction{
		store:   s,
		batch:   new(leveldb.Batch),
		pending: make(map[string]entry),
	}, nil
}

// Put - store a key/value bytes pair
func (t *Transaction) Put(p *PoolHandle, key []byte, value []byte) {
	prefixedKey := p.prefixKey(key)
	t.batch.Put(prefixedKey, value)
	if p.cached {
		t.pending[string(prefixedKey)] = entry{value: append([]byte{}, value...)}
	}
}

// PutN - store a big endian uint64 followed by optional data
func (t *Transaction) PutN(p *PoolHandle, key []byte, n uint64, data []byte) {
	buffer := make([]byte, 8, 8+len(data))
	binary.BigEndian.PutUint64(buffer, n)
	t.Put(p, key, append(buffer, data...))
}

// Delete - remove a key
func (t *Transaction) Delete(p *PoolHandle, key []byte) {
	prefixedKey := p.prefixKey(key)
	t.batch.Delete(prefixedKey)
	if p.cached {
		t.pending[string(prefixedKey)] = entry{removed: true}
	}
}

// Len - number of writes collected
func (t *Transaction) Len() int {
	return t.batch.Len()
}

// Commit - write everything as one batch
func (t *Transaction) Commit() error {
	if t.done {
		return fault.BatchInUse
	}

	s := t.store
	s.RLock()
	defer s.RUnlock()

	if nil == s.db {
		return fault.DatabaseIsNotSet
	}

	err := s.db.Write(t.batch, nil)
	if nil != err {
		return err
	}
	t.done = true

	for k, e := range t.pending {
		if e.removed {
			s.cache.Remove(k)
		} else {
			s.cache.Put(k, e.value)
		}
	}
	return nil
}

// Abort - discard all collected writes
func (t *Transaction) Abort() {
	t.batch.Reset()
	t.pending = make(map[string]entry)
	t.done = true
}
