// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"
)

// Pools - the set of storage pools
//
// note all must be exported (i.e. initial capital) or Open will fail
type Pools struct {
	Transactions *PoolHandle `prefix:"T" cache:"yes"` // txId → sealed record
	ProductIndex *PoolHandle `prefix:"I"`             // productId ‖ count → txId
	ProductHead  *PoolHandle `prefix:"H"`             // productId → count ‖ last hash
	Sequence     *PoolHandle `prefix:"S"`             // global count → txId
	TestData     *PoolHandle `prefix:"Z"`
}

// Store - an open database and its pools
type Store struct {
	sync.RWMutex
	db       *leveldb.DB
	cache    Cache
	readOnly bool
	memory   bool

	Pools Pools
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Open - open a database file, or an empty in-memory database if the
// name is empty
func Open(database string, readOnly bool) (*Store, error) {

	s := &Store{
		readOnly: readOnly,
		memory:   "" == database,
		cache:    newCache(),
	}

	var err error
	if s.memory {
		s.db, err = leveldb.Open(ldb_storage.NewMemStorage(), nil)
	} else {
		opt := &ldb_opt.Options{
			ErrorIfExist:   false,
			ErrorIfMissing: readOnly,
			ReadOnly:       readOnly,
		}
		s.db, err = leveldb.OpenFile(database, opt)
	}
	if nil != err {
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			s.db.Close()
		}
	}()

	version, err := getVersion(s.db)
	if nil != err {
		return nil, err
	}

	switch {
	case 0 == version && !readOnly:
		// database was empty so tag as current version
		err = putVersion(s.db, currentDBVersion)
		if nil != err {
			return nil, err
		}
	case currentDBVersion != version:
		logger.Criticalf("database: %q version: %d  current version: %d", database, version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d  current version: %d", version, currentDBVersion)
	}

	err = s.setupPools()
	if nil != err {
		return nil, err
	}

	ok = true // prevent db close
	return s, nil
}

// scan each field of Pools and attach a handle for its prefix
func (s *Store) setupPools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(s.Pools)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&s.Pools).Elem()

	seen := make(map[byte]string)

	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) || 0 == prefixTag[0] {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo.Name, prefixTag)
		}

		prefix := prefixTag[0]
		if other, ok := seen[prefix]; ok {
			return fmt.Errorf("pool: %v has same prefix as: %v", fieldInfo.Name, other)
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			store:  s,
			cached: "yes" == fieldInfo.Tag.Get("cache"),
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// Close - close the database, pools will then return nothing
func (s *Store) Close() {
	s.Lock()
	defer s.Unlock()

	if nil != s.db {
		s.db.Close()
		s.db = nil
	}
	s.cache.Clear()
}

// IsMemory - true if nothing is kept after Close
func (s *Store) IsMemory() bool {
	return s.memory
}

// IsReadOnly - true if Begin is refused
func (s *Store) IsReadOnly() bool {
	return s.readOnly
}

// return the stored version, zero for an empty database
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

// CacheStats - record cache counters
func (s *Store) CacheStats() CacheStats {
	return s.cache.Stats()
}
