// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Cache - recently read or written records of the cached pools
type Cache interface {
	Get(string) ([]byte, bool)
	Put(string, []byte)
	Remove(string)
	Clear()
	Stats() CacheStats
}

// CacheStats - lookup counters since the store was opened
type CacheStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Items  int    `json:"items"`
}

const (
	recordExpiration = 2 * time.Minute
	cleanupInterval  = 5 * time.Minute
)

// a removed key stays as a tombstone until it expires so a stale
// database read cannot resurrect it
type entry struct {
	removed bool
	value   []byte
}

type recordCache struct {
	hits   uint64
	misses uint64
	c      *cache.Cache
}

func newCache() Cache {
	return &recordCache{
		c: cache.New(recordExpiration, cleanupInterval),
	}
}

func (rc *recordCache) Get(key string) ([]byte, bool) {
	obj, found := rc.c.Get(key)
	if !found {
		atomic.AddUint64(&rc.misses, 1)
		return nil, false
	}
	e := obj.(entry)
	if e.removed {
		atomic.AddUint64(&rc.misses, 1)
		return nil, false
	}
	atomic.AddUint64(&rc.hits, 1)
	return e.value, true
}

func (rc *recordCache) Put(key string, value []byte) {
	rc.c.Set(key, entry{value: value}, cache.DefaultExpiration)
}

func (rc *recordCache) Remove(key string) {
	rc.c.Set(key, entry{removed: true}, cache.DefaultExpiration)
}

func (rc *recordCache) Clear() {
	rc.c.Flush()
}

func (rc *recordCache) Stats() CacheStats {
	return CacheStats{
		Hits:   atomic.LoadUint64(&rc.hits),
		Misses: atomic.LoadUint64(&rc.misses),
		Items:  rc.c.ItemCount(),
	}
}
