// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/audit"
	"github.com/bitmark-inc/meditrace/custody"
	"github.com/bitmark-inc/meditrace/storage"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// periodic memory and ledger totals
type stats struct {
	log     *logger.L
	ledger  *custody.Ledger
	store   *storage.Store
	auditor *audit.Auditor
}

func (s *stats) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.log

	ticker := time.NewTicker(statsDelay)
	defer ticker.Stop()

	for {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M", m.Alloc/mega, m.TotalAlloc/mega, m.Sys/mega)
		log.Infof("products: %d  transactions: %d", s.ledger.ProductCount(), s.ledger.TransactionCount())
		c := s.store.CacheStats()
		log.Infof("record cache hits: %d  misses: %d  items: %d", c.Hits, c.Misses, c.Items)
		if nil != s.auditor {
			a := s.auditor.Stats()
			log.Infof("audit runs: %d  repairs: %d  failures: %d", a.Runs, a.Repairs, a.Failures)
		}

		select {
		case <-shutdown:
			return
		case <-ticker.C:
		}
	}
}
