// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package audit - periodic consistency check of a ledger
//
// The registry is compared with one derived from the transaction log
// and replaced when they differ, then every product's hash chain is
// checked.  A broken chain cannot be repaired automatically and is
// only reported.
package audit

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/counter"
	"github.com/bitmark-inc/meditrace/registry"
)

const minimumInterval = time.Second

//go:generate mockgen -destination=mocks/ledger.go -package=mocks github.com/bitmark-inc/meditrace/audit Ledger

// Ledger - the ledger operations used by the auditor
type Ledger interface {
	Audit(repair bool) ([]string, error)
	ListBy(predicate func(*registry.Product) bool) []registry.Product
	VerifyIntegrity(productId string) error
}

// Auditor - background consistency checker
type Auditor struct {
	log      *logger.L
	ledger   Ledger
	interval time.Duration

	runs     counter.Counter
	repairs  counter.Counter
	failures counter.Counter
}

// Stats - totals since start
type Stats struct {
	Runs     uint64 `json:"runs"`
	Repairs  uint64 `json:"repairs"`
	Failures uint64 `json:"failures"`
}

// New - an auditor checking a ledger at an interval
func New(log *logger.L, ledger Ledger, interval time.Duration) *Auditor {
	if interval < minimumInterval {
		interval = minimumInterval
	}
	return &Auditor{
		log:      log,
		ledger:   ledger,
		interval: interval,
	}
}

// Run - background loop
func (a *Auditor) Run(args interface{}, shutdown <-chan struct{}) {

	log := a.log
	log.Info("starting…")

	timer := time.NewTimer(a.interval)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-timer.C:
			a.Check()
			timer.Reset(a.interval)
		}
	}
	timer.Stop()

	log.Info("shutting down…")
	log.Flush()
}

// Check - one pass, returns the number of products repaired and the
// number with broken hash chains
func (a *Auditor) Check() (int, int) {
	log := a.log
	a.runs.Increment()

	drifted, err := a.ledger.Audit(true)
	if nil != err {
		log.Errorf("audit error: %s", err)
		a.failures.Increment()
		return 0, 0
	}
	if len(drifted) > 0 {
		log.Warnf("registry repaired: %d products: %v", len(drifted), drifted)
		a.repairs.Add(uint64(len(drifted)))
	}

	broken := 0
	for _, p := range a.ledger.ListBy(nil) {
		if err := a.ledger.VerifyIntegrity(p.Id); nil != err {
			log.Criticalf("product: %s  integrity: %s", p.Id, err)
			broken += 1
		}
	}
	if broken > 0 {
		a.failures.Add(uint64(broken))
	}

	log.Debugf("audit complete: repaired: %d  broken: %d", len(drifted), broken)
	return len(drifted), broken
}

// Stats - totals since start
func (a *Auditor) Stats() Stats {
	return Stats{
		Runs:     a.runs.Uint64(),
		Repairs:  a.repairs.Uint64(),
		Failures: a.failures.Uint64(),
	}
}
