// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody

import (
	"reflect"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/gnomon"
	"github.com/bitmark-inc/meditrace/identifier"
	"github.com/bitmark-inc/meditrace/registry"
	"github.com/bitmark-inc/meditrace/storage"
	"github.com/bitmark-inc/meditrace/transactionrecord"
	"github.com/bitmark-inc/meditrace/txlog"
)

// DefaultVerifier - recorded as the source of a verification when the
// caller does not name one
const DefaultVerifier = "verification_system"

// Policy - transition rules
type Policy struct {
	// refuse transitions that move status backwards
	Strict bool `gluamapper:"strict" json:"strict"`
}

// Options - optional collaborators, zero values select defaults
type Options struct {
	Policy    Policy
	Generator identifier.Generator
	Clock     *gnomon.Clock
	Log       *logger.L
}

// Ledger - transaction log plus the registry derived from it
type Ledger struct {
	log      *logger.L
	policy   Policy
	ids      identifier.Generator
	txlog    *txlog.Log
	registry *registry.Registry

	// transitions and reads hold this shared, a rebuild holds it
	// exclusively
	global sync.RWMutex
	locks  productLocks
}

// New - a ledger over a store, any events already in the store are
// replayed into the registry
func New(store *storage.Store, options Options) (*Ledger, error) {

	ids := options.Generator
	if nil == ids {
		ids = identifier.New()
	}
	clock := options.Clock
	if nil == clock {
		clock = gnomon.NewClock()
	}

	l, err := txlog.New(store, ids, clock, options.Log)
	if nil != err {
		return nil, err
	}

	ledger := &Ledger{
		log:      options.Log,
		policy:   options.Policy,
		ids:      ids,
		txlog:    l,
		registry: registry.New(),
	}

	err = ledger.Rebuild()
	if nil != err {
		return nil, err
	}
	return ledger, nil
}

// Policy - the transition rules in force
func (ledger *Ledger) Policy() Policy {
	ledger.global.RLock()
	defer ledger.global.RUnlock()
	return ledger.policy
}

// SetPolicy - change the transition rules, waits for transitions in
// progress to finish
func (ledger *Ledger) SetPolicy(policy Policy) {
	ledger.global.Lock()
	defer ledger.global.Unlock()

	if policy != ledger.policy {
		ledger.infof("policy: strict: %t → %t", ledger.policy.Strict, policy.Strict)
	}
	ledger.policy = policy
}

// Rebuild - discard the registry and derive it again from the log
func (ledger *Ledger) Rebuild() error {
	ledger.global.Lock()
	defer ledger.global.Unlock()

	fresh, err := ledger.replay()
	if nil != err {
		return err
	}
	ledger.registry.Replace(fresh)

	ledger.infof("registry rebuilt: %d products  %d transactions", fresh.Len(), ledger.txlog.Len())
	return nil
}

// Audit - compare the registry with one derived from the log and
// return the ids of products that differ; with repair set the
// registry is replaced by the derived one
func (ledger *Ledger) Audit(repair bool) ([]string, error) {
	ledger.global.Lock()
	defer ledger.global.Unlock()

	fresh, err := ledger.replay()
	if nil != err {
		return nil, err
	}

	current := ledger.registry.Snapshot()
	derived := fresh.Snapshot()

	drifted := make([]string, 0)
	seen := make(map[string]struct{}, len(derived))
	for _, p := range derived {
		seen[p.Id] = struct{}{}
		live, ok := ledger.registry.Get(p.Id)
		if !ok || !reflect.DeepEqual(live, p) {
			drifted = append(drifted, p.Id)
		}
	}
	for _, p := range current {
		if _, ok := seen[p.Id]; !ok {
			drifted = append(drifted, p.Id)
		}
	}
	if 0 == len(drifted) {
		return drifted, nil
	}

	for _, id := range drifted {
		ledger.warnf("registry drift: product: %s", id)
	}
	if repair {
		ledger.registry.Replace(fresh)
	}
	return drifted, nil
}

// build a registry from the log, global lock must be held
func (ledger *Ledger) replay() (*registry.Registry, error) {
	fresh := registry.New()
	err := ledger.txlog.Replay(func(tx *transactionrecord.Transaction) error {
		return fresh.Apply(tx)
	})
	if nil != err {
		ledger.criticalf("replay failed: %s", err)
		return nil, err
	}
	return fresh, nil
}

// ProductCount - number of products
func (ledger *Ledger) ProductCount() int {
	return ledger.registry.Len()
}

// TransactionCount - number of events in the log
func (ledger *Ledger) TransactionCount() uint64 {
	return ledger.txlog.Len()
}

func (ledger *Ledger) infof(format string, arguments ...interface{}) {
	if nil != ledger.log {
		ledger.log.Infof(format, arguments...)
	}
}

func (ledger *Ledger) warnf(format string, arguments ...interface{}) {
	if nil != ledger.log {
		ledger.log.Warnf(format, arguments...)
	}
}

func (ledger *Ledger) criticalf(format string, arguments ...interface{}) {
	if nil != ledger.log {
		ledger.log.Criticalf(format, arguments...)
	}
}

// guard against use of a zero Ledger
func (ledger *Ledger) ready() error {
	if nil == ledger || nil == ledger.txlog {
		return fault.NotInitialised
	}
	return nil
}
