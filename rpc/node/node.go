// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/counter"
	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

//go:generate mockgen -destination=../mocks/counts.go -package=mocks github.com/bitmark-inc/meditrace/rpc/node Counts

// Counts - ledger totals reported by Info
type Counts interface {
	ProductCount() int
	TransactionCount() uint64
}

// Node - type for RPC calls
type Node struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Start    time.Time
	Version  string
	ReadOnly bool
	Ledger   Counts
	counter  *counter.Counter
}

// New - create the rpc service
func New(log *logger.L, ledger Counts, start time.Time, version string, readOnly bool, counter *counter.Counter) *Node {
	return &Node{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:    start,
		Version:  version,
		ReadOnly: readOnly,
		Ledger:   ledger,
		counter:  counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Mode         string `json:"mode"`
	RPCs         uint64 `json:"rpcs"`
	Products     int    `json:"products"`
	Transactions uint64 `json:"transactions"`
	Version      string `json:"version"`
	Uptime       string `json:"uptime"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Ledger {
		return fault.DatabaseIsNotSet
	}

	reply.Mode = "normal"
	if node.ReadOnly {
		reply.Mode = "read-only"
	}
	if nil != node.counter {
		reply.RPCs = node.counter.Uint64()
	}
	reply.Products = node.Ledger.ProductCount()
	reply.Transactions = node.Ledger.TransactionCount()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
