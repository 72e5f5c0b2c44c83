// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/counter"
	"github.com/bitmark-inc/meditrace/rpc/node"
	"github.com/bitmark-inc/meditrace/rpc/product"
)

// Ledger - everything the registered services need from the ledger
type Ledger interface {
	product.Ledger
	node.Counts
}

// Create - an rpc server with every service registered
func Create(log *logger.L, version string, ledger Ledger, readOnly bool, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(product.New(log, ledger, readOnly))
	_ = server.Register(node.New(log, ledger, start, version, readOnly, rpcCount))

	return server
}
