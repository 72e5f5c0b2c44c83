// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/meditrace/payment"
)

// plain value transfer
const transferGasLimit = 21000

type costsReply struct {
	Costs   []payment.Cost `json:"costs"`
	GasCost string         `json:"gasCost,omitempty"`
}

// the price list, plus the gas for one transfer when a gas price is given
func runCosts(c *cli.Context) error {

	reply := costsReply{
		Costs: payment.Costs,
	}
	if gasPrice := c.Uint64("gas-price"); 0 != gasPrice {
		reply.GasCost = payment.GasCost(gasPrice, transferGasLimit)
	}

	if c.GlobalBool("table") {
		printCostsTable(c.App.Writer, reply.Costs, reply.GasCost)
		return nil
	}
	printJson(c.App.Writer, reply)
	return nil
}
