// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/meditrace/command/meditrace-cli/rpccalls"
	"github.com/bitmark-inc/meditrace/payment"
	"github.com/bitmark-inc/meditrace/rpc/product"
)

func runAssign(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	productId, err := checkProductId(c.String("product"))
	if nil != err {
		return err
	}
	distributor, err := checkRequired(c.String("distributor"), ErrRequiredDistributor)
	if nil != err {
		return err
	}

	dispatched := c.String("dispatched")
	if "" == dispatched {
		dispatched = time.Now().UTC().Format("2006-01-02")
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	ref, err := settle(m, payment.AssignProduct, productId)
	if nil != err {
		return err
	}

	response, err := client.Assign(&product.AssignArguments{
		ProductId:    productId,
		Distributor:  distributor,
		DispatchDate: dispatched,
		Settlement:   ref,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
