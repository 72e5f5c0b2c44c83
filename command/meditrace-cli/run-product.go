// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/meditrace/command/meditrace-cli/rpccalls"
	"github.com/bitmark-inc/meditrace/registry"
)

func runProduct(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	productId, err := checkProductId(c.String("product"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Get(productId)
	if nil != err {
		return err
	}

	if m.table {
		printProductsTable(m.w, []registry.Product{response.Product})
		return nil
	}
	printJson(m.w, response.Product)
	return nil
}
