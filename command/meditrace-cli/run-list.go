// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/meditrace/command/meditrace-cli/rpccalls"
	"github.com/bitmark-inc/meditrace/rpc/product"
)

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	holder, manufacturer, err := checkOneActor(c.String("holder"), c.String("manufacturer"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.List(&product.ListArguments{
		Holder:       holder,
		Manufacturer: manufacturer,
	})
	if nil != err {
		return err
	}

	if m.table {
		printProductsTable(m.w, response.Products)
		return nil
	}
	printJson(m.w, response)
	return nil
}
