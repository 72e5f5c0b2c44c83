// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/meditrace/command/meditrace-cli/rpccalls"
	"github.com/bitmark-inc/meditrace/payment"
	"github.com/bitmark-inc/meditrace/rpc/product"
)

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkRequired(c.String("name"), ErrRequiredName)
	if nil != err {
		return err
	}
	batch, err := checkRequired(c.String("batch"), ErrRequiredBatchNumber)
	if nil != err {
		return err
	}
	expires, err := checkRequired(c.String("expires"), ErrRequiredExpirationDate)
	if nil != err {
		return err
	}
	manufacturer, err := checkRequired(c.String("manufacturer"), ErrRequiredManufacturer)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "name: %q\n", name)
		fmt.Fprintf(m.e, "batch: %q\n", batch)
		fmt.Fprintf(m.e, "expires: %q\n", expires)
		fmt.Fprintf(m.e, "manufacturer: %q\n", manufacturer)
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	ref, err := settle(m, payment.AddProduct, name+"/"+batch)
	if nil != err {
		return err
	}

	response, err := client.Create(&product.CreateArguments{
		Name:           name,
		BatchNumber:    batch,
		ExpirationDate: expires,
		Description:    c.String("description"),
		Manufacturer:   manufacturer,
		Settlement:     ref,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
