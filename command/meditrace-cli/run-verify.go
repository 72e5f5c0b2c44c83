// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/meditrace/command/meditrace-cli/rpccalls"
	"github.com/bitmark-inc/meditrace/payment"
	"github.com/bitmark-inc/meditrace/rpc/product"
)

func runVerify(c *cli.Context) error {

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

	ref, err := settle(m, payment.ViewHistory, productId)
	if nil != err {
		return err
	}

	response, err := client.Verify(&product.VerifyArguments{
		ProductId:  productId,
		Verifier:   c.String("verifier"),
		Settlement: ref,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
