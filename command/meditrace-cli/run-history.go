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

// with --verify the lookup is paid for and recorded as a verification
func runHistory(c *cli.Context) error {

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

	arguments := &product.HistoryArguments{
		ProductId: productId,
		Verifier:  c.String("verifier"),
	}
	if c.Bool("verify") {
		ref, err := settle(m, payment.ViewHistory, productId)
		if nil != err {
			return err
		}
		if nil == ref {
			_, err = client.Verify(&product.VerifyArguments{
				ProductId: productId,
				Verifier:  arguments.Verifier,
			})
			if nil != err {
				return err
			}
		}
		arguments.Settlement = ref
	}

	response, err := client.History(arguments)
	if nil != err {
		return err
	}

	if m.table {
		printHistoryTable(m.w, response.Transactions)
		return nil
	}
	printJson(m.w, response)
	return nil
}
