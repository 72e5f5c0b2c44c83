// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/bitmark-inc/meditrace/payment"
	"github.com/bitmark-inc/meditrace/registry"
	"github.com/bitmark-inc/meditrace/transactionrecord"
)

func newTable(handle io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(handle)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	return table
}

func printCostsTable(handle io.Writer, costs []payment.Cost, gasCost string) {
	table := newTable(handle, []string{"Operation", "Cost", "Description"})
	for _, c := range costs {
		table.Append([]string{c.Name, payment.FormatEth(c.Amount), c.Description})
	}
	if "" != gasCost {
		table.SetFooter([]string{"", "gas " + payment.FormatEth(gasCost), "per transfer"})
	}
	table.Render()
}

func printHistoryTable(handle io.Writer, transactions []*transactionrecord.Transaction) {
	table := newTable(handle, []string{"Time", "Kind", "From", "To", "Details", "Settlement"})
	for _, tx := range transactions {
		settlement := ""
		if nil != tx.SettlementRef {
			settlement = tx.SettlementRef.TxId
		}
		table.Append([]string{
			tx.Timestamp.UTC().Format(time.RFC3339),
			tx.Kind.String(),
			tx.From,
			tx.To,
			formatDetails(tx.Details),
			settlement,
		})
	}
	table.Render()
}

func printProductsTable(handle io.Writer, products []registry.Product) {
	table := newTable(handle, []string{"Id", "Name", "Batch", "Expires", "Status", "Holder"})
	for _, p := range products {
		table.Append([]string{
			p.Id,
			p.Name,
			p.BatchNumber,
			p.ExpirationDate,
			p.Status.String(),
			p.CurrentHolderId,
		})
	}
	table.Render()
}

// key=value pairs in key order
func formatDetails(details transactionrecord.Details) string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + details[k]
	}
	return strings.Join(pairs, " ")
}
