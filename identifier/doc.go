// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identifier - external identifiers for products, QR codes and
// ledger transactions
//
// Product ids embed the creation time so they are human scannable,
// transaction ids and QR suffixes are purely random.
package identifier
