// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transactionrecord - the ledger event and its binary form
//
// A stored record is the packed event content followed by its SHA3-256
// hash.  The hash covers the packed content and the hash of the
// previous event of the same product, so altering or removing any
// event breaks every later hash in that product's chain.
package transactionrecord
