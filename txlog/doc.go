// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txlog - the append-only transaction log
//
// The log is the only authority for product history.  Each event is
// written once, in a single storage batch together with its index
// entries, and never changed or removed afterwards.
//
// storage layout:
//   Transactions:  txId                          → sealed record
//   ProductIndex:  Varint64(len) ‖ productId ‖ N  → txId
//   ProductHead:   Varint64(len) ‖ productId      → count ‖ last hash
//   Sequence:      N                             → txId
// where N is a big endian uint64 starting from zero
package txlog
