// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gnomon - a specialised timestamp to order ledger events
//
// consists of:
//   seconds (int64)    -> the UTC unix time
//   nano seconds (int) -> fractional time [0 .. 999,999,999]
//
// A Clock never returns the same value twice and never goes
// backwards, even if the system time is stepped back, so events
// appended in sequence always carry increasing timestamps.
package gnomon
