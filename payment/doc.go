// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package payment - correlation of custody events with value
// transfers settled outside the ledger
//
// The ledger only records a SettlementRef exactly as the payment
// provider reported it.  Obtaining one is the job of a Settler, which
// is given to callers of the ledger and never to the ledger itself.
package payment
