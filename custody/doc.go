// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package custody - the custody state machine
//
// A Ledger owns the transaction log and the product registry derived
// from it.  Every transition is validated first, then appended to the
// log and applied to the registry while the product's lock is held,
// so readers never see a half applied transition.
//
//   create → manufactured
//   assign → assigned     (holder becomes the distributor)
//   sell   → sold         (holder becomes the healthcare provider)
//   verify → unchanged    (records that a check took place)
//
// By default a product may be assigned or sold again from any state.
// A strict Policy refuses transitions that would move the status
// backwards.
package custody
