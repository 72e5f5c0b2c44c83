// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of each error so callers can compare
// directly, or test the class of an error (invalid, not found,
// payment...) without resorting to partial string matches
package fault
