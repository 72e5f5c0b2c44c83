// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the current state of every product, derived by
// applying transaction log events in order
//
// The registry is only a cache: it can always be rebuilt from the log.
package registry
