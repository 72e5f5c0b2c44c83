// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - LevelDB key/value pools
//
// A single database is split into pools by a one byte key prefix
// declared as a struct tag on the Pools structure.  The database can
// be a file or held in memory for the lifetime of the process.
//
// All writes go through a Transaction, which is applied as one
// LevelDB batch so a set of related keys is either fully visible or
// not visible at all.
package storage
