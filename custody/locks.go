// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody

import (
	"sync"

	"github.com/bitmark-inc/meditrace/digest"
)

// number of lock shards must be a power of 2
// and mask is the corresponding bit mask
// only the first byte of the product id digest is used
const (
	shards = 16         // maximum value: 256
	mask   = shards - 1 // bit mask
)

// per-product mutual exclusion
type productLocks [shards]sync.RWMutex

func (l *productLocks) get(productId string) *sync.RWMutex {
	d := digest.NewDigest([]byte(productId))
	return &l[d[0]&mask]
}
