// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identifier

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"

	"github.com/mr-tron/base58"
)

// identifier layout
const (
	productPrefix = "MED-"
	qrPrefix      = "QR-"

	productSuffixLength = 4
	qrSuffixLength      = 6
	transactionIdBytes  = 8

	base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Generator - source of external identifiers
type Generator interface {
	ProductId() string
	TransactionId() string
	QrCode(productId string) string
}

// Random - identifiers from the system random source and clock
type Random struct {
	now func() time.Time
}

// New - default generator
func New() *Random {
	return &Random{
		now: time.Now,
	}
}

// ProductId - MED-<unix milliseconds>-<random base36>
func (g *Random) ProductId() string {
	ms := g.now().UnixNano() / int64(time.Millisecond)
	return productPrefix + strconv.FormatInt(ms, 10) + "-" + randomBase36(productSuffixLength)
}

// TransactionId - base58 of random bytes
func (g *Random) TransactionId() string {
	return base58.Encode(randomBytes(transactionIdBytes))
}

// QrCode - QR-<product id>-<random base36>
func (g *Random) QrCode(productId string) string {
	return qrPrefix + productId + "-" + randomBase36(qrSuffixLength)
}

// IsProductId - loose check that a string has the product id shape
func IsProductId(s string) bool {
	if !strings.HasPrefix(s, productPrefix) {
		return false
	}
	parts := strings.Split(s[len(productPrefix):], "-")
	if 2 != len(parts) || 0 == len(parts[0]) || 0 == len(parts[1]) {
		return false
	}
	if _, err := strconv.ParseInt(parts[0], 10, 64); nil != err {
		return false
	}
	return "" == strings.Trim(parts[1], base36)
}

// base36 text with a slight bias from the modulo, which is of no
// consequence for identifiers
func randomBase36(n int) string {
	b := randomBytes(n)
	for i := range b {
		b[i] = base36[int(b[i])%len(base36)]
	}
	return string(b)
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); nil != err {
		panic("identifier: random source failed: " + err.Error())
	}
	return b
}
