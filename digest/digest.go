// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/meditrace/fault"
)

// Length - number of bytes in the digest
const Length = 32

// Digest - type for a SHA3-256 digest
// represented as hex text for JSON encoding and for print
// to convert to bytes just use d[:]
type Digest [Length]byte

// Zero - the digest preceding the first event of any chain
var Zero Digest

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return sha3.Sum256(record)
}

// Chain - digest of a record linked to the digest of its predecessor
func Chain(previous Digest, record []byte) Digest {
	h := sha3.New256()
	h.Write(record)
	h.Write(previous[:])
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// IsZero - true if nothing was ever assigned
func (d Digest) IsZero() bool {
	return Zero == d
}

// String - hex string for use by the fmt package (for %s)
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// GoString - hex string for use by the fmt package (for %#v)
func (d Digest) GoString() string {
	return "<SHA3-256:" + hex.EncodeToString(d[:]) + ">"
}

// Scan - convert a hex representation to a digest for use by the format package scan routines
func (d *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	return d.UnmarshalText(token)
}

// MarshalText - convert digest to hex text
func (d Digest) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(d))
	buffer := make([]byte, size)
	hex.Encode(buffer, d[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (d *Digest) UnmarshalText(s []byte) error {
	if Length != hex.DecodedLen(len(s)) {
		return fault.InvalidDigestLength
	}
	buffer := make([]byte, Length)
	_, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	copy(d[:], buffer)
	return nil
}

// FromBytes - convert and validate a binary byte slice to a digest
func FromBytes(d *Digest, buffer []byte) error {
	if Length != len(buffer) {
		return fault.InvalidDigestLength
	}
	copy(d[:], buffer)
	return nil
}
