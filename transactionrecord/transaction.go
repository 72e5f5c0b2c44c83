// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"sort"
	"time"

	"github.com/bitmark-inc/meditrace/digest"
	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/payment"
)

// Kind - type code for ledger events
// this is encoded a Varint64 at start of "Packed"
type Kind uint64

// enumerate the possible event types
const (
	// null marks beginning of list - not used as a record type
	NullKind = Kind(iota)

	// valid record types
	Created  = Kind(iota) // product registered by its manufacturer
	Assigned = Kind(iota) // custody passed to a distributor
	Sold     = Kind(iota) // custody passed to a healthcare provider
	Verified = Kind(iota) // authenticity was checked, custody unchanged

	// this item must be last
	InvalidKind = Kind(iota)
)

// detail keys
const (
	DetailName           = "name"
	DetailBatchNumber    = "batchNumber"
	DetailExpirationDate = "expirationDate"
	DetailDescription    = "description"
	DetailManufacturer   = "manufacturer"
	DetailDispatchDate   = "dispatchDate"
	DetailQrCode         = "qrCode"
	DetailVerified       = "verified"
)

// byte sizes for various fields
const (
	MaxIdLength    = 128  // product and transaction ids
	MaxActorLength = 256  // from and to
	MaxValueLength = 8192 // each detail value and settlement field

	maxKeyLength    = 64
	maxDetailsCount = 64
)

// Details - kind specific payload
type Details map[string]string

// Transaction - one immutable ledger event
type Transaction struct {
	Id            string                 `json:"id"`
	ProductId     string                 `json:"productId"`
	Kind          Kind                   `json:"type"`
	Timestamp     time.Time              `json:"timestamp"`
	From          string                 `json:"from"`
	To            string                 `json:"to,omitempty"`
	Details       Details                `json:"details"`
	Hash          digest.Digest          `json:"hash"`
	SettlementRef *payment.SettlementRef `json:"settlementRef,omitempty"`
}

// Packed - packed records are just a byte slice
type Packed []byte

var kindNames = map[Kind]string{
	Created:  "created",
	Assigned: "assigned",
	Sold:     "sold",
	Verified: "verified",
}

// IsValid - true for a recordable kind
func (k Kind) IsValid() bool {
	return k > NullKind && k < InvalidKind
}

// String - name of the kind
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// MarshalText - kind as its name
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fault.InvalidKind
	}
	return []byte(k.String()), nil
}

// UnmarshalText - kind from its name
func (k *Kind) UnmarshalText(s []byte) error {
	kind, err := KindFromString(string(s))
	if nil != err {
		return err
	}
	*k = kind
	return nil
}

// KindFromString - convert a name to a kind
func KindFromString(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return NullKind, fault.InvalidKind
}

// Copy - deep copy so callers can never alter a stored event
func (tx *Transaction) Copy() *Transaction {
	if nil == tx {
		return nil
	}
	c := *tx
	if nil != tx.Details {
		c.Details = make(Details, len(tx.Details))
		for k, v := range tx.Details {
			c.Details[k] = v
		}
	}
	c.SettlementRef = tx.SettlementRef.Copy()
	return &c
}

// sorted detail keys so packing is deterministic
func (d Details) keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
