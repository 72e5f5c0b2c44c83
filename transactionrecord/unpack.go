// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/meditrace/digest"
	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/gnomon"
	"github.com/bitmark-inc/meditrace/payment"
	"github.com/bitmark-inc/meditrace/util"
)

// Unpack - turn the packed content into an event, returning the number
// of bytes consumed; the hash is left as zero
func (record Packed) Unpack() (*Transaction, int, error) {

	kind, n := util.FromVarint64(record)
	if 0 == n {
		return nil, 0, fault.RecordTruncated
	}
	if !Kind(kind).IsValid() {
		return nil, 0, fault.UnknownRecordTag
	}

	tx := &Transaction{
		Kind: Kind(kind),
	}

	field := func(maximum int) (string, bool) {
		b, length := util.ReadBytes(record[n:], maximum)
		if 0 == length {
			return "", false
		}
		n += length
		return string(b), true
	}

	var ok bool
	if tx.Id, ok = field(MaxIdLength); !ok {
		return nil, 0, fault.RecordTruncated
	}
	if tx.ProductId, ok = field(MaxIdLength); !ok {
		return nil, 0, fault.RecordTruncated
	}

	if len(record) < n+gnomon.TotalSize {
		return nil, 0, fault.RecordTruncated
	}
	var cursor gnomon.Cursor
	if err := cursor.UnmarshalBinary(record[n : n+gnomon.TotalSize]); nil != err {
		return nil, 0, err
	}
	tx.Timestamp = cursor.Time()
	n += gnomon.TotalSize

	if tx.From, ok = field(MaxActorLength); !ok {
		return nil, 0, fault.RecordTruncated
	}
	if tx.To, ok = field(MaxActorLength); !ok {
		return nil, 0, fault.RecordTruncated
	}

	count, length := util.FromVarint64(record[n:])
	if 0 == length || count > maxDetailsCount {
		return nil, 0, fault.RecordTruncated
	}
	n += length

	if count > 0 {
		tx.Details = make(Details, count)
	}
	for i := uint64(0); i < count; i += 1 {
		k, ok := field(maxKeyLength)
		if !ok || "" == k {
			return nil, 0, fault.RecordTruncated
		}
		v, ok := field(MaxValueLength)
		if !ok {
			return nil, 0, fault.RecordTruncated
		}
		tx.Details[k] = v
	}

	if len(record) <= n {
		return nil, 0, fault.RecordTruncated
	}
	hasSettlement := record[n]
	n += 1

	switch hasSettlement {
	case 0:
	case 1:
		ref := &payment.SettlementRef{}
		if ref.TxId, ok = field(MaxValueLength); !ok {
			return nil, 0, fault.RecordTruncated
		}
		if ref.Cost, ok = field(MaxValueLength); !ok {
			return nil, 0, fault.RecordTruncated
		}
		tx.SettlementRef = ref
	default:
		return nil, 0, fault.UnknownRecordTag
	}

	return tx, n, nil
}

// Open - reverse of Seal, unpack a stored record and its hash
func Open(record Packed) (*Transaction, error) {
	tx, n, err := record.Unpack()
	if nil != err {
		return nil, err
	}
	if n+digest.Length != len(record) {
		return nil, fault.RecordTruncated
	}
	if err := digest.FromBytes(&tx.Hash, record[n:]); nil != err {
		return nil, err
	}
	return tx, nil
}
