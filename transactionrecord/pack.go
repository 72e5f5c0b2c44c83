// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/meditrace/digest"
	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/gnomon"
	"github.com/bitmark-inc/meditrace/util"
)

// Pack - the event content, everything except the hash
//
// Varint64(kind) followed by the fields in struct order, each string
// prefixed by Varint64(length), details as a count followed by sorted
// key/value pairs, then a presence byte for the settlement
func (tx *Transaction) Pack() (Packed, error) {
	if !tx.Kind.IsValid() {
		return nil, fault.InvalidKind
	}
	if "" == tx.ProductId || len(tx.ProductId) > MaxIdLength {
		return nil, fault.InvalidProductId
	}
	if "" == tx.Id || len(tx.Id) > MaxIdLength {
		return nil, fault.RecordTruncated
	}
	if len(tx.From) > MaxActorLength || len(tx.To) > MaxActorLength {
		return nil, fault.RecordTruncated
	}
	if len(tx.Details) > maxDetailsCount {
		return nil, fault.RecordTruncated
	}

	timestamp, err := gnomon.FromTime(tx.Timestamp).MarshalBinary()
	if nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(tx.Kind))
	message = util.AppendString(message, tx.Id)
	message = util.AppendString(message, tx.ProductId)
	message = append(message, timestamp...)
	message = util.AppendString(message, tx.From)
	message = util.AppendString(message, tx.To)

	message = append(message, util.ToVarint64(uint64(len(tx.Details)))...)
	for _, k := range tx.Details.keys() {
		v := tx.Details[k]
		if "" == k || len(k) > maxKeyLength || len(v) > MaxValueLength {
			return nil, fault.RecordTruncated
		}
		message = util.AppendString(message, k)
		message = util.AppendString(message, v)
	}

	if nil == tx.SettlementRef {
		message = append(message, 0)
	} else {
		if err := tx.SettlementRef.Validate(); nil != err {
			return nil, err
		}
		if len(tx.SettlementRef.TxId) > MaxValueLength || len(tx.SettlementRef.Cost) > MaxValueLength {
			return nil, fault.RecordTruncated
		}
		message = append(message, 1)
		message = util.AppendString(message, tx.SettlementRef.TxId)
		message = util.AppendString(message, tx.SettlementRef.Cost)
	}
	return message, nil
}

// Seal - compute the hash chained to the previous event of the same
// product, store it in the event and return the stored form: the
// packed content followed by the hash
func (tx *Transaction) Seal(previous digest.Digest) (Packed, error) {
	packed, err := tx.Pack()
	if nil != err {
		return nil, err
	}
	tx.Hash = digest.Chain(previous, packed)
	return append(packed, tx.Hash[:]...), nil
}

// ComputeHash - recompute the chained hash without altering the event
func (tx *Transaction) ComputeHash(previous digest.Digest) (digest.Digest, error) {
	packed, err := tx.Pack()
	if nil != err {
		return digest.Digest{}, err
	}
	return digest.Chain(previous, packed), nil
}
