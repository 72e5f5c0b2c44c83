// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/payment"
	"github.com/bitmark-inc/meditrace/transactionrecord"
)

// Status - custody state of a product
type Status int

// the custody states in order of progress
const (
	Unknown Status = iota
	Manufactured
	Assigned
	Sold
	Verified
)

var statusNames = map[Status]string{
	Manufactured: "manufactured",
	Assigned:     "assigned",
	Sold:         "sold",
	Verified:     "verified",
}

// String - name of the status
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText - status as its name
func (s Status) MarshalText() ([]byte, error) {
	if _, ok := statusNames[s]; !ok {
		return nil, fault.InvalidKind
	}
	return []byte(s.String()), nil
}

// UnmarshalText - status from its name
func (s *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fault.InvalidKind
}

// StatusAfter - the status an event kind moves a product to, false if
// the kind does not change status
func StatusAfter(kind transactionrecord.Kind) (Status, bool) {
	switch kind {
	case transactionrecord.Created:
		return Manufactured, true
	case transactionrecord.Assigned:
		return Assigned, true
	case transactionrecord.Sold:
		return Sold, true
	default:
		return Unknown, false
	}
}

// Product - current state of one traced product
type Product struct {
	Id              string                 `json:"id"`
	Name            string                 `json:"name"`
	BatchNumber     string                 `json:"batchNumber"`
	ExpirationDate  string                 `json:"expirationDate"`
	Description     string                 `json:"description"`
	ManufacturerId  string                 `json:"manufacturer"`
	CurrentHolderId string                 `json:"currentHolder"`
	Status          Status                 `json:"status"`
	QrCode          string                 `json:"qrCode,omitempty"`
	SettlementRef   *payment.SettlementRef `json:"settlementRef,omitempty"`
}

// copy with no shared pointers
func (p *Product) clone() Product {
	c := *p
	c.SettlementRef = p.SettlementRef.Copy()
	return c
}
