// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command line client for meditraced
//
// Records custody events for medical products.  When a wallet URL is
// given each chargeable operation is paid for first and the payment
// reference is sent with the request, e.g.:
//
//   meditrace-cli --wallet=http://127.0.0.1:8545 --pay-to=0x12ab... \
//       create --name=Amoxicillin --batch=B-1 --expires=2027-01-01 --manufacturer=acme
package main
