// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ethereum - settle payments through a wallet that exposes
// the Ethereum JSON-RPC interface over HTTP
//
// Each payment is a single eth_sendTransaction; the wallet is
// responsible for signing, user confirmation and broadcasting.
package ethereum
