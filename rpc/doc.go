// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - JSON-RPC access to the custody ledger
//
// The services are "Product" (custody transitions and queries) and
// "Node" (daemon status).  Each connection carries the net/rpc jsonrpc
// codec, over TLS when a certificate is configured.
package rpc
