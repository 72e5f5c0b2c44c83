// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/meditrace/fault"
)

// common errors - keep in alphabetic order
var (
	ErrRequiredBatchNumber    = fault.InvalidError("batch number is required")
	ErrRequiredConfig         = fault.InvalidError("config file is required: set --config or XDG_CONFIG_HOME")
	ErrRequiredConnect        = fault.InvalidError("connect is required")
	ErrRequiredDistributor    = fault.InvalidError("distributor is required")
	ErrRequiredExpirationDate = fault.InvalidError("expiration date is required")
	ErrRequiredHolder         = fault.InvalidError("holder is required")
	ErrRequiredManufacturer   = fault.InvalidError("manufacturer is required")
	ErrRequiredName           = fault.InvalidError("product name is required")
	ErrRequiredOneOfActors    = fault.InvalidError("exactly one of holder or manufacturer is required")
	ErrRequiredPayTo          = fault.InvalidError("pay-to address is required when paying")
	ErrRequiredProductId      = fault.InvalidError("product id is required")
)
