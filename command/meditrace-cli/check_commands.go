// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strings"
)

// a value that must be present after trimming
func checkRequired(value string, missing error) (string, error) {
	value = strings.TrimSpace(value)
	if "" == value {
		return "", missing
	}
	return value, nil
}

// connect is required.
func checkConnect(connect string) (string, error) {
	return checkRequired(connect, ErrRequiredConnect)
}

// product id is required
func checkProductId(productId string) (string, error) {
	return checkRequired(productId, ErrRequiredProductId)
}

// exactly one of the two actors
func checkOneActor(holder string, manufacturer string) (string, string, error) {
	holder = strings.TrimSpace(holder)
	manufacturer = strings.TrimSpace(manufacturer)
	if ("" == holder) == ("" == manufacturer) {
		return "", "", ErrRequiredOneOfActors
	}
	return holder, manufacturer, nil
}
