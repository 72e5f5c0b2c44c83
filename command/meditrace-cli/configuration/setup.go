// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - the client's saved connection and wallet
// settings, global flags override these
package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Configuration - configuration file data format
type Configuration struct {
	Connect     string `json:"connect"`
	Plain       bool   `json:"plain,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Wallet      string `json:"wallet,omitempty"`
	Account     string `json:"account,omitempty"`
	PayTo       string `json:"pay_to,omitempty"`
}

// Load - read the configuration
func Load(filename string) (*Configuration, error) {

	options := &Configuration{}

	err := readConfiguration(filename, options)
	if nil != err {
		return nil, err
	}
	return options, nil
}

// generic JSON decoder
func readConfiguration(filename string, options interface{}) error {

	filename, err := filepath.Abs(filepath.Clean(filename))
	if nil != err {
		return err
	}

	f, err := os.Open(filename)
	if nil != err {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	err = dec.Decode(options)
	if nil != err {
		return err
	}

	return nil
}
