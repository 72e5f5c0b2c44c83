// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for tests of the rpc packages and
// of the long-running components that need a real logger
package fixtures

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

var (
	pairOnce    sync.Once
	certificate string
	key         string
)

// SetupTestLogger - create a fresh log directory and initialise the logger
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop the logger and remove its files
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// Certificate - PEM certificate of a self-signed pair for local listeners
func Certificate() string {
	pairOnce.Do(generate)
	return certificate
}

// Key - PEM private key matching Certificate
func Key() string {
	pairOnce.Do(generate)
	return key
}

func generate() {
	c, k, err := certgen.NewTLSCertPair("meditrace testing", time.Now().Add(time.Hour), false, []string{"127.0.0.1"})
	if nil != err {
		panic(fmt.Sprintf("generate test certificate error: %s", err))
	}
	certificate = string(c)
	key = string(k)
}
