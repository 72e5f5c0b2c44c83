// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/meditrace/rpc/fixtures"
)

func setupDirectory(t *testing.T, conf string) (string, func()) {
	dir, err := ioutil.TempDir("", "meditraced")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	name := filepath.Join(dir, "meditraced.conf")
	if err := ioutil.WriteFile(name, []byte(conf), 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}
	return name, func() { os.RemoveAll(dir) }
}

func TestGetConfigurationDefaults(t *testing.T) {
	name, remove := setupDirectory(t, `return { data_directory = "." }`)
	defer remove()

	dir := filepath.Dir(name)

	c, err := getConfiguration(name)
	assert.Nil(t, err, "wrong getConfiguration")
	assert.Equal(t, dir, c.DataDirectory, "wrong data directory")
	assert.Equal(t, filepath.Join(dir, "data", "meditrace.leveldb"), c.Database.Name, "wrong database")
	assert.Equal(t, filepath.Join(dir, "log"), c.Logging.Directory, "wrong log directory")
	assert.Equal(t, defaultAuditInterval, c.Audit.Interval, "wrong audit interval")
	assert.Equal(t, uint64(defaultRPCClients), c.ClientRPC.MaximumConnections, "wrong connections")
	assert.False(t, c.Policy.Strict, "wrong default policy")
	assert.Equal(t, c.Database.Name, c.databaseName(), "wrong database name")

	info, err := os.Stat(filepath.Join(dir, "data"))
	assert.Nil(t, err, "data directory not created")
	assert.True(t, info.IsDir(), "data is not a directory")
}

func TestGetConfigurationLoadsPEM(t *testing.T) {
	name, remove := setupDirectory(t, `
return {
    data_directory = ".",
    policy = { strict = true },
    database = { in_memory = true },
    audit = { interval = 0 },
    client_rpc = {
        listen = { "127.0.0.1:2150" },
        certificate = "rpc.crt",
        private_key = "rpc.key",
    },
}`)
	defer remove()

	dir := filepath.Dir(name)
	err := ioutil.WriteFile(filepath.Join(dir, "rpc.crt"), []byte(fixtures.Certificate()), 0600)
	assert.Nil(t, err, "write certificate")
	err = ioutil.WriteFile(filepath.Join(dir, "rpc.key"), []byte(fixtures.Key()), 0600)
	assert.Nil(t, err, "write key")

	c, err := getConfiguration(name)
	assert.Nil(t, err, "wrong getConfiguration")
	assert.True(t, c.Policy.Strict, "wrong policy")
	assert.Equal(t, "", c.databaseName(), "memory database not selected")
	assert.Equal(t, 0, c.Audit.Interval, "wrong audit interval")
	assert.Equal(t, fixtures.Certificate(), c.ClientRPC.Certificate, "certificate not loaded")
	assert.Equal(t, fixtures.Key(), c.ClientRPC.PrivateKey, "key not loaded")
}

func TestGetConfigurationErrors(t *testing.T) {
	cases := []string{
		`return { }`,
		`return { data_directory = "/no/such/directory" }`,
		`return { data_directory = ".", audit = { interval = -1 } }`,
		`return { data_directory = ".", database = { name = "sub/db.leveldb" } }`,
		`return { data_directory = ".", client_rpc = { listen = { "127.0.0.1:2150" }, certificate = "missing.crt" } }`,
	}
	for i, conf := range cases {
		name, remove := setupDirectory(t, conf)
		_, err := getConfiguration(name)
		assert.NotNil(t, err, "case %d accepted", i)
		remove()
	}
}

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/x.db", ensureAbsolute("/data", "x.db"), "wrong relative")
	assert.Equal(t, "/other/x.db", ensureAbsolute("/data", "/other/x.db"), "wrong absolute")
	assert.Equal(t, "/data/log", ensureAbsolute("/data", "./log/"), "wrong clean")
}
