// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/meditrace/command/meditrace-cli/configuration"
)

func TestSaveAndLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "meditrace-cli")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	filename := filepath.Join(dir, "sub", "meditrace-cli.json")

	first := &configuration.Configuration{
		Connect: "127.0.0.1:2150",
		Plain:   true,
	}
	assert.Nil(t, configuration.Save(filename, first), "wrong first save")

	loaded, err := configuration.Load(filename)
	assert.Nil(t, err, "wrong load")
	assert.Equal(t, first, loaded, "wrong loaded configuration")

	second := &configuration.Configuration{
		Connect:     "10.0.0.1:2150",
		Fingerprint: "ab01",
		Wallet:      "http://127.0.0.1:8545",
		PayTo:       "0x01",
	}
	assert.Nil(t, configuration.Save(filename, second), "wrong second save")

	loaded, err = configuration.Load(filename)
	assert.Nil(t, err, "wrong reload")
	assert.Equal(t, second, loaded, "wrong reloaded configuration")

	backup, err := configuration.Load(filename + ".bk")
	assert.Nil(t, err, "missing backup")
	assert.Equal(t, first, backup, "wrong backup")

	_, err = os.Stat(filename + ".new")
	assert.True(t, os.IsNotExist(err), "temporary file left behind")
}

func TestLoadErrors(t *testing.T) {
	_, err := configuration.Load("/no/such/file.json")
	assert.NotNil(t, err, "missing file accepted")

	f, err := ioutil.TempFile("", "meditrace-cli")
	if nil != err {
		t.Fatalf("temp file error: %s", err)
	}
	defer os.Remove(f.Name())
	f.WriteString("{not json")
	f.Close()

	_, err = configuration.Load(f.Name())
	assert.NotNil(t, err, "bad json accepted")
}
