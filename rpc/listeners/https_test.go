// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/rpc/certificate"
	"github.com/bitmark-inc/meditrace/rpc/fixtures"
	"github.com/bitmark-inc/meditrace/rpc/handler"
	"github.com/bitmark-inc/meditrace/rpc/listeners"
)

func TestHTTPSDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	h := handler.New(log, newServer(t), nil, time.Now(), "1.0", 5)

	l, err := listeners.NewHTTPS(&listeners.HTTPSConfiguration{}, log, nil, h)
	assert.Nil(t, err, "wrong error")
	assert.Nil(t, l, "listener without listen address")
}

func TestHTTPSConfigurationErrors(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	h := handler.New(log, newServer(t), nil, time.Now(), "1.0", 5)

	_, err := listeners.NewHTTPS(&listeners.HTTPSConfiguration{
		Listen: []string{"127.0.0.1:0"},
	}, log, nil, h)
	assert.Equal(t, fault.MissingParameters, err, "zero connections accepted")

	_, err = listeners.NewHTTPS(&listeners.HTTPSConfiguration{
		MaximumConnections: 1,
		Listen:             []string{"127.0.0.1:0"},
		Allow: map[string][]string{
			"details": {"not-a-network"},
		},
	}, log, nil, h)
	assert.Equal(t, fault.InvalidIpAddress, err, "bad allow accepted")

	_, err = listeners.NewHTTPS(&listeners.HTTPSConfiguration{
		MaximumConnections: 1,
		Listen:             []string{"localhost"},
	}, log, nil, h)
	assert.Equal(t, fault.InvalidIpAddress, err, "bad listen accepted")
}

func TestHTTPSServeRPC(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	h := handler.New(log, newServer(t), nil, time.Now(), "1.0", 5)

	tlsConfig, _, err := certificate.Get(log, "test", fixtures.Certificate(), fixtures.Key())
	assert.Nil(t, err, "wrong certificate")

	l, err := listeners.NewHTTPS(&listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
		Allow: map[string][]string{
			"details": {"127.0.0.0/8"},
		},
	}, log, tlsConfig, h)
	assert.Nil(t, err, "wrong NewHTTPS")

	err = l.Serve()
	assert.Nil(t, err, "wrong Serve")

	addresses := l.Addresses()
	assert.Equal(t, 1, len(addresses), "wrong address count")

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
		Timeout: 5 * time.Second,
	}

	body, _ := json.Marshal(map[string]interface{}{
		"id":     1,
		"method": "Add.Add",
		"params": []AddArg{{A: 3, B: 4}},
	})
	resp, err := client.Post("https://"+addresses[0]+handler.Prefix+"/rpc", "application/json", bytes.NewReader(body))
	if nil != err {
		t.Fatalf("post with error: %s", err)
	}
	var reply struct {
		Result int `json:"result"`
	}
	err = json.NewDecoder(resp.Body).Decode(&reply)
	resp.Body.Close()
	assert.Nil(t, err, "wrong reply body")
	assert.Equal(t, 7, reply.Result, "wrong result")

	resp, err = client.Get("https://" + addresses[0] + handler.Prefix + "/details")
	if nil != err {
		t.Fatalf("get with error: %s", err)
	}
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "details denied to loopback")

	assert.Nil(t, l.Close(), "wrong Close")
	assert.Equal(t, 0, len(l.Addresses()), "addresses after Close")
}
