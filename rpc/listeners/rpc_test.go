// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/counter"
	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/rpc/certificate"
	"github.com/bitmark-inc/meditrace/rpc/fixtures"
	"github.com/bitmark-inc/meditrace/rpc/listeners"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func newServer(t *testing.T) *rpc.Server {
	s := rpc.NewServer()
	if err := s.Register(Add{}); nil != err {
		t.Fatalf("register with error: %s", err)
	}
	return s
}

func callAdd(t *testing.T, conn net.Conn) {
	client := jsonrpc.NewClient(conn)
	defer client.Close()

	arg := AddArg{
		A: 2,
		B: 5,
	}
	var reply int
	err := client.Call("Add.Add", &arg, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, arg.A+arg.B, reply, "wrong result")
}

func TestRpcListenerServeTLS(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
	}
	count := counter.Counter(0)

	tlsConfig, _, err := certificate.Get(log, "test", fixtures.Certificate(), fixtures.Key())
	assert.Nil(t, err, "wrong certificate")

	l, err := listeners.NewRPC(&con, log, &count, newServer(t), tlsConfig)
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Close()

	addresses := l.Addresses()
	assert.Equal(t, 1, len(addresses), "wrong address count")

	conn, err := tls.Dial("tcp", addresses[0], &tls.Config{InsecureSkipVerify: true})
	if nil != err {
		t.Fatalf("dial with error: %s", err)
	}
	callAdd(t, conn)
}

func TestRpcListenerServePlain(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
	}
	count := counter.Counter(0)

	l, err := listeners.NewRPC(&con, logger.New(fixtures.LogCategory), &count, newServer(t), nil)
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.Nil(t, err, "wrong Serve")

	conn, err := net.Dial("tcp", l.Addresses()[0])
	if nil != err {
		t.Fatalf("dial with error: %s", err)
	}
	callAdd(t, conn)

	assert.Nil(t, l.Close(), "wrong Close")
	assert.Equal(t, 0, len(l.Addresses()), "addresses remain after Close")
}

func TestNewRPCErrors(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	count := counter.Counter(0)
	s := rpc.NewServer()

	cases := []struct {
		name          string
		configuration listeners.RPCConfiguration
		err           error
	}{
		{
			name: "no connections",
			configuration: listeners.RPCConfiguration{
				MaximumConnections: 0,
				Listen:             []string{"127.0.0.1:2150"},
			},
			err: fault.MissingParameters,
		},
		{
			name: "no listen",
			configuration: listeners.RPCConfiguration{
				MaximumConnections: 1,
			},
			err: fault.MissingParameters,
		},
		{
			name: "host name",
			configuration: listeners.RPCConfiguration{
				MaximumConnections: 1,
				Listen:             []string{"localhost:2150"},
			},
			err: fault.InvalidIpAddress,
		},
		{
			name: "no port",
			configuration: listeners.RPCConfiguration{
				MaximumConnections: 1,
				Listen:             []string{"127.0.0.1"},
			},
			err: fault.InvalidIpAddress,
		},
	}

	for _, c := range cases {
		_, err := listeners.NewRPC(&c.configuration, log, &count, s, nil)
		assert.Equal(t, c.err, err, c.name)
	}
}

func TestNewRPCAcceptsAllForms(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	count := counter.Counter(0)
	con := listeners.RPCConfiguration{
		MaximumConnections: 1,
		Listen:             []string{"*:2150", "[::1]:2150", "10.0.0.1:2150"},
	}
	_, err := listeners.NewRPC(&con, logger.New(fixtures.LogCategory), &count, rpc.NewServer(), nil)
	assert.Nil(t, err, "wrong NewRPC")
	assert.Equal(t, "*:2150", con.Listen[0], "configuration was modified")
}
