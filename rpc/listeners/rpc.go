// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - accept JSON-RPC client connections
package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/counter"
	"github.com/bitmark-inc/meditrace/fault"
)

const (
	logName            = "client_rpc"
	minConnectionCount = 1
)

// Listener - a set of listening sockets serving one rpc server
type Listener interface {
	Serve() error
	Addresses() []string
	Close() error
}

// RPCConfiguration - configuration file data for RPC setup
//
// with no certificate the listeners accept plain TCP
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

type rpcListener struct {
	sync.Mutex
	log            *logger.L
	count          *counter.Counter
	server         *rpc.Server
	maxConnections uint64
	tlsConfig      *tls.Config
	networks       []string
	addresses      []string
	listeners      []net.Listener
	finished       sync.WaitGroup
}

// NewRPC - validate the configuration and prepare a listener, a nil
// tlsConfig selects plain TCP
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}
	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	addresses := make([]string, len(configuration.Listen))
	copy(addresses, configuration.Listen)

	networks, err := parseListenAddress(addresses, log)
	if nil != err {
		return nil, err
	}

	if nil == tlsConfig {
		log.Warnf("%s: TLS is disabled", logName)
	}

	return &rpcListener{
		log:            log,
		count:          count,
		server:         server,
		maxConnections: configuration.MaximumConnections,
		tlsConfig:      tlsConfig,
		networks:       networks,
		addresses:      addresses,
	}, nil
}

// Serve - open every listen address and start accepting
func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for i, address := range r.addresses {
		r.log.Infof("starting RPC server: %s", address)

		var listener net.Listener
		var err error
		if nil == r.tlsConfig {
			listener, err = net.Listen(r.networks[i], address)
		} else {
			listener, err = tls.Listen(r.networks[i], address, r.tlsConfig)
		}
		if nil != err {
			r.log.Errorf("rpc server listen error: %s", err)
			return err
		}
		r.listeners = append(r.listeners, listener)

		r.finished.Add(1)
		go func() {
			defer r.finished.Done()
			r.accept(listener)
		}()
	}
	return nil
}

// Addresses - the bound addresses, with ports resolved
func (r *rpcListener) Addresses() []string {
	r.Lock()
	defer r.Unlock()

	result := make([]string, 0, len(r.listeners))
	for _, l := range r.listeners {
		result = append(result, l.Addr().String())
	}
	return result
}

// Close - stop accepting, connections already open run to completion
func (r *rpcListener) Close() error {
	r.Lock()
	listeners := r.listeners
	r.listeners = nil
	r.Unlock()

	var first error
	for _, l := range listeners {
		if err := l.Close(); nil != err && nil == first {
			first = err
		}
	}
	r.finished.Wait()
	return first
}

func (r *rpcListener) accept(listen net.Listener) {
	for {
		conn, err := listen.Accept()
		if nil != err {
			r.log.Infof("rpc accept terminated: %s", err)
			return
		}
		if r.count.Increment() <= r.maxConnections {
			go func() {
				r.server.ServeCodec(jsonrpc.NewServerCodec(conn))
				_ = conn.Close()
				r.count.Decrement()
			}()
		} else {
			r.log.Warnf("connection limit reached, rejecting: %s", conn.RemoteAddr())
			r.count.Decrement()
			_ = conn.Close()
		}
	}
}

// determine the network for each address, "*:PORT" is rewritten in
// place to listen on all interfaces
func parseListenAddress(addrs []string, log *logger.L) ([]string, error) {
	parsed := make([]string, len(addrs))
	for i, listen := range addrs {
		host, port, err := net.SplitHostPort(listen)
		if nil != err {
			log.Errorf("rpc server listen error: %s", err)
			return nil, fault.InvalidIpAddress
		}

		switch {
		case "*" == host:
			addrs[i] = net.JoinHostPort("::", port)
			parsed[i] = "tcp"
			continue
		case strings.Contains(host, ":"):
			parsed[i] = "tcp6"
		default:
			parsed[i] = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			log.Errorf("rpc server listen error: %s: %q", fault.InvalidIpAddress, listen)
			return nil, fault.InvalidIpAddress
		}
	}

	return parsed, nil
}
