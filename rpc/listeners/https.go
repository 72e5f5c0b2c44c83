// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/rpc/handler"
)

const (
	httpsLogName     = "https_rpc"
	readWriteTimeout = 10 * time.Second
	shutdownTimeout  = 5 * time.Second
)

// HTTPSConfiguration - configuration file data for HTTPS setup
//
// Allow maps a route name ("details") to the networks that may use it
type HTTPSConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Certificate        string              `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string              `gluamapper:"private_key" json:"private_key"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

type httpsListener struct {
	sync.Mutex
	log       *logger.L
	tlsConfig *tls.Config
	handler   http.Handler
	networks  []string
	addresses []string
	listeners []net.Listener
	servers   []*http.Server
	finished  sync.WaitGroup
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	tc.SetKeepAlive(true)
	tc.SetKeepAlivePeriod(3 * time.Minute)
	return tc, nil
}

// NewHTTPS - prepare the HTTP gateway; returns nil, nil when no listen
// address is configured
func NewHTTPS(
	configuration *HTTPSConfiguration,
	log *logger.L,
	tlsConfig *tls.Config,
	hdlr handler.Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", httpsLogName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	addresses := make([]string, len(configuration.Listen))
	copy(addresses, configuration.Listen)

	networks, err := parseListenAddress(addresses, log)
	if nil != err {
		return nil, err
	}

	// create access control
	local := make(map[string][]*net.IPNet)
	for path, allowed := range configuration.Allow {
		set := make([]*net.IPNet, len(allowed))
		local[path] = set
		for i, ip := range allowed {
			_, cidr, err := net.ParseCIDR(strings.TrimSpace(ip))
			if nil != err {
				log.Errorf("%s: allow: %q  error: %s", httpsLogName, ip, err)
				return nil, fault.InvalidIpAddress
			}
			set[i] = cidr
		}
	}
	hdlr.SetAllow(local)

	if nil == tlsConfig {
		log.Warnf("%s: TLS is disabled", httpsLogName)
	} else {
		tlsConfig = tlsConfig.Clone()
		tlsConfig.NextProtos = []string{"http/1.1"}
	}

	return &httpsListener{
		log:       log,
		tlsConfig: tlsConfig,
		handler:   hdlr.Router(),
		networks:  networks,
		addresses: addresses,
	}, nil
}

// Serve - bind every address and serve in the background
func (h *httpsListener) Serve() error {
	h.Lock()
	defer h.Unlock()

	for i, address := range h.addresses {
		h.log.Infof("starting server: %s on: %q", httpsLogName, address)

		ln, err := net.Listen(h.networks[i], address)
		if nil != err {
			h.log.Errorf("%s listen error: %s", httpsLogName, err)
			return err
		}

		var listener net.Listener = tcpKeepAliveListener{ln.(*net.TCPListener)}
		if nil != h.tlsConfig {
			listener = tls.NewListener(listener, h.tlsConfig)
		}

		s := &http.Server{
			Handler:        h.handler,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		h.listeners = append(h.listeners, ln)
		h.servers = append(h.servers, s)

		h.finished.Add(1)
		go func() {
			defer h.finished.Done()
			err := s.Serve(listener)
			h.log.Infof("%s serve terminated: %s", httpsLogName, err)
		}()
	}
	return nil
}

// Addresses - the bound addresses, with ports resolved
func (h *httpsListener) Addresses() []string {
	h.Lock()
	defer h.Unlock()

	result := make([]string, 0, len(h.listeners))
	for _, l := range h.listeners {
		result = append(result, l.Addr().String())
	}
	return result
}

// Close - graceful shutdown of every server
func (h *httpsListener) Close() error {
	h.Lock()
	servers := h.servers
	h.servers = nil
	h.listeners = nil
	h.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var first error
	for _, s := range servers {
		if err := s.Shutdown(ctx); nil != err && nil == first {
			first = err
		}
	}
	h.finished.Wait()
	return first
}
