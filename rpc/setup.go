// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"
	netrpc "net/rpc"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/counter"
	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/rpc/certificate"
	"github.com/bitmark-inc/meditrace/rpc/handler"
	"github.com/bitmark-inc/meditrace/rpc/listeners"
	"github.com/bitmark-inc/meditrace/rpc/server"
)

const (
	tlsName      = "client_rpc"
	httpsTLSName = "https_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listener listeners.Listener
	https    listeners.Listener // nil when disabled

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// number of open client connections
var connectionCountRPC counter.Counter

// Initialise - start the rpc listeners, the HTTPS gateway is optional
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *listeners.HTTPSConfiguration, ledger server.Ledger, version string, readOnly bool) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	tlsConfig, err := getTLS(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	s := server.Create(log, version, ledger, readOnly, &connectionCountRPC)

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		s,
		tlsConfig,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		_ = rpcListener.Close()
		return err
	}
	globalData.listener = rpcListener

	if nil != httpsConfiguration && 0 != len(httpsConfiguration.Listen) {
		err := initialiseHTTPS(log, httpsConfiguration, s, ledger, version)
		if nil != err {
			_ = rpcListener.Close()
			globalData.listener = nil
			return err
		}
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// start the HTTP gateway sharing the same RPC server
func initialiseHTTPS(log *logger.L, configuration *listeners.HTTPSConfiguration, s *netrpc.Server, ledger server.Ledger, version string) error {
	tlsConfig, err := getTLS(log, httpsTLSName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}

	h := handler.New(log, s, ledger, time.Now(), version, configuration.MaximumConnections)
	httpsListener, err := listeners.NewHTTPS(configuration, log, tlsConfig, h)
	if nil != err {
		return err
	}
	err = httpsListener.Serve()
	if nil != err {
		_ = httpsListener.Close()
		return err
	}
	globalData.https = httpsListener
	return nil
}

// TLS from a certificate and key, nil when no certificate is given
func getTLS(log *logger.L, name string, cert string, key string) (*tls.Config, error) {
	if "" == cert {
		return nil, nil
	}
	c, fingerprint, err := certificate.Get(log, name, cert, key)
	if nil != err {
		return nil, err
	}
	log.Infof("%s: SHA3-256 fingerprint: %s", name, fingerprint)
	return c, nil
}

// Addresses - where the listeners are bound
func Addresses() []string {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil
	}
	return globalData.listener.Addresses()
}

// HTTPSAddresses - where the HTTP gateway is bound, nil when disabled
func HTTPSAddresses() []string {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised || nil == globalData.https {
		return nil
	}
	return globalData.https.Addresses()
}

// Finalise - stop the listeners
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	err := globalData.listener.Close()
	globalData.listener = nil

	if nil != globalData.https {
		if e := globalData.https.Close(); nil != e && nil == err {
			err = e
		}
		globalData.https = nil
	}

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return err
}
