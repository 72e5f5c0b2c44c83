// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"crypto/x509"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"time"

	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/rpc/certificate"
)

const dialTimeout = 10 * time.Second

// errors
var (
	ErrFingerprintMismatch = fault.InvalidError("server certificate fingerprint mismatch")
)

// Connection - how to reach meditraced
type Connection struct {
	Address     string // HOST:PORT
	Plain       bool   // no TLS
	Fingerprint string // hex SHA3-256 of the server certificate, blank to accept any
}

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a meditraced
func NewClient(connection Connection, verbose bool, handle io.Writer) (*Client, error) {

	if "" == connection.Address {
		return nil, fault.MissingParameters
	}

	dialer := &net.Dialer{
		Timeout: dialTimeout,
	}

	var conn net.Conn
	var err error
	if connection.Plain {
		conn, err = dialer.Dial("tcp", connection.Address)
	} else {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
		}
		if "" != connection.Fingerprint {
			expected := strings.ToLower(connection.Fingerprint)
			tlsConfig.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
				if 0 == len(rawCerts) || certificate.Fingerprint(rawCerts[0]).String() != expected {
					return ErrFingerprintMismatch
				}
				return nil
			}
		}
		conn, err = tls.DialWithDialer(dialer, "tcp", connection.Address, tlsConfig)
	}
	if nil != err {
		return nil, err
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

// Close - shutdown the meditraced connection
func (client *Client) Close() {
	client.client.Close()
	client.conn.Close()
}
