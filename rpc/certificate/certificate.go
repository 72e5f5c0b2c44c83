// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package certificate - TLS setup for the rpc listeners
package certificate

import (
	"crypto/tls"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/digest"
	"github.com/bitmark-inc/meditrace/fault"
)

// Get - check a PEM certificate and key pair and return a server TLS
// configuration together with the certificate fingerprint
func Get(log *logger.L, name, certificate, key string) (*tls.Config, digest.Digest, error) {
	if "" == certificate || "" == key {
		log.Errorf("%s: missing certificate or key", name)
		return nil, digest.Zero, fault.MissingParameters
	}

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if nil != err {
		log.Errorf("%s failed to load keypair: %s", name, err)
		return nil, digest.Zero, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}

	return tlsConfiguration, Fingerprint(keyPair.Certificate[0]), nil
}

// Fingerprint - SHA3-256 of a DER certificate
//
// openssl x509 -outform DER -in meditraced-rpc.crt | sha3sum -a 256
func Fingerprint(der []byte) digest.Digest {
	return digest.NewDigest(der)
}
