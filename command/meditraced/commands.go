// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/custody"
	"github.com/bitmark-inc/meditrace/registry"
	"github.com/bitmark-inc/meditrace/transactionrecord"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "dump-product", "dp", "verify-chain", "vc", "audit":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}

		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")
		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")
		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")
		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")
		fmt.Printf("  dump-product ID [FILE]     (dp)     - product state and history as JSON to stdout/file\n")
		fmt.Printf("\n")
		fmt.Printf("  verify-chain [ID...]       (vc)     - check the integrity hash chain of products\n")
		fmt.Printf("                                        all products if no IDs are given\n")
		fmt.Printf("\n")
		fmt.Printf("  audit                               - compare the registry with a replay of the log\n")
		fmt.Printf("\n")
		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		redacted := *options
		if "" != redacted.HttpsRPC.PrivateKey {
			redacted.HttpsRPC.PrivateKey = "(redacted)"
		}
		if "" != redacted.ClientRPC.PrivateKey {
			redacted.ClientRPC.PrivateKey = "(redacted)"
		}
		b, err := json.Marshal(redacted)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = json.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		_, _ = os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
//
// the ledger is loaded so these commands can inspect it
func processDataCommand(log *logger.L, arguments []string, ledger *custody.Ledger) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "dump-product", "dp":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing product id argument")
		}
		output := "-"
		if len(arguments) > 1 {
			output = strings.TrimSpace(arguments[1])
		}

		result, err := dumpProduct(ledger, arguments[0])
		if nil != err {
			exitwithstatus.Message("dump product error: %s", err)
		}

		fd := os.Stdout
		if "" != output && "-" != output {
			fd, err = os.Create(output)
			if nil != err {
				exitwithstatus.Message("error: creating: %q error: %s", output, err)
			}
			defer fd.Close()
		}
		if err := writeJSON(fd, result); nil != err {
			exitwithstatus.Message("dump product JSON error: %s", err)
		}

	case "verify-chain", "vc":
		ids := arguments
		if 0 == len(ids) {
			for _, p := range ledger.ListBy(nil) {
				ids = append(ids, p.Id)
			}
		}
		broken := 0
		for _, id := range ids {
			if err := ledger.VerifyIntegrity(id); nil != err {
				log.Criticalf("product: %s  integrity: %s", id, err)
				fmt.Printf("%s: %s\n", id, err)
				broken += 1
				continue
			}
			fmt.Printf("%s: ok\n", id)
		}
		if broken > 0 {
			exitwithstatus.Message("%d of %d products failed verification", broken, len(ids))
		}

	case "audit":
		drifted, err := ledger.Audit(false)
		if nil != err {
			exitwithstatus.Message("audit error: %s", err)
		}
		for _, id := range drifted {
			fmt.Printf("drift: %s\n", id)
		}
		fmt.Printf("products: %d  transactions: %d  drifted: %d\n", ledger.ProductCount(), ledger.TransactionCount(), len(drifted))

	default:
		exitwithstatus.Message("error: no such command: %s", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

type productDump struct {
	Product      registry.Product                 `json:"product"`
	Transactions []*transactionrecord.Transaction `json:"transactions"`
	Integrity    string                           `json:"integrity"`
}

// state, history and chain check of one product
func dumpProduct(ledger *custody.Ledger, productId string) (*productDump, error) {
	p, err := ledger.Product(productId)
	if nil != err {
		return nil, err
	}
	history, err := ledger.History(productId)
	if nil != err {
		return nil, err
	}

	integrity := "ok"
	if err := ledger.VerifyIntegrity(productId); nil != err {
		integrity = err.Error()
	}

	return &productDump{
		Product:      p,
		Transactions: history,
		Integrity:    integrity,
	}, nil
}

func writeJSON(w io.Writer, item interface{}) error {
	s, err := json.MarshalIndent(item, "", "  ")
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", s)
	return err
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
