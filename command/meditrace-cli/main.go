// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/meditrace/command/meditrace-cli/configuration"
	"github.com/bitmark-inc/meditrace/command/meditrace-cli/rpccalls"
	"github.com/bitmark-inc/meditrace/payment"
	"github.com/bitmark-inc/meditrace/payment/ethereum"
)

const (
	appName        = "meditrace-cli"
	defaultConnect = "127.0.0.1:2150"
	defaultTimeout = 2 * time.Minute
)

type metadata struct {
	file       string
	config     *configuration.Configuration
	connection rpccalls.Connection
	settler    payment.Settler
	payTo      string
	timeout    time.Duration
	verbose    bool
	table      bool
	e          io.Writer
	w          io.Writer
}

func main() {

	app := newApp()

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

// newApp - the commands and flags, with setup from the global flags
func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = appName
	app.Usage = "record custody of medical products"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.BoolFlag{
			Name:  "table, T",
			Usage: " print costs, history and lists as a table",
		},
		cli.StringFlag{
			Name:  "config, C",
			Value: "",
			Usage: " configuration `FILE` [$XDG_CONFIG_HOME/meditrace-cli/meditrace-cli.json]",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: defaultConnect,
			Usage: " meditraced host/IP and port, `HOST:PORT`",
		},
		cli.BoolFlag{
			Name:  "plain",
			Usage: " connect without TLS",
		},
		cli.StringFlag{
			Name:  "fingerprint, f",
			Value: "",
			Usage: " expected server certificate fingerprint `HEX`",
		},
		cli.StringFlag{
			Name:  "wallet, w",
			Value: "",
			Usage: " wallet JSON-RPC endpoint used to pay for operations `URL`",
		},
		cli.StringFlag{
			Name:  "account, a",
			Value: "",
			Usage: " paying wallet `ADDRESS` [first wallet account]",
		},
		cli.StringFlag{
			Name:  "pay-to, p",
			Value: "",
			Usage: " address receiving operation payments `ADDRESS`",
		},
		cli.DurationFlag{
			Name:  "timeout, t",
			Value: defaultTimeout,
			Usage: " time allowed for each payment `DURATION`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "setup",
			Usage:  "save the global connection and wallet flags to the configuration file",
			Action: runSetup,
		},
		{
			Name:      "create",
			Usage:     "register a new product",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*product name `STRING`",
				},
				cli.StringFlag{
					Name:  "batch, b",
					Value: "",
					Usage: "*batch number `STRING`",
				},
				cli.StringFlag{
					Name:  "expires, e",
					Value: "",
					Usage: "*expiration date `DATE`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: " product description `STRING`",
				},
				cli.StringFlag{
					Name:  "manufacturer, m",
					Value: "",
					Usage: "*manufacturer identity `ACTOR`",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "assign",
			Usage:     "assign a product to a distributor",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "product, i",
					Value: "",
					Usage: "*product id `ID`",
				},
				cli.StringFlag{
					Name:  "distributor, d",
					Value: "",
					Usage: "*distributor identity `ACTOR`",
				},
				cli.StringFlag{
					Name:  "dispatched, D",
					Value: "",
					Usage: " dispatch date `DATE` [today]",
				},
			},
			Action: runAssign,
		},
		{
			Name:      "sell",
			Usage:     "sell a product to a healthcare provider",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "product, i",
					Value: "",
					Usage: "*product id `ID`",
				},
				cli.StringFlag{
					Name:  "holder, H",
					Value: "",
					Usage: "*healthcare provider identity `ACTOR`",
				},
			},
			Action: runSell,
		},
		{
			Name:      "verify",
			Usage:     "verify the authenticity of a product",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "product, i",
					Value: "",
					Usage: "*product id `ID`",
				},
				cli.StringFlag{
					Name:  "verifier, V",
					Value: "",
					Usage: " verifier identity `ACTOR`",
				},
			},
			Action: runVerify,
		},
		{
			Name:      "product",
			Usage:     "display the current state of a product",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "product, i",
					Value: "",
					Usage: "*product id `ID`",
				},
			},
			Action: runProduct,
		},
		{
			Name:      "history",
			Usage:     "list the custody events of a product",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "product, i",
					Value: "",
					Usage: "*product id `ID`",
				},
				cli.BoolFlag{
					Name:  "verify",
					Usage: " record a verification before listing",
				},
				cli.StringFlag{
					Name:  "verifier, V",
					Value: "",
					Usage: " verifier identity `ACTOR`",
				},
			},
			Action: runHistory,
		},
		{
			Name:      "list",
			Usage:     "list products held or made by an actor",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "holder, H",
					Value: "",
					Usage: "+current holder `ACTOR`",
				},
				cli.StringFlag{
					Name:  "manufacturer, m",
					Value: "",
					Usage: "+manufacturer `ACTOR`",
				},
			},
			Action: runList,
		},
		{
			Name:  "costs",
			Usage: "display the price of each operation",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "gas-price, g",
					Value: 0,
					Usage: " also show transfer gas cost at a price in `WEI`",
				},
			},
			Action: runCosts,
		},
		{
			Name:   "info",
			Usage:  "display meditraced status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display meditrace-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		// commands that need no connection
		switch c.Args().Get(0) {
		case "", "version", "costs", "help", "h":
			return nil
		}

		m, err := setup(c)
		if nil != err {
			return err
		}
		c.App.Metadata["config"] = m
		return nil
	}

	return app
}

// setup - connection and payment details from the configuration file
// with any global flags overriding it
func setup(c *cli.Context) (*metadata, error) {

	e := c.App.ErrWriter
	verbose := c.GlobalBool("verbose")

	// setup may create the file
	allowMissing := "setup" == c.Args().Get(0)

	file, config, err := readConfiguration(c.GlobalString("config"), allowMissing)
	if nil != err {
		return nil, err
	}
	if verbose && "" != file {
		fmt.Fprintf(e, "configuration: %s\n", file)
	}

	override := func(name string, item *string) {
		if c.GlobalIsSet(name) || "" == *item {
			*item = c.GlobalString(name)
		}
	}
	override("connect", &config.Connect)
	override("fingerprint", &config.Fingerprint)
	override("wallet", &config.Wallet)
	override("account", &config.Account)
	override("pay-to", &config.PayTo)
	if c.GlobalIsSet("plain") {
		config.Plain = c.GlobalBool("plain")
	}

	connect, err := checkConnect(config.Connect)
	if nil != err {
		return nil, err
	}

	m := &metadata{
		file:   file,
		config: config,
		connection: rpccalls.Connection{
			Address:     connect,
			Plain:       config.Plain,
			Fingerprint: config.Fingerprint,
		},
		payTo:   config.PayTo,
		timeout: c.GlobalDuration("timeout"),
		verbose: verbose,
		table:   c.GlobalBool("table"),
		e:       e,
		w:       c.App.Writer,
	}

	if m.timeout <= 0 {
		m.timeout = defaultTimeout
	}

	if wallet := config.Wallet; "" != wallet {
		if "" == m.payTo {
			return nil, ErrRequiredPayTo
		}
		settler, err := ethereum.New(nil, ethereum.Configuration{
			URL:     wallet,
			Account: config.Account,
			Timeout: m.timeout,
		})
		if nil != err {
			return nil, err
		}
		m.settler = settler
		if verbose {
			fmt.Fprintf(e, "wallet: %s  pay to: %s\n", wallet, m.payTo)
		}
	}

	return m, nil
}

// the configuration file: an explicit name must exist unless
// allowMissing, the default location is always optional
func readConfiguration(file string, allowMissing bool) (string, *configuration.Configuration, error) {

	if "" != file {
		config, err := configuration.Load(file)
		if allowMissing && os.IsNotExist(err) {
			return file, &configuration.Configuration{}, nil
		}
		return file, config, err
	}

	p := os.Getenv("XDG_CONFIG_HOME")
	if "" == p {
		return "", &configuration.Configuration{}, nil
	}
	file = filepath.Join(p, appName, appName+".json")

	config, err := configuration.Load(file)
	if os.IsNotExist(err) {
		return file, &configuration.Configuration{}, nil
	}
	return file, config, err
}
