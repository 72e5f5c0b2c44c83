// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/meditrace/command/meditrace-cli/configuration"
)

func runSetup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if "" == m.file {
		return ErrRequiredConfig
	}

	if m.verbose {
		fmt.Fprintf(m.e, "updating config file: %s\n", m.file)
	}

	err := configuration.Save(m.file, m.config)
	if nil != err {
		return err
	}

	printJson(m.w, m.config)
	return nil
}
