// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/configuration"
	"github.com/bitmark-inc/meditrace/custody"
)

// editors often write a file in several steps
const settleDelay = 2 * time.Second

// re-read the configuration file when it changes and apply the
// settings that can change while running
type reloader struct {
	log      *logger.L
	fileName string
	watcher  *configuration.Watcher
	ledger   *custody.Ledger
}

func (r *reloader) Run(args interface{}, shutdown <-chan struct{}) {
	log := r.log

	for {
		select {
		case <-shutdown:
			return
		case <-r.watcher.Changed():
		}

		select {
		case <-shutdown:
			return
		case <-time.After(settleDelay):
		}

		options, err := getConfiguration(r.fileName)
		if nil != err {
			log.Errorf("failed to read configuration from: %q  error: %s", r.fileName, err)
			continue
		}
		r.ledger.SetPolicy(options.Policy)
		log.Infof("configuration reloaded: policy: %+v", options.Policy)
	}
}
