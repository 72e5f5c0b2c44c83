// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/fault"
)

// Watcher - report changes to a configuration file
//
// the directory is watched rather than the file so that editors which
// replace the file by renaming are still seen
type Watcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	fileName string
	changed  chan struct{}
}

// NewWatcher - watch an existing file
func NewWatcher(fileName string, log *logger.L) (*Watcher, error) {
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	if _, err := os.Stat(fileName); nil != err {
		if os.IsNotExist(err) {
			return nil, fault.ConfigurationFileNotFound
		}
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	err = watcher.Add(filepath.Dir(fileName))
	if nil != err {
		log.Errorf("watcher add error: %s", err)
		_ = watcher.Close()
		return nil, err
	}

	return &Watcher{
		log:      log,
		watcher:  watcher,
		fileName: fileName,
		changed:  make(chan struct{}, 1),
	}, nil
}

// Changed - receives once for any number of changes since the last
// receive
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Run - background loop, closes the watcher on shutdown
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	log.Infof("watching: %s", w.fileName)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.fileName {
				continue loop
			}
			log.Debugf("file event: %s", event)

			if event.Op&fsnotify.Remove == fsnotify.Remove || event.Op&fsnotify.Rename == fsnotify.Rename {
				log.Warnf("file: %s removed", w.fileName)
				continue loop
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod) != 0 {
				w.notify()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}

	_ = w.watcher.Close()
	log.Info("stopped")
}

func (w *Watcher) notify() {
	select {
	case w.changed <- struct{}{}:
	default:
		w.log.Debug("change already pending")
	}
}
