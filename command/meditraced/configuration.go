// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/configuration"
	"github.com/bitmark-inc/meditrace/custody"
	"github.com/bitmark-inc/meditrace/rpc/listeners"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "meditrace.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "meditraced.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients    = 10
	defaultHTTPSClients  = 100
	defaultAuditInterval = 300 // seconds
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - where the transaction log is kept
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
	InMemory  bool   `gluamapper:"in_memory" json:"in_memory"`
}

// AuditType - background consistency check, zero interval disables
type AuditType struct {
	Interval int `gluamapper:"interval" json:"interval"`
}

// Configuration - the daemon configuration file
type Configuration struct {
	DataDirectory string                       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string                       `gluamapper:"pidfile" json:"pidfile"`
	ReadOnly      bool                         `gluamapper:"read_only" json:"read_only"`
	Database      DatabaseType                 `gluamapper:"database" json:"database"`
	Policy        custody.Policy               `gluamapper:"policy" json:"policy"`
	Audit         AuditType                    `gluamapper:"audit" json:"audit"`
	ClientRPC     listeners.RPCConfiguration   `gluamapper:"client_rpc" json:"client_rpc"`
	HttpsRPC      listeners.HTTPSConfiguration `gluamapper:"https_rpc" json:"https_rpc"`
	Logging       logger.Configuration         `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Audit: AuditType{
			Interval: defaultAuditInterval,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		HttpsRPC: listeners.HTTPSConfiguration{
			MaximumConnections: defaultHTTPSClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if options.Audit.Interval < 0 {
		return nil, fmt.Errorf("Audit: interval: %d must not be negative", options.Audit.Interval)
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = ensureAbsolute(options.DataDirectory, options.PidFile)
	}

	// fail if the database or log file are not simple names
	for _, f := range []string{options.Database.Name, options.Logging.File} {
		switch filepath.Dir(f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = ensureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}
	options.Database.Name = ensureAbsolute(options.Database.Directory, options.Database.Name)

	// certificate and key may be given inline or as file names
	items := []*string{}
	if 0 != len(options.ClientRPC.Listen) {
		items = append(items, &options.ClientRPC.Certificate, &options.ClientRPC.PrivateKey)
	}
	if 0 != len(options.HttpsRPC.Listen) {
		items = append(items, &options.HttpsRPC.Certificate, &options.HttpsRPC.PrivateKey)
	}
	for _, item := range items {
		if err := loadPEM(options.DataDirectory, item); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// database path, or empty for a memory database
func (c *Configuration) databaseName() string {
	if c.Database.InMemory {
		return ""
	}
	return c.Database.Name
}

// replace a file name by its contents, blank disables TLS
func loadPEM(directory string, item *string) error {
	if "" == *item || strings.Contains(*item, "-----BEGIN") {
		return nil
	}
	name := ensureAbsolute(directory, *item)
	data, err := ioutil.ReadFile(name)
	if nil != err {
		return err
	}
	*item = string(data)
	return nil
}

// if a path is relative, make it absolute relative to a directory
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
