// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/command/meditrace-cli/rpccalls"
	"github.com/bitmark-inc/meditrace/counter"
	"github.com/bitmark-inc/meditrace/custody"
	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/payment"
	"github.com/bitmark-inc/meditrace/payment/mocks"
	"github.com/bitmark-inc/meditrace/rpc/fixtures"
	"github.com/bitmark-inc/meditrace/rpc/listeners"
	"github.com/bitmark-inc/meditrace/rpc/product"
	"github.com/bitmark-inc/meditrace/rpc/server"
	"github.com/bitmark-inc/meditrace/storage"
	"github.com/bitmark-inc/meditrace/transactionrecord"
)

const payTo = "0x00000000000000000000000000000000000000aa"

var (
	address string
	ledger  *custody.Ledger
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()

	store, err := storage.Open("", storage.ReadWrite)
	if nil != err {
		panic(err)
	}
	ledger, err = custody.New(store, custody.Options{})
	if nil != err {
		panic(err)
	}

	log := logger.New(fixtures.LogCategory)
	c := counter.Counter(0)
	configuration := listeners.RPCConfiguration{
		MaximumConnections: 10,
		Listen:             []string{"127.0.0.1:0"},
	}
	l, err := listeners.NewRPC(&configuration, log, &c, server.Create(log, "cli", ledger, false, &c), nil)
	if nil != err {
		panic(err)
	}
	if err := l.Serve(); nil != err {
		panic(err)
	}
	address = l.Addresses()[0]

	rc := m.Run()

	_ = l.Close()
	store.Close()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// run one command with fixed metadata, returning its output
func run(settler payment.Settler, arguments ...string) ([]byte, error) {
	out := &bytes.Buffer{}
	m := &metadata{
		connection: rpccalls.Connection{
			Address: address,
			Plain:   true,
		},
		payTo:   payTo,
		timeout: time.Second,
		e:       &bytes.Buffer{},
		w:       out,
	}
	if nil != settler {
		m.settler = settler
	}

	app := newApp()
	app.Writer = out
	app.ErrWriter = &bytes.Buffer{}
	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = m
		return nil
	}

	err := app.Run(append([]string{"meditrace-cli"}, arguments...))
	return out.Bytes(), err
}

func TestCreatePaysFirst(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ref := &payment.SettlementRef{TxId: "0xc0ffee", Cost: "0.001"}
	settler := mocks.NewMockSettler(ctl)
	settler.EXPECT().Settle(gomock.Any(), payTo, "0.001", []byte("ADD_PRODUCT:Aspirin/B-7")).Return(ref, nil).Times(1)

	out, err := run(settler, "create", "-n", "Aspirin", "-b", "B-7", "-e", "2028-02-01", "-m", "acme")
	assert.Nil(t, err, "wrong create")

	var reply product.CreateReply
	err = json.Unmarshal(out, &reply)
	assert.Nil(t, err, "wrong output")

	history, err := ledger.History(reply.ProductId)
	assert.Nil(t, err, "wrong history")
	assert.Equal(t, 1, len(history), "wrong event count")
	assert.Equal(t, ref, history[0].SettlementRef, "settlement not recorded")
}

func TestPaymentFailureAborts(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	settler := mocks.NewMockSettler(ctl)
	settler.EXPECT().Settle(gomock.Any(), payTo, "0.001", gomock.Any()).Return(nil, fault.UserRejected).Times(1)

	before := ledger.ProductCount()
	_, err := run(settler, "create", "-n", "Aspirin", "-b", "B-8", "-e", "2028-02-01", "-m", "acme")
	assert.Equal(t, fault.UserRejected, err, "wrong error")
	assert.Equal(t, before, ledger.ProductCount(), "product created without payment")
}

func TestCustodyCommandsWithoutWallet(t *testing.T) {
	productId, _, err := ledger.Create(custody.ProductData{
		Name:           "Insulin",
		BatchNumber:    "I-1",
		ExpirationDate: "2027-06-30",
	}, "maker", nil)
	assert.Nil(t, err, "wrong ledger create")

	_, err = run(nil, "assign", "-i", productId, "-d", "dist")
	assert.Nil(t, err, "wrong assign")

	out, err := run(nil, "sell", "-i", productId, "-H", "clinic")
	assert.Nil(t, err, "wrong sell")
	var sold product.SellReply
	assert.Nil(t, json.Unmarshal(out, &sold), "wrong sell output")
	assert.NotEqual(t, "", sold.QrCode, "missing QR code")

	out, err = run(nil, "history", "--verify", "-i", productId)
	assert.Nil(t, err, "wrong history")
	var history product.HistoryReply
	assert.Nil(t, json.Unmarshal(out, &history), "wrong history output")
	assert.Equal(t, 4, len(history.Transactions), "wrong event count")
	assert.Equal(t, transactionrecord.Verified, history.Transactions[3].Kind, "verification not recorded")
	assert.Equal(t, len("2006-01-02"), len(history.Transactions[1].Details[transactionrecord.DetailDispatchDate]), "wrong default dispatch date")

	out, err = run(nil, "list", "-H", "clinic")
	assert.Nil(t, err, "wrong list")
	var list product.ListReply
	assert.Nil(t, json.Unmarshal(out, &list), "wrong list output")
	assert.Equal(t, 1, len(list.Products), "wrong list length")
}

func TestCommandErrors(t *testing.T) {
	_, err := run(nil, "list", "-H", "clinic", "-m", "acme")
	assert.Equal(t, ErrRequiredOneOfActors, err, "both actors accepted")

	_, err = run(nil, "sell", "-H", "clinic")
	assert.Equal(t, ErrRequiredProductId, err, "missing product accepted")

	_, err = run(nil, "create", "-n", "Aspirin")
	assert.Equal(t, ErrRequiredBatchNumber, err, "missing batch accepted")

	_, err = run(nil, "product", "-i", "MED-0-NONE")
	assert.NotNil(t, err, "unknown product accepted")
}

func TestCosts(t *testing.T) {
	out, err := run(nil, "costs", "-g", "20000000000")
	assert.Nil(t, err, "wrong costs")

	var reply costsReply
	assert.Nil(t, json.Unmarshal(out, &reply), "wrong costs output")
	assert.Equal(t, len(payment.Costs), len(reply.Costs), "wrong cost count")
	assert.Equal(t, "0.000420", reply.GasCost, "wrong gas cost")
}

func TestWalletRequiresPayTo(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}

	err := app.Run([]string{"meditrace-cli", "--wallet", "http://127.0.0.1:1", "info"})
	assert.Equal(t, ErrRequiredPayTo, err, "wallet without pay-to accepted")
}

func TestSettle(t *testing.T) {
	m := &metadata{
		payTo:   payTo,
		timeout: time.Second,
		e:       &bytes.Buffer{},
	}
	ref, err := settle(m, payment.SellProduct, "MED-1")
	assert.Nil(t, err, "wrong settle without wallet")
	assert.Nil(t, ref, "reference without wallet")

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	settler := mocks.NewMockSettler(ctl)
	m.settler = settler
	m.payTo = ""
	_, err = settle(m, payment.SellProduct, "MED-1")
	assert.Equal(t, ErrRequiredPayTo, err, "missing pay-to accepted")

	m.payTo = payTo
	m.verbose = true
	expected := &payment.SettlementRef{TxId: "0xbeef", Cost: "0.0006"}
	settler.EXPECT().Settle(gomock.Any(), payTo, "0.0006", []byte("SELL_PRODUCT:MED-1")).Return(expected, nil).Times(1)
	ref, err = settle(m, payment.SellProduct, "MED-1")
	assert.Nil(t, err, "wrong settle")
	assert.Equal(t, expected, ref, "wrong reference")
}

func TestCostsTable(t *testing.T) {
	out, err := run(nil, "--table", "costs")
	assert.Nil(t, err, "wrong costs")

	text := string(out)
	for _, c := range payment.Costs {
		assert.Contains(t, text, c.Name, "missing operation")
		assert.Contains(t, text, payment.FormatEth(c.Amount), "missing amount")
	}
}

func TestFormatDetails(t *testing.T) {
	details := transactionrecord.Details{
		transactionrecord.DetailName:        "Aspirin",
		transactionrecord.DetailBatchNumber: "B-1",
	}
	assert.Equal(t, "batchNumber=B-1 name=Aspirin", formatDetails(details), "wrong details")
	assert.Equal(t, "", formatDetails(nil), "wrong empty details")
}

func TestSetupSavesFlags(t *testing.T) {
	dir, err := ioutil.TempDir("", "meditrace-cli")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "cli.json")

	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}
	err = app.Run([]string{"meditrace-cli", "--config", file, "--connect", "10.1.1.1:2150", "--plain", "setup"})
	assert.Nil(t, err, "wrong setup")

	name, config, err := readConfiguration(file, false)
	assert.Nil(t, err, "wrong read")
	assert.Equal(t, file, name, "wrong file name")
	assert.Equal(t, "10.1.1.1:2150", config.Connect, "wrong connect")
	assert.True(t, config.Plain, "wrong plain")

	_, _, err = readConfiguration(filepath.Join(dir, "missing.json"), false)
	assert.NotNil(t, err, "missing explicit file accepted")

	_, config, err = readConfiguration(filepath.Join(dir, "missing.json"), true)
	assert.Nil(t, err, "missing file rejected for setup")
	assert.Equal(t, "", config.Connect, "wrong empty configuration")
}
