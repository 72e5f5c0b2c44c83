// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ethereum

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/payment"
)

const (
	// 21000 gas, a plain value transfer
	transferGas = "0x5208"

	// EIP-1193 code for a request the user declined
	userRejectedCode = 4001

	defaultTimeout = 2 * time.Minute
)

// Settler - sends value from one wallet account
type Settler struct {
	sync.Mutex
	log    *logger.L
	url    string
	from   string
	client *http.Client
	id     uint64
}

// Configuration - wallet access
type Configuration struct {
	URL     string        `json:"url"`
	Account string        `json:"account"`
	Timeout time.Duration `json:"timeout"`
}

// New - create a settler; an empty account is resolved from the
// wallet's first account on the first payment
func New(log *logger.L, configuration Configuration) (*Settler, error) {
	if "" == configuration.URL {
		return nil, fault.MissingParameters
	}
	timeout := configuration.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Settler{
		log:  log,
		url:  configuration.URL,
		from: configuration.Account,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Settle - transfer an ETH amount to an address, the memo is sent as
// transaction data unless paying the sending account itself
func (s *Settler) Settle(ctx context.Context, to string, amount string, memo []byte) (*payment.SettlementRef, error) {

	value, err := payment.ToWei(amount)
	if nil != err {
		return nil, err
	}

	from, err := s.Account(ctx)
	if nil != err {
		return nil, err
	}

	transaction := map[string]string{
		"to":    to,
		"from":  from,
		"value": value,
		"gas":   transferGas,
	}
	if !strings.EqualFold(to, from) {
		transaction["data"] = "0x" + hex.EncodeToString(memo)
	}

	var txHash string
	err = s.call(ctx, "eth_sendTransaction", []interface{}{transaction}, &txHash)
	if nil != err {
		return nil, err
	}
	if "" == txHash {
		return nil, fault.PaymentFailed
	}

	s.debugf("paid: %s ETH to: %s  tx: %s", amount, to, txHash)

	return &payment.SettlementRef{
		TxId: txHash,
		Cost: amount,
	}, nil
}

// Account - the paying account
func (s *Settler) Account(ctx context.Context) (string, error) {
	s.Lock()
	from := s.from
	s.Unlock()

	if "" != from {
		return from, nil
	}

	var accounts []string
	err := s.call(ctx, "eth_accounts", []interface{}{}, &accounts)
	if nil != err {
		return "", err
	}
	if 0 == len(accounts) {
		return "", fault.UserRejected
	}

	s.Lock()
	s.from = accounts[0]
	s.Unlock()

	return accounts[0], nil
}

// for encoding the RPC arguments
type rpcArguments struct {
	JSONRPC string        `json:"jsonrpc"`
	Id      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// the RPC error response
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// for decoding the RPC reply
type rpcReply struct {
	Id     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// basic RPC
func (s *Settler) call(ctx context.Context, method string, params []interface{}, result interface{}) error {

	s.Lock()
	s.id += 1
	arguments := rpcArguments{
		JSONRPC: "2.0",
		Id:      s.id,
		Method:  method,
		Params:  params,
	}
	s.Unlock()

	buffer, err := json.Marshal(arguments)
	if nil != err {
		return err
	}

	s.debugf("rpc send: %s", buffer)

	request, err := http.NewRequest("POST", s.url, bytes.NewBuffer(buffer))
	if nil != err {
		return err
	}
	request = request.WithContext(ctx)
	request.Header.Set("Content-Type", "application/json")

	response, err := s.client.Do(request)
	if nil != err {
		return fmt.Errorf("%w: %s", fault.ProviderUnavailable, err)
	}
	defer response.Body.Close()

	body, err := ioutil.ReadAll(response.Body)
	if nil != err {
		return fmt.Errorf("%w: %s", fault.ProviderUnavailable, err)
	}

	s.debugf("rpc response status: %d  body: %s", response.StatusCode, body)

	if http.StatusOK != response.StatusCode {
		return fmt.Errorf("%w: HTTP status: %d", fault.ProviderUnavailable, response.StatusCode)
	}

	var reply rpcReply
	err = json.Unmarshal(body, &reply)
	if nil != err {
		return fmt.Errorf("%w: %s", fault.ProviderUnavailable, err)
	}

	if nil != reply.Error {
		if userRejectedCode == reply.Error.Code {
			return fault.UserRejected
		}
		return fmt.Errorf("%w: %s", fault.PaymentFailed, reply.Error.Message)
	}

	if 0 == len(reply.Result) {
		return fault.PaymentFailed
	}
	err = json.Unmarshal(reply.Result, result)
	if nil != err {
		return fmt.Errorf("%w: %s", fault.PaymentFailed, err)
	}
	return nil
}

func (s *Settler) debugf(format string, arguments ...interface{}) {
	if nil != s.log {
		s.log.Debugf(format, arguments...)
	}
}
