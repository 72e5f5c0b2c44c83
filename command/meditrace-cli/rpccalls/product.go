// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/meditrace/rpc/product"
)

// call - send one request, echoing both sides when verbose
func (client *Client) call(method string, title string, arguments interface{}, reply interface{}) error {

	client.printJson(title+" Request", arguments)

	if err := client.client.Call(method, arguments, reply); nil != err {
		return err
	}

	client.printJson(title+" Reply", reply)

	return nil
}

// Create - register a new product
func (client *Client) Create(arguments *product.CreateArguments) (*product.CreateReply, error) {
	var reply product.CreateReply
	if err := client.call("Product.Create", "Create", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Assign - pass a product to a distributor
func (client *Client) Assign(arguments *product.AssignArguments) (*product.AssignReply, error) {
	var reply product.AssignReply
	if err := client.call("Product.Assign", "Assign", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Sell - pass a product to a healthcare provider
func (client *Client) Sell(arguments *product.SellArguments) (*product.SellReply, error) {
	var reply product.SellReply
	if err := client.call("Product.Sell", "Sell", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Verify - record a verification
func (client *Client) Verify(arguments *product.VerifyArguments) (*product.VerifyReply, error) {
	var reply product.VerifyReply
	if err := client.call("Product.Verify", "Verify", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Get - current state of a product
func (client *Client) Get(productId string) (*product.GetReply, error) {
	arguments := product.GetArguments{
		ProductId: productId,
	}
	var reply product.GetReply
	if err := client.call("Product.Get", "Product", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// History - ordered events of a product
func (client *Client) History(arguments *product.HistoryArguments) (*product.HistoryReply, error) {
	var reply product.HistoryReply
	if err := client.call("Product.History", "History", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// List - products held or made by an actor
func (client *Client) List(arguments *product.ListArguments) (*product.ListReply, error) {
	var reply product.ListReply
	if err := client.call("Product.List", "List", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
