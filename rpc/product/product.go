// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package product - the Product rpc service, custody transitions and
// queries over the ledger
package product

import (
	"strings"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/custody"
	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/payment"
	"github.com/bitmark-inc/meditrace/registry"
	"github.com/bitmark-inc/meditrace/rpc/ratelimit"
	"github.com/bitmark-inc/meditrace/transactionrecord"
)

const (
	rateLimitProduct = 200
	rateBurstProduct = 100
)

//go:generate mockgen -destination=../mocks/ledger.go -package=mocks github.com/bitmark-inc/meditrace/rpc/product Ledger

// Ledger - the ledger operations served over rpc
type Ledger interface {
	Create(data custody.ProductData, manufacturerId string, ref *payment.SettlementRef) (string, *transactionrecord.Transaction, error)
	Assign(productId string, distributorId string, dispatchDate string, ref *payment.SettlementRef) (*transactionrecord.Transaction, error)
	Sell(productId string, providerId string, ref *payment.SettlementRef) (string, *transactionrecord.Transaction, error)
	Verify(productId string, verifierId string, ref *payment.SettlementRef) (*transactionrecord.Transaction, error)
	Product(productId string) (registry.Product, error)
	History(productId string) ([]*transactionrecord.Transaction, error)
	Holding(actorId string) []registry.Product
	ManufacturedBy(actorId string) []registry.Product
}

// Product - type for the RPC
type Product struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Ledger   Ledger
	ReadOnly bool
}

// New - create the rpc service
func New(log *logger.L, ledger Ledger, readOnly bool) *Product {
	return &Product{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitProduct, rateBurstProduct),
		Ledger:   ledger,
		ReadOnly: readOnly,
	}
}

// ---

// CreateArguments - register a new product
type CreateArguments struct {
	Name           string                 `json:"name"`
	BatchNumber    string                 `json:"batchNumber"`
	ExpirationDate string                 `json:"expirationDate"`
	Description    string                 `json:"description"`
	Manufacturer   string                 `json:"manufacturer"`
	Settlement     *payment.SettlementRef `json:"settlement,omitempty"`
}

// CreateReply - identifiers of the new product and its first event
type CreateReply struct {
	ProductId string `json:"productId"`
	TxId      string `json:"txId"`
}

// Create - register a product in the manufactured state
func (product *Product) Create(arguments *CreateArguments, reply *CreateReply) error {
	if err := product.begin(arguments); nil != err {
		return err
	}

	log := product.Log
	log.Infof("Product.Create: manufacturer: %q  name: %q  batch: %q", arguments.Manufacturer, arguments.Name, arguments.BatchNumber)

	data := custody.ProductData{
		Name:           arguments.Name,
		BatchNumber:    arguments.BatchNumber,
		ExpirationDate: arguments.ExpirationDate,
		Description:    arguments.Description,
	}
	productId, tx, err := product.Ledger.Create(data, arguments.Manufacturer, arguments.Settlement)
	if nil != err {
		log.Debugf("Product.Create: error: %s", err)
		return err
	}

	reply.ProductId = productId
	reply.TxId = tx.Id
	return nil
}

// ---

// AssignArguments - hand a product to a distributor
type AssignArguments struct {
	ProductId    string                 `json:"productId"`
	Distributor  string                 `json:"distributor"`
	DispatchDate string                 `json:"dispatchDate"`
	Settlement   *payment.SettlementRef `json:"settlement,omitempty"`
}

// AssignReply - id of the recorded event
type AssignReply struct {
	TxId string `json:"txId"`
}

// Assign - record custody passing to a distributor
func (product *Product) Assign(arguments *AssignArguments, reply *AssignReply) error {
	if err := product.begin(arguments); nil != err {
		return err
	}

	log := product.Log
	log.Infof("Product.Assign: product: %s  distributor: %q", arguments.ProductId, arguments.Distributor)

	tx, err := product.Ledger.Assign(arguments.ProductId, arguments.Distributor, arguments.DispatchDate, arguments.Settlement)
	if nil != err {
		log.Debugf("Product.Assign: error: %s", err)
		return err
	}

	reply.TxId = tx.Id
	return nil
}

// ---

// SellArguments - hand a product to a healthcare provider
type SellArguments struct {
	ProductId  string                 `json:"productId"`
	Holder     string                 `json:"holder"`
	Settlement *payment.SettlementRef `json:"settlement,omitempty"`
}

// SellReply - the product's QR code and the recorded event
type SellReply struct {
	QrCode string `json:"qrCode"`
	TxId   string `json:"txId"`
}

// Sell - record custody passing to a healthcare provider
func (product *Product) Sell(arguments *SellArguments, reply *SellReply) error {
	if err := product.begin(arguments); nil != err {
		return err
	}

	log := product.Log
	log.Infof("Product.Sell: product: %s  holder: %q", arguments.ProductId, arguments.Holder)

	qrCode, tx, err := product.Ledger.Sell(arguments.ProductId, arguments.Holder, arguments.Settlement)
	if nil != err {
		log.Debugf("Product.Sell: error: %s", err)
		return err
	}

	reply.QrCode = qrCode
	reply.TxId = tx.Id
	return nil
}

// ---

// VerifyArguments - check a product's authenticity
type VerifyArguments struct {
	ProductId  string                 `json:"productId"`
	Verifier   string                 `json:"verifier,omitempty"`
	Settlement *payment.SettlementRef `json:"settlement,omitempty"`
}

// VerifyReply - whether the product is known, and if so its state
type VerifyReply struct {
	Found   bool              `json:"found"`
	TxId    string            `json:"txId,omitempty"`
	Product *registry.Product `json:"product,omitempty"`
}

// Verify - record a verification, an unknown product is a negative
// result rather than an error
func (product *Product) Verify(arguments *VerifyArguments, reply *VerifyReply) error {
	if err := product.begin(arguments); nil != err {
		return err
	}

	log := product.Log
	log.Infof("Product.Verify: product: %s  verifier: %q", arguments.ProductId, arguments.Verifier)

	tx, err := product.Ledger.Verify(arguments.ProductId, arguments.Verifier, arguments.Settlement)
	if fault.IsErrNotFound(err) {
		reply.Found = false
		return nil
	}
	if nil != err {
		log.Debugf("Product.Verify: error: %s", err)
		return err
	}

	p, err := product.Ledger.Product(arguments.ProductId)
	if nil != err {
		return err
	}

	reply.Found = true
	reply.TxId = tx.Id
	reply.Product = &p
	return nil
}

// ---

// GetArguments - product to fetch
type GetArguments struct {
	ProductId string `json:"productId"`
}

// GetReply - current state of a product
type GetReply struct {
	Product registry.Product `json:"product"`
}

// Get - current state of a product
func (product *Product) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(product.Limiter); nil != err {
		return err
	}
	if nil == arguments || "" == strings.TrimSpace(arguments.ProductId) {
		return fault.InvalidProductId
	}

	p, err := product.Ledger.Product(arguments.ProductId)
	if nil != err {
		return err
	}
	reply.Product = p
	return nil
}

// ---

// HistoryArguments - product whose events are wanted, a settlement
// records a verification before the history is read
type HistoryArguments struct {
	ProductId  string                 `json:"productId"`
	Verifier   string                 `json:"verifier,omitempty"`
	Settlement *payment.SettlementRef `json:"settlement,omitempty"`
}

// HistoryReply - events in append order
type HistoryReply struct {
	Transactions []*transactionrecord.Transaction `json:"transactions"`
}

// History - the ordered events of a product
func (product *Product) History(arguments *HistoryArguments, reply *HistoryReply) error {
	if err := ratelimit.Limit(product.Limiter); nil != err {
		return err
	}
	if nil == arguments || "" == strings.TrimSpace(arguments.ProductId) {
		return fault.InvalidProductId
	}

	log := product.Log

	if nil != arguments.Settlement {
		if product.ReadOnly {
			return fault.NotAvailableInReadOnlyMode
		}
		log.Infof("Product.History: verify first: product: %s  settlement: %s", arguments.ProductId, arguments.Settlement.TxId)
		_, err := product.Ledger.Verify(arguments.ProductId, arguments.Verifier, arguments.Settlement)
		if nil != err && !fault.IsErrNotFound(err) {
			return err
		}
	}

	history, err := product.Ledger.History(arguments.ProductId)
	if nil != err {
		return err
	}
	reply.Transactions = history
	return nil
}

// ---

// limit for a single list reply
const maximumListCount = 1000

// ListArguments - exactly one of the actors must be given
type ListArguments struct {
	Holder       string `json:"holder,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
}

// ListReply - matching products in creation order
type ListReply struct {
	Products []registry.Product `json:"products"`
}

// List - products currently held by, or made by, an actor
func (product *Product) List(arguments *ListArguments, reply *ListReply) error {
	if err := ratelimit.Limit(product.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.MissingParameters
	}

	var products []registry.Product
	switch {
	case "" != arguments.Holder && "" == arguments.Manufacturer:
		products = product.Ledger.Holding(arguments.Holder)
	case "" == arguments.Holder && "" != arguments.Manufacturer:
		products = product.Ledger.ManufacturedBy(arguments.Manufacturer)
	default:
		return fault.MissingParameters
	}

	if len(products) > maximumListCount {
		products = products[:maximumListCount]
	}
	reply.Products = products
	return nil
}

// common prologue for the state changing calls
func (product *Product) begin(arguments interface{}) error {
	if err := ratelimit.Limit(product.Limiter); nil != err {
		return err
	}
	if product.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}
	if isNil(arguments) {
		return fault.MissingParameters
	}
	return nil
}

func isNil(arguments interface{}) bool {
	switch a := arguments.(type) {
	case *CreateArguments:
		return nil == a
	case *AssignArguments:
		return nil == a
	case *SellArguments:
		return nil == a
	case *VerifyArguments:
		return nil == a
	}
	return nil == arguments
}
