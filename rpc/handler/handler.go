// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/meditrace/counter"
	"github.com/bitmark-inc/meditrace/fault"
	"github.com/bitmark-inc/meditrace/identifier"
	"github.com/bitmark-inc/meditrace/registry"
	"github.com/bitmark-inc/meditrace/transactionrecord"
)

// Prefix - all routes are below this path
const Prefix = "/meditrace"

// RequestIdHeader - echoed, or generated when the client omits it
const RequestIdHeader = "X-Request-Id"

// Ledger - the reads served over plain HTTP GET
type Ledger interface {
	Product(string) (registry.Product, error)
	History(string) ([]*transactionrecord.Transaction, error)
	ProductCount() int
	TransactionCount() uint64
}

// Handler - HTTP access to the RPC server and ledger reads
type Handler interface {
	Root(http.ResponseWriter, *http.Request)
	RPC(http.ResponseWriter, *http.Request)
	Details(http.ResponseWriter, *http.Request)
	Product(http.ResponseWriter, *http.Request)
	History(http.ResponseWriter, *http.Request)
	SetAllow(map[string][]*net.IPNet)
	Router() http.Handler
}

// type to allow rpc system to interface to http request
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

// the argument passed to the handlers
type httpHandler struct {
	log                *logger.L
	server             *rpc.Server
	ledger             Ledger
	start              time.Time
	version            string
	allow              map[string][]*net.IPNet
	maximumConnections uint64
	count              counter.Counter
}

// New - create a handler, a nil ledger leaves only the RPC route useful
func New(log *logger.L, server *rpc.Server, ledger Ledger, start time.Time, version string, maximumConnections uint64) Handler {
	return &httpHandler{
		log:                log,
		server:             server,
		ledger:             ledger,
		start:              start,
		version:            version,
		allow:              make(map[string][]*net.IPNet),
		maximumConnections: maximumConnections,
	}
}

// SetAllow - restrict a named route to a set of networks
func (h *httpHandler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

// Router - all routes below Prefix
func (h *httpHandler) Router() http.Handler {
	r := mux.NewRouter()
	s := r.PathPrefix(Prefix).Subrouter()
	s.HandleFunc("/rpc", h.RPC)
	s.HandleFunc("/details", h.Details)
	s.HandleFunc("/products/{id}", h.Product)
	s.HandleFunc("/products/{id}/history", h.History)
	r.NotFoundHandler = h.requestId(http.HandlerFunc(h.Root))
	r.Use(h.requestId)
	return r
}

// tag each request so log lines can be matched to replies
func (h *httpHandler) requestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIdHeader)
		if "" == id || len(id) > 64 {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIdHeader, id)
		h.log.Debugf("request: %s  %s %s  from: %s", id, r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

// this matches anything not matched and returns error
func (h *httpHandler) Root(w http.ResponseWriter, r *http.Request) {
	sendNotFound(w)
}

// performs a call to any normal RPC
func (h *httpHandler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.enter() {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Decrement()

	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	err := h.server.ServeRequest(serverCodec)
	if nil != err {
		h.log.Debugf("rpc: error: %s", err)
		sendInternalServerError(w)
		return
	}
}

// to allow a GET for the same response as Node.Info
func (h *httpHandler) Details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.allowed("details", r.RemoteAddr) {
		h.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if !h.enter() {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Decrement()

	type theReply struct {
		Products     int    `json:"products"`
		Transactions uint64 `json:"transactions"`
		Requests     uint64 `json:"requests"`
		Version      string `json:"version"`
		Uptime       string `json:"uptime"`
	}

	reply := theReply{
		Requests: h.count.Uint64(),
		Version:  h.version,
		Uptime:   time.Since(h.start).String(),
	}
	if nil != h.ledger {
		reply.Products = h.ledger.ProductCount()
		reply.Transactions = h.ledger.TransactionCount()
	}

	sendReply(w, reply)
}

// GET the current state of a product
func (h *httpHandler) Product(w http.ResponseWriter, r *http.Request) {
	productId, ok := h.read(w, r)
	if !ok {
		return
	}
	defer h.count.Decrement()

	p, err := h.ledger.Product(productId)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, p)
}

// GET the ordered events of a product
func (h *httpHandler) History(w http.ResponseWriter, r *http.Request) {
	productId, ok := h.read(w, r)
	if !ok {
		return
	}
	defer h.count.Decrement()

	history, err := h.ledger.History(productId)
	if nil != err {
		sendFault(w, err)
		return
	}

	type theReply struct {
		Transactions []*transactionrecord.Transaction `json:"transactions"`
	}
	sendReply(w, theReply{Transactions: history})
}

// common checks for the product reads, on success the caller must
// release the connection count
func (h *httpHandler) read(w http.ResponseWriter, r *http.Request) (string, bool) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return "", false
	}
	if nil == h.ledger {
		sendNotFound(w)
		return "", false
	}

	productId := strings.TrimSpace(mux.Vars(r)["id"])
	if "" == productId {
		sendFault(w, fault.InvalidProductId)
		return "", false
	}
	if !identifier.IsProductId(productId) {
		sendFault(w, fault.MalformedProductId)
		return "", false
	}

	if !h.enter() {
		sendTooManyRequests(w)
		return "", false
	}
	return productId, true
}

// count a request, false if over the limit
func (h *httpHandler) enter() bool {
	if h.count.Increment() > h.maximumConnections {
		h.count.Decrement()
		return false
	}
	return true
}

// check the remote address against the networks for a route
func (h *httpHandler) allowed(name string, remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if nil != err {
		return false
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}
	for _, network := range h.allow[name] {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
