// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type PaymentError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ExistsError("already initialised")
	BatchInUse                   = ProcessError("storage batch already used")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ConfigurationFileNotFound    = NotFoundError("configuration file not found")
	DatabaseIsNotSet             = ProcessError("database is not set")
	FieldTooLong                 = InvalidError("field is too long")
	IntegrityMismatch            = RecordError("integrity hash mismatch")
	InvalidBatchNumber           = InvalidError("batch number is required")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidDigestLength          = LengthError("invalid digest length")
	InvalidDistributor           = InvalidError("distributor is required")
	InvalidExpirationDate        = InvalidError("expiration date is required")
	InvalidHealthcareProvider    = InvalidError("healthcare provider is required")
	InvalidIpAddress             = InvalidError("invalid IP address")
	InvalidKind                  = RecordError("invalid transaction kind")
	InvalidManufacturer          = InvalidError("manufacturer is required")
	InvalidName                  = InvalidError("product name is required")
	InvalidProductId             = InvalidError("product id is required")
	InvalidSettlement            = InvalidError("settlement transaction id is required")
	InvalidStructPointer         = InvalidError("invalid struct pointer")
	InvalidTransition            = InvalidError("transition not allowed from current status")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MalformedProductId           = InvalidError("product id is malformed")
	MissingParameters            = InvalidError("missing parameters")
	NotAvailableInReadOnlyMode   = ProcessError("not available in read-only mode")
	NotInitialised               = ProcessError("not initialised")
	PaymentFailed                = PaymentError("payment failed")
	ProductExists                = ExistsError("product already exists")
	ProductNotFound              = NotFoundError("product not found")
	ProviderUnavailable          = PaymentError("payment provider unavailable")
	RateLimiting                 = InvalidError("rate limiting")
	RecordTruncated              = LengthError("record is truncated")
	TransactionNotFound          = NotFoundError("transaction not found")
	UnknownRecordTag             = RecordError("unknown record tag")
	UserRejected                 = PaymentError("payment rejected by user")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e PaymentError) Error() string  { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrLength(e error) bool   { var x LengthError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrPayment(e error) bool  { var x PaymentError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
func IsErrRecord(e error) bool   { var x RecordError; return errors.As(e, &x) }
