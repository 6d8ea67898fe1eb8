// Copyright (c) 2023 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/interledger-labs/ilp-node
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ilp

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// APIError represents the error returned by the APIs of this core.
//
// Along with the error message, this error type assigns to each error an
// error category that describes how the error should be handled, an error
// code that identifies the specific type of error and additional info that
// contains data related to the error as key value pairs.
type APIError interface {
	Category() ErrorCategory
	Code() ErrorCode
	Message() string
	AddInfo() interface{}
	Error() string
}

// ErrorCategory represents the category of the error, which describes how
// the error should be handled by the caller.
type ErrorCategory int

const (
	// ValidationError is raised synchronously at construction time, when
	// input to a parser, builder or validator is malformed. It is always
	// recoverable by correcting the input; no partially-built object is
	// ever observable.
	ValidationError ErrorCategory = iota

	// OperationalError is raised synchronously by an adaptor call when a
	// precondition of the operation is violated. The attempted operation
	// has no side effect.
	OperationalError

	// LedgerError is reported by the ledger while accepting an operation,
	// such as the sender not covering the transfer amount. Outcomes of
	// operations the ledger already accepted are never errors; they are
	// delivered as events.
	LedgerError

	// InternalError is caused by unintended behavior in the core itself.
	// The caller should inspect the error message manually.
	InternalError
)

// String implements the stringer interface for ErrorCategory.
func (c ErrorCategory) String() string {
	return [...]string{
		"Validation",
		"Operational",
		"Ledger",
		"Internal",
	}[c]
}

// ErrorCode is a numeric code assigned to identify the specific type of
// error. The keys in the additional info field are fixed for each code.
type ErrorCode int

// Error code definitions.
const (
	ErrInvalidAddress    ErrorCode = 101
	ErrInvalidArgument   ErrorCode = 102
	ErrIncompleteBuilder ErrorCode = 103
	ErrInvalidConfig     ErrorCode = 104

	ErrNotConnected      ErrorCode = 201
	ErrAccountNotFound   ErrorCode = 202
	ErrUnauthorized      ErrorCode = 203
	ErrInvalidState      ErrorCode = 204
	ErrDuplicateTransfer ErrorCode = 205

	ErrInsufficientFunds ErrorCode = 301

	ErrUnknownInternal ErrorCode = 401
)

type (
	// ErrInfoInvalidAddress represents the fields in the additional info
	// for ErrInvalidAddress.
	ErrInfoInvalidAddress struct {
		Value       string
		Requirement string
	}

	// ErrInfoInvalidArgument represents the fields in the additional info
	// for ErrInvalidArgument.
	ErrInfoInvalidArgument struct {
		Name        string
		Value       string
		Requirement string
	}

	// ErrInfoIncompleteBuilder represents the fields in the additional info
	// for ErrIncompleteBuilder.
	ErrInfoIncompleteBuilder struct {
		MissingFields []string
	}

	// ErrInfoInvalidConfig represents the fields in the additional info for
	// ErrInvalidConfig.
	ErrInfoInvalidConfig struct {
		Name  string
		Value string
	}

	// ErrInfoNotConnected represents the fields in the additional info for
	// ErrNotConnected.
	ErrInfoNotConnected struct {
		LedgerPrefix string
	}

	// ErrInfoAccountNotFound represents the fields in the additional info
	// for ErrAccountNotFound.
	ErrInfoAccountNotFound struct {
		Address string
	}

	// ErrInfoUnauthorized represents the fields in the additional info for
	// ErrUnauthorized.
	ErrInfoUnauthorized struct {
		TransferID string
		Caller     string
		Receiver   string
	}

	// ErrInfoInvalidState represents the fields in the additional info for
	// ErrInvalidState.
	ErrInfoInvalidState struct {
		TransferID     string
		CurrentStatus  string
		RequiredStatus string
	}

	// ErrInfoDuplicateTransfer represents the fields in the additional info
	// for ErrDuplicateTransfer.
	ErrInfoDuplicateTransfer struct {
		TransferID string
	}

	// ErrInfoInsufficientFunds represents the fields in the additional info
	// for ErrInsufficientFunds.
	ErrInfoInsufficientFunds struct {
		Account   string
		Available string
		Required  string
	}
)

// apiError implements the APIError interface.
//
// It implements Cause() and Unwrap() methods that return the underlying
// error, which can further be unwrapped and inspected. It also implements a
// custom Formatter, so that the stack trace of the underlying error is
// printed when using the "%+v" verb.
type apiError struct {
	category ErrorCategory
	code     ErrorCode
	err      error
	addInfo  interface{}
}

// Category returns the error category for this API Error.
func (e apiError) Category() ErrorCategory { return e.category }

// Code returns the error code for this API Error.
func (e apiError) Code() ErrorCode { return e.code }

// Message returns the error message for this API Error.
func (e apiError) Message() string { return e.err.Error() }

// AddInfo returns the additional info for this API Error.
func (e apiError) AddInfo() interface{} { return e.addInfo }

// Error implements the error interface for API error.
func (e apiError) Error() string {
	return fmt.Sprintf("%s %d:%v", e.Category(), e.Code(), e.Message())
}

func (e apiError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s %d:%+v", e.Category(), e.Code(), e.err)
			return
		}
		fallthrough
	case 's':
		//nolint: errcheck, gosec	// Error of io.WriteString need not be checked.
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func (e apiError) Cause() error { return e.err }

func (e apiError) Unwrap() error { return e.err }

// NewAPIErr returns an APIError with the given parameters.
//
// For most use cases, call the error code specific constructor functions.
// This function is intended for use only in places where an APIError is to
// be modified: copy each field, modify and create a new one with this.
func NewAPIErr(category ErrorCategory, code ErrorCode, err error, addInfo interface{}) APIError {
	return apiError{
		category: category,
		code:     code,
		err:      err,
		addInfo:  addInfo,
	}
}

// NewAPIErrInvalidAddress returns an ErrInvalidAddress API Error with the
// given address string and the requirement it violates.
func NewAPIErrInvalidAddress(value, requirement string) APIError {
	message := fmt.Sprintf("invalid address %q: %s", value, requirement)
	return NewAPIErr(
		ValidationError,
		ErrInvalidAddress,
		errors.New(message),
		ErrInfoInvalidAddress{
			Value:       value,
			Requirement: requirement,
		},
	)
}

// ArgumentName type is used to enumerate valid argument names for use in the
// InvalidArgument error.
//
// The enumeration of valid constants should be defined in the package using
// the error constructors.
type ArgumentName string

// NewAPIErrInvalidArgument returns an ErrInvalidArgument API Error with the
// given argument name, value and the requirement it violates.
func NewAPIErrInvalidArgument(name ArgumentName, value, requirement string) APIError {
	message := fmt.Sprintf("invalid value for %s: %s", name, value)
	return NewAPIErr(
		ValidationError,
		ErrInvalidArgument,
		errors.New(message),
		ErrInfoInvalidArgument{
			Name:        string(name),
			Value:       value,
			Requirement: requirement,
		},
	)
}

// NewAPIErrIncompleteBuilder returns an ErrIncompleteBuilder API Error
// naming the mandatory fields that were never set on the builder.
func NewAPIErrIncompleteBuilder(missingFields ...string) APIError {
	message := fmt.Sprintf("mandatory fields not set: %s", strings.Join(missingFields, ", "))
	return NewAPIErr(
		ValidationError,
		ErrIncompleteBuilder,
		errors.New(message),
		ErrInfoIncompleteBuilder{
			MissingFields: missingFields,
		},
	)
}

// NewAPIErrInvalidConfig returns an ErrInvalidConfig API Error with the
// given config name and value.
func NewAPIErrInvalidConfig(err error, name, value string) APIError {
	message := fmt.Sprintf("invalid value for %s: %s", name, value)
	return NewAPIErr(
		ValidationError,
		ErrInvalidConfig,
		errors.WithMessage(err, message),
		ErrInfoInvalidConfig{
			Name:  name,
			Value: value,
		},
	)
}

// NewAPIErrNotConnected returns an ErrNotConnected API Error for the ledger
// with the given prefix.
func NewAPIErrNotConnected(ledgerPrefix string) APIError {
	message := fmt.Sprintf("not connected to ledger %s", ledgerPrefix)
	return NewAPIErr(
		OperationalError,
		ErrNotConnected,
		errors.New(message),
		ErrInfoNotConnected{
			LedgerPrefix: ledgerPrefix,
		},
	)
}

// NewAPIErrAccountNotFound returns an ErrAccountNotFound API Error with the
// given account address.
func NewAPIErrAccountNotFound(addr string) APIError {
	message := fmt.Sprintf("cannot find account with address: %s", addr)
	return NewAPIErr(
		OperationalError,
		ErrAccountNotFound,
		errors.New(message),
		ErrInfoAccountNotFound{
			Address: addr,
		},
	)
}

// NewAPIErrUnauthorized returns an ErrUnauthorized API Error for an attempt
// to reject the given transfer by a party other than its receiver.
func NewAPIErrUnauthorized(transferID, caller, receiver string) APIError {
	message := fmt.Sprintf("only the receiver %s may reject transfer %s", receiver, transferID)
	return NewAPIErr(
		OperationalError,
		ErrUnauthorized,
		errors.New(message),
		ErrInfoUnauthorized{
			TransferID: transferID,
			Caller:     caller,
			Receiver:   receiver,
		},
	)
}

// NewAPIErrInvalidState returns an ErrInvalidState API Error with the given
// transfer ID, its current status and the status the operation requires.
func NewAPIErrInvalidState(transferID, currentStatus, requiredStatus string) APIError {
	message := fmt.Sprintf("transfer %s is %s, operation requires %s", transferID, currentStatus, requiredStatus)
	return NewAPIErr(
		OperationalError,
		ErrInvalidState,
		errors.New(message),
		ErrInfoInvalidState{
			TransferID:     transferID,
			CurrentStatus:  currentStatus,
			RequiredStatus: requiredStatus,
		},
	)
}

// NewAPIErrDuplicateTransfer returns an ErrDuplicateTransfer API Error with
// the given transfer ID.
func NewAPIErrDuplicateTransfer(transferID string) APIError {
	message := fmt.Sprintf("transfer with ID %s was already submitted", transferID)
	return NewAPIErr(
		OperationalError,
		ErrDuplicateTransfer,
		errors.New(message),
		ErrInfoDuplicateTransfer{
			TransferID: transferID,
		},
	)
}

// NewAPIErrInsufficientFunds returns an ErrInsufficientFunds API Error with
// the given account, its available balance and the required amount, both in
// the smallest indivisible unit.
func NewAPIErrInsufficientFunds(account, available, required string) APIError {
	message := fmt.Sprintf("account %s has %s available, transfer requires %s", account, available, required)
	return NewAPIErr(
		LedgerError,
		ErrInsufficientFunds,
		errors.New(message),
		ErrInfoInsufficientFunds{
			Account:   account,
			Available: available,
			Required:  required,
		},
	)
}

// NewAPIErrUnknownInternal returns an ErrUnknownInternal API Error with the
// given error message.
func NewAPIErrUnknownInternal(err error) APIError {
	message := "unknown internal error"
	return NewAPIErr(
		InternalError,
		ErrUnknownInternal,
		errors.WithMessage(err, message),
		nil,
	)
}

// APIErrAsMap returns a map containing entries for the method and each of
// the fields in the api error (except message). The map can be directly
// passed to the logger for logging the data in a structured format.
func APIErrAsMap(method string, err APIError) map[string]interface{} {
	return map[string]interface{}{
		"method":   method,
		"category": err.Category().String(),
		"code":     err.Code(),
	}
}
