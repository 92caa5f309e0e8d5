package ux

import (
	"fmt"

	"github.com/drake/syncux/toolkit"
)

// OperationKind is what a review asks the user to sign.
type OperationKind uint8

const (
	Transaction OperationKind = iota
	Message
	Operation
)

// String returns the lower-case name of the kind.
func (k OperationKind) String() string {
	switch k {
	case Message:
		return "message"
	case Operation:
		return "operation"
	default:
		return "transaction"
	}
}

func (k OperationKind) base() toolkit.OperationType {
	switch k {
	case Message:
		return toolkit.TypeMessage
	case Operation:
		return toolkit.TypeOperation
	default:
		return toolkit.TypeTransaction
	}
}

// OperationCode composes the toolkit operation code for a review.
func OperationCode(kind OperationKind, blind, skippable bool) toolkit.OperationType {
	code := kind.base()
	if blind {
		code |= toolkit.BlindOperation
	}
	if skippable {
		code |= toolkit.SkippableOperation
	}
	return code
}

// StatusCode returns the banner shown after reviewing an operation of
// this kind.
func (k OperationKind) StatusCode(success bool) toolkit.ReviewStatus {
	switch k {
	case Message:
		if success {
			return toolkit.StatusMessageSigned
		}
		return toolkit.StatusMessageRejected
	case Operation:
		if success {
			return toolkit.StatusOperationSigned
		}
		return toolkit.StatusOperationRejected
	default:
		if success {
			return toolkit.StatusTransactionSigned
		}
		return toolkit.StatusTransactionRejected
	}
}

// StatusKind selects a status banner family. StatusAddress has no
// operation kind behind it.
type StatusKind uint8

const (
	StatusTransaction StatusKind = iota
	StatusMessage
	StatusOperation
	StatusAddress
)

// Status returns the status family of an operation kind.
func (k OperationKind) Status() StatusKind {
	switch k {
	case Message:
		return StatusMessage
	case Operation:
		return StatusOperation
	default:
		return StatusTransaction
	}
}

// Operation returns the operation kind behind a status family. It panics
// for StatusAddress and for values outside the enumeration.
func (s StatusKind) Operation() OperationKind {
	switch s {
	case StatusTransaction:
		return Transaction
	case StatusMessage:
		return Message
	case StatusOperation:
		return Operation
	case StatusAddress:
		panic(ErrAddressStatus)
	}
	panic(fmt.Errorf("%w: %d", ErrUnknownStatusKind, int(s)))
}

// StatusCode returns the banner for a status family and outcome.
func StatusCode(kind StatusKind, success bool) toolkit.ReviewStatus {
	if kind == StatusAddress {
		if success {
			return toolkit.StatusAddressVerified
		}
		return toolkit.StatusAddressRejected
	}
	return kind.Operation().StatusCode(success)
}
