package transfer

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed send
type ErrorKind int

const (
	MissingFields ErrorKind = iota + 1
	InvalidAddress
	ExecutionFailed
)

var (
	ErrMissingFields   = errors.New("send amount and receiver address is required")
	ErrInvalidAddress  = errors.New("destination address is invalid")
	ErrExecutionFailed = errors.New("transfer failed")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingFields:
		return ErrMissingFields
	case InvalidAddress:
		return ErrInvalidAddress
	default:
		return ErrExecutionFailed
	}
}

// Error is returned by the dispatcher. errors.Is matches both the kind's
// sentinel and the underlying cause.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.sentinel().Error()
	}
	return fmt.Sprintf("%s: %v", e.Kind.sentinel(), e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}
