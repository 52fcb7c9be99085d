package collection

import (
	"errors"
	"fmt"
)

var (
	// ErrInFlight is returned when an operation of the same kind has not
	// resolved yet.
	ErrInFlight = errors.New("operation already in flight")

	// ErrReadOnly is returned for writes against a read-only deployment.
	ErrReadOnly = errors.New("deployment is read-only")

	// ErrNotFound is returned when a record is not in the local snapshot.
	ErrNotFound = errors.New("record not in collection")
)

// RequestFailedError is the single failure kind of every network operation.
// Connectivity errors, non-2xx responses and malformed payloads all end up
// here; Message is what the user sees.
type RequestFailedError struct {
	Op      Op
	Message string
	Err     error
}

func (e *RequestFailedError) Error() string {
	if e.Err == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying error text, or the message when there is none.
func (e *RequestFailedError) Cause() string {
	if e.Err == nil {
		return e.Message
	}

	return e.Err.Error()
}

func requestFailed(op Op, err error) *RequestFailedError {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf
	}

	return &RequestFailedError{Op: op, Message: op.FailureMessage(), Err: err}
}
