package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when no record matches.
var ErrNotFound = errors.New("deliberation not found")

// ServiceError means a remote model call failed outright: network,
// quota, malformed request. The underlying cause is wrapped.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: service call failed: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// EmptyOutputError means the call succeeded but produced no usable
// text or binary output.
type EmptyOutputError struct {
	Op string
}

func (e *EmptyOutputError) Error() string {
	return fmt.Sprintf("%s: no output produced", e.Op)
}

// ValidationError rejects bad input before any run or call starts.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
