package calculator

import (
	"errors"
	"fmt"
)

// ErrInvalidInput means the order has no items array. No process is started.
var ErrInvalidInput = errors.New("invalid order data: items array required")

// ExternalServiceError is returned when the processor wrote only to stderr.
type ExternalServiceError struct {
	Command string
	Stderr  string
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("order processor %s failed: %s", e.Command, e.Stderr)
}

// ExecutionError covers launch failures, timeouts and unparseable output.
type ExecutionError struct {
	Command string
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("order processor %s: %v", e.Command, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
