package stoch

import (
	"errors"
	"fmt"
)

// Error kinds for simulation operations.
var (
	// ErrDomain indicates an argument outside the valid domain of an operation.
	ErrDomain = errors.New("stoch: domain error")

	// ErrState indicates an operation requested in the wrong lifecycle state.
	ErrState = errors.New("stoch: state error")

	// ErrNotDiscretized is returned by discrete operations on an operator
	// that has no discretization step.
	ErrNotDiscretized = &StateError{Op: "discrete", Reason: "operator not discretized"}
)

// DomainError reports an invalid parameter value.
type DomainError struct {
	Op     string
	Param  string
	Value  float64
	Reason string
}

// Domain builds a DomainError.
func Domain(op, param string, value float64, reason string) *DomainError {
	return &DomainError{Op: op, Param: param, Value: value, Reason: reason}
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: invalid %s=%g: %s", e.Op, e.Param, e.Value, e.Reason)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}

// StateError reports an operation that cannot run in the current state.
type StateError struct {
	Op     string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *StateError) Unwrap() error {
	return ErrState
}

// Warning is a non-fatal numerical diagnostic. It is logged and kept,
// never returned as an error.
type Warning struct {
	Op      string
	Message string
}

func (w Warning) String() string {
	return w.Op + ": " + w.Message
}
