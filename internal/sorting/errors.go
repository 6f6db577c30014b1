package sorting

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStrategy indicates a roster id with no registered strategy.
	ErrUnknownStrategy = errors.New("sorting: unknown strategy")

	// ErrInvariant indicates a strategy observed state it cannot proceed from.
	ErrInvariant = errors.New("sorting: invariant violated")
)

// FaultError wraps an unexpected failure inside a strategy run.
type FaultError struct {
	Strategy string
	Cause    error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Cause)
}

func (e *FaultError) Unwrap() error {
	return e.Cause
}

// PanicError carries a value recovered from a panicking strategy.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
