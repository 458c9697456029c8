package progress

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput means a mutating call got an out-of-contract argument.
	// The store state is unchanged.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPersistenceUnavailable means durable storage could not be read or
	// written. The store keeps operating in memory.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)

// InputError names the rejected field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// PersistenceError wraps a failed load or save.
type PersistenceError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("progress %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistenceUnavailable, e.Err}
}
