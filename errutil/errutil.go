// Package errutil provides small helpers for panic and error handling.
package errutil

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// PanicError is a recovered panic carried as an error. It keeps the
// original panic value and the stack captured at recovery time.
type PanicError struct {
	Value any
	Stack []byte
}

// Error describes the panic value.
func (e *PanicError) Error() string {
	return fmt.Sprintf("errutil: recovered panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error, so
// errors.Is and errors.As see through the recovery.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Safely runs fn, converting a panic into a *PanicError. Errors returned
// by fn pass through unchanged.
func Safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// AsPanic unwraps err as a *PanicError. Reports false when err does not
// originate from a recovered panic.
func AsPanic(err error) (*PanicError, bool) {
	var pe *PanicError
	ok := errors.As(err, &pe)
	return pe, ok
}

// Must returns v, panicking when err is non-nil. Use for initialization
// paths where the error is a programming mistake.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
