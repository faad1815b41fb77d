// Package guard provides argument-validation assertions.
//
// Guards check preconditions that hold in every correct program: a nil
// argument, an empty name, a violated invariant. A failed guard is a bug
// in the caller, so guards panic with a *Violation rather than returning
// an error for the caller to mishandle.
package guard

import (
	"fmt"
	"reflect"
)

// Violation is the panic value raised by a failed guard. It implements
// error so recovery layers can treat it uniformly.
type Violation struct {
	Message string
}

// Error returns the violation message.
func (v *Violation) Error() string { return "guard: " + v.Message }

// That panics with a Violation carrying msg when cond is false.
func That(cond bool, msg string) {
	if !cond {
		panic(&Violation{Message: msg})
	}
}

// Thatf is like That with a formatted message.
func Thatf(cond bool, format string, args ...any) {
	if !cond {
		panic(&Violation{Message: fmt.Sprintf(format, args...)})
	}
}

// NotNil panics when v is nil, or is a nil pointer, interface, map,
// slice, channel, or function. Non-nillable values always pass.
func NotNil(name string, v any) {
	if v == nil {
		panic(&Violation{Message: name + " must not be nil"})
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if rv.IsNil() {
			panic(&Violation{Message: name + " must not be nil"})
		}
	}
}

// NotEmpty panics when s is the empty string.
func NotEmpty(name, s string) {
	if s == "" {
		panic(&Violation{Message: name + " must not be empty"})
	}
}

// InRange panics when i is outside [0, n). Use for index arguments.
func InRange(name string, i, n int) {
	Thatf(i >= 0 && i < n, "%s %d out of range [0, %d)", name, i, n)
}
