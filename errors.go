package locator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// A missing registration is not an error for Resolve; ErrNotFound only
// surfaces from the Must* helpers and the dig bridge.

var (
	// Resolution errors.
	ErrNotFound = errors.New("registration not found")

	// Factory errors.
	ErrFactoryPanicked = errors.New("factory panicked")
)

var (
	_ error = LifecycleError{}
	_ error = ReleasePolicyError{}
	_ error = KeyError{}
	_ error = TypeMismatchError{}
	_ error = FactoryError{}
	_ error = FactoryPanicError{}
	_ error = ResolutionError{}
	_ error = ModuleError{}
	_ error = DisposalError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// LifecycleError indicates an invalid lifecycle value.
type LifecycleError struct {
	Value any
}

func (e LifecycleError) Error() string {
	return fmt.Sprintf("invalid lifecycle: %v", e.Value)
}

// ReleasePolicyError indicates an invalid one-time release policy value.
type ReleasePolicyError struct {
	Value any
}

func (e ReleasePolicyError) Error() string {
	return fmt.Sprintf("invalid release policy: %v", e.Value)
}

// KeyError indicates a key component that cannot be compared, such as a slice
// or a map. NewKey panics with this error.
type KeyError struct {
	Type      string
	Component string // "name" or "container"
	Value     any
}

func (e KeyError) Error() string {
	return fmt.Sprintf("invalid key %s: %s of type %T is not comparable", e.Type, e.Component, e.Value)
}

// TypeMismatchError indicates that a produced value or a supplied parameter
// does not have the type the caller expects.
type TypeMismatchError struct {
	Key      Key
	Expected reflect.Type
	Actual   reflect.Type
	Context  string // "result", "parameter"
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("%s type mismatch for %s: expected %s, got %s",
		e.Context, e.Key, formatType(e.Expected), formatType(e.Actual))
}

// FactoryError wraps an error returned by a registered factory.
type FactoryError struct {
	Key   Key
	Cause error
}

func (e FactoryError) Error() string {
	return fmt.Sprintf("factory for %s failed: %v", e.Key, e.Cause)
}

func (e FactoryError) Unwrap() error {
	return e.Cause
}

// FactoryPanicError indicates a factory panicked during resolution.
// It captures the panic value and stack trace for debugging.
type FactoryPanicError struct {
	Key   Key
	Panic any
	Stack []byte
}

func (e FactoryPanicError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("factory for %s panicked: %v", e.Key, e.Panic))

	if len(e.Stack) > 0 {
		b.WriteString("\n\nStack trace:\n")
		b.Write(e.Stack)
	}

	return b.String()
}

func (e FactoryPanicError) Unwrap() error {
	return ErrFactoryPanicked
}

// ResolutionError wraps errors from the Must* helpers and the dig bridge.
type ResolutionError struct {
	Key   Key
	Cause error
}

func (e ResolutionError) Error() string {
	if errors.Is(e.Cause, ErrNotFound) {
		return fmt.Sprintf("registration not found: %s", e.Key)
	}
	return fmt.Sprintf("failed to resolve %s: %v", e.Key, e.Cause)
}

func (e ResolutionError) Unwrap() error {
	return e.Cause
}

// ModuleError wraps errors from module installation.
type ModuleError struct {
	Module string
	Cause  error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("module %q: %v", e.Module, e.Cause)
}

func (e ModuleError) Unwrap() error {
	return e.Cause
}

// DisposalError aggregates disposal errors
type DisposalError struct {
	Errors []error
}

func (e DisposalError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("registry disposal failed: %v", e.Errors[0])
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("registry disposal failed with %d errors:", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("\n  %d. %v", i+1, err))
	}
	return sb.String()
}

func (e DisposalError) Unwrap() []error {
	return e.Errors
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Slice:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "[]" + elem.Name()
		}
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
