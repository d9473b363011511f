package typetree

import (
	"errors"
	"fmt"
)

var (
	// ErrNotComplexType is returned when wrapper resolution is attempted on a
	// type that is neither object nor wrapper.
	ErrNotComplexType = errors.New("typetree: attribute is not a complex type")
	// ErrMissingClassName is returned when a wrapper field does not declare
	// `@className=`.
	ErrMissingClassName = errors.New("typetree: wrapper field is missing a class name")
	// ErrUnreachableClass is returned when the introspector cannot load a
	// class.
	ErrUnreachableClass = errors.New("typetree: class is unreachable")
	// ErrCyclicReference is returned when a wrapper class refers back to a
	// class that is still being resolved.
	ErrCyclicReference = errors.New("typetree: cyclic wrapper reference")
	// ErrDepthExceeded is returned when wrapper nesting exceeds the configured
	// maximum depth.
	ErrDepthExceeded = errors.New("typetree: wrapper nesting too deep")
)

// FieldError attaches the class and field being resolved to a failure.
type FieldError struct {
	Class string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("typetree: class %q field %q: %v", e.Class, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// wrapFieldError keeps the innermost class/field context when errors bubble
// up through nested wrapper classes.
func wrapFieldError(class, field string, err error) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		return err
	}
	return &FieldError{Class: class, Field: field, Err: err}
}

// unreachableError wraps an introspector failure so it matches both
// ErrUnreachableClass and the underlying cause.
type unreachableError struct {
	class string
	err   error
}

func (e *unreachableError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrUnreachableClass, e.class, e.err)
}

func (e *unreachableError) Unwrap() []error {
	return []error{ErrUnreachableClass, e.err}
}
