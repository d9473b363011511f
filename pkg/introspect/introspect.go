package introspect

import (
	"context"
	"errors"
	"fmt"
)

// ErrClassNotFound reports that an introspector does not know the requested
// class.
var ErrClassNotFound = errors.New("introspect: class not found")

// Field describes a single public field of a wrapper class.
type Field struct {
	Name string `json:"name" yaml:"name"`
	// Doc holds the raw documentation attached to the field. It is only parsed
	// when Annotation is nil.
	Doc        string      `json:"doc,omitempty" yaml:"doc,omitempty"`
	Annotation *Annotation `json:"annotation,omitempty" yaml:"annotation,omitempty"`
}

// Introspector enumerates the public fields of a class in declaration order.
type Introspector interface {
	Fields(ctx context.Context, class string) ([]Field, error)
}

// Lister is implemented by introspectors that can enumerate the classes they
// know about.
type Lister interface {
	Classes() []string
}

// IntrospectorFunc adapts a function into an Introspector.
type IntrospectorFunc func(ctx context.Context, class string) ([]Field, error)

// Fields calls the underlying function.
func (fn IntrospectorFunc) Fields(ctx context.Context, class string) ([]Field, error) {
	return fn(ctx, class)
}

// Chain consults each introspector in order and returns the fields from the
// first one that knows the class.
type Chain []Introspector

// Fields implements Introspector.
func (c Chain) Fields(ctx context.Context, class string) ([]Field, error) {
	for _, in := range c {
		if in == nil {
			continue
		}
		fields, err := in.Fields(ctx, class)
		if err == nil {
			return fields, nil
		}
		if !errors.Is(err, ErrClassNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrClassNotFound, class)
}

// Classes returns the union of class names exposed by chained Listers, in
// chain order without duplicates.
func (c Chain) Classes() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, in := range c {
		lister, ok := in.(Lister)
		if !ok {
			continue
		}
		for _, name := range lister.Classes() {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

func cloneFields(fields []Field) []Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = field
		if field.Annotation != nil {
			ann := *field.Annotation
			out[i].Annotation = &ann
		}
	}
	return out
}
