package introspect

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	tagWSDL = "wsdl"
	tagDoc  = "doc"
	tagJSON = "json"
)

var timeType = reflect.TypeOf(time.Time{})

// Registry introspects Go struct types via reflection. Exported struct fields
// are the public fields of a class; metadata comes from the `wsdl` tag, a raw
// `doc` tag, or is inferred from the Go type when neither is present.
//
// The `wsdl` tag is a comma separated list: `type=<token>` (a trailing `[]`
// marks an array), `optional`, `class=<identifier>`, `name=<field name>` and
// `desc=<text>`. A tag of "-" hides the field.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]reflect.Type
	byType  map[reflect.Type]string
	ordered []string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]reflect.Type),
		byType: make(map[reflect.Type]string),
	}
}

// Register records the struct type of sample under name. Pointers are
// dereferenced. An empty name falls back to the qualified Go type name.
func (r *Registry) Register(name string, sample any) error {
	if sample == nil {
		return fmt.Errorf("introspect: register %q: sample is nil", name)
	}
	return r.RegisterType(name, reflect.TypeOf(sample))
}

// MustRegister panics if the type cannot be registered. Useful for package
// level wiring and tests.
func (r *Registry) MustRegister(name string, sample any) *Registry {
	if err := r.Register(name, sample); err != nil {
		panic(err)
	}
	return r
}

// RegisterType records t under name.
func (r *Registry) RegisterType(name string, t reflect.Type) error {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("introspect: register %q: %v is not a struct type", name, t)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = t.String()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byName[name]; ok && existing != t {
		return fmt.Errorf("introspect: class %q already registered as %v", name, existing)
	}
	r.add(name, t)
	return nil
}

func (r *Registry) add(name string, t reflect.Type) {
	if _, ok := r.byName[name]; !ok {
		r.ordered = append(r.ordered, name)
	}
	r.byName[name] = t
	if _, ok := r.byType[t]; !ok {
		r.byType[t] = name
	}
}

// Classes returns the registered class names sorted alphabetically.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]string(nil), r.ordered...)
	sort.Strings(out)
	return out
}

// Fields implements Introspector.
func (r *Registry) Fields(ctx context.Context, class string) ([]Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	t, ok := r.byName[strings.TrimSpace(class)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrClassNotFound, class)
	}
	return r.structFields(class, t)
}

func (r *Registry) structFields(class string, t reflect.Type) ([]Field, error) {
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, hasTag := sf.Tag.Lookup(tagWSDL)
		if tag == "-" {
			continue
		}
		if sf.Anonymous && !hasTag {
			embedded := sf.Type
			if embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct && embedded != timeType {
				promoted, err := r.structFields(class, embedded)
				if err != nil {
					return nil, err
				}
				fields = append(fields, promoted...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		field, err := r.fieldFor(class, sf, tag, hasTag)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func (r *Registry) fieldFor(class string, sf reflect.StructField, tag string, hasTag bool) (Field, error) {
	field := Field{Name: defaultFieldName(sf)}

	if doc, ok := sf.Tag.Lookup(tagDoc); ok && !hasTag {
		field.Doc = doc
		return field, nil
	}

	ann := Annotation{}
	explicitType := false
	if hasTag {
		for _, part := range strings.Split(tag, ",") {
			part = strings.TrimSpace(part)
			key, value, _ := strings.Cut(part, "=")
			switch strings.TrimSpace(key) {
			case "":
			case "type":
				token := strings.TrimSpace(value)
				if base, ok := strings.CutSuffix(token, "[]"); ok {
					ann.Array = true
					token = base
				}
				ann.Type = token
				explicitType = true
			case "optional":
				ann.Optional = true
			case "class", "className":
				ann.ClassName = strings.TrimSpace(value)
			case "name":
				if name := strings.TrimSpace(value); name != "" {
					field.Name = name
				}
			case "desc":
				ann.Description = strings.TrimSpace(value)
			default:
				return Field{}, fmt.Errorf("introspect: %s.%s: unknown wsdl tag option %q", class, sf.Name, key)
			}
		}
	}

	if !explicitType {
		inferred, err := r.infer(sf.Type)
		if err != nil {
			return Field{}, fmt.Errorf("introspect: %s.%s: %w", class, sf.Name, err)
		}
		ann.Type = inferred.Type
		ann.Array = inferred.Array
		ann.Optional = ann.Optional || inferred.Optional
		if ann.ClassName == "" {
			ann.ClassName = inferred.ClassName
		}
	}

	field.Annotation = &ann
	return field, nil
}

// infer maps a Go type onto annotation metadata.
func (r *Registry) infer(t reflect.Type) (Annotation, error) {
	var ann Annotation
	if t.Kind() == reflect.Pointer {
		ann.Optional = true
		t = t.Elem()
	}
	if (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && t.Elem().Kind() != reflect.Uint8 {
		elem, err := r.infer(t.Elem())
		if err != nil {
			return Annotation{}, err
		}
		if elem.Array {
			return Annotation{}, fmt.Errorf("nested array %v is not supported", t)
		}
		elem.Array = true
		elem.Optional = ann.Optional
		return elem, nil
	}

	switch t.Kind() {
	case reflect.String:
		ann.Type = "string"
	case reflect.Bool:
		ann.Type = "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		ann.Type = "int"
	case reflect.Float32, reflect.Float64:
		ann.Type = "float"
	case reflect.Slice, reflect.Array:
		ann.Type = "base64Binary"
	case reflect.Struct:
		if t == timeType {
			ann.Type = "dateTime"
			break
		}
		ann.Type = "wrapper"
		ann.ClassName = r.nameFor(t)
	default:
		return Annotation{}, fmt.Errorf("unsupported kind %s", t.Kind())
	}
	return ann, nil
}

// nameFor returns the registered class name of t, registering it under its
// qualified Go name when unknown.
func (r *Registry) nameFor(t reflect.Type) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name, ok := r.byType[t]; ok {
		return name
	}
	name := t.String()
	r.add(name, t)
	return name
}

func defaultFieldName(sf reflect.StructField) string {
	if tag, ok := sf.Tag.Lookup(tagJSON); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return sf.Name
}
