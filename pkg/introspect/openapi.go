package introspect

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	// ExtensionAnnotation holds a raw annotation string on a property schema,
	// taking precedence over the inferred metadata.
	ExtensionAnnotation = "x-wsdl"
	// ExtensionOrder lists property names in declaration order on an object
	// schema. Properties not listed follow in alphabetical order.
	ExtensionOrder = "x-wsdl-order"

	componentSchemaPrefix = "#/components/schemas/"
)

// FromOpenAPI converts the object schemas under components.schemas of an
// OpenAPI 3 document into catalog classes. Each property becomes a field:
// `$ref`s become wrapper references, arrays become array fields, inline
// objects become object fields and primitives map onto scalar type names.
// Properties missing from `required` are optional.
func FromOpenAPI(ctx context.Context, data []byte) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("introspect: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("introspect: load openapi document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("introspect: openapi document has no component schemas")
	}

	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	catalog := &Catalog{classes: make(map[string]Class), sources: make(map[string]string)}
	for _, name := range names {
		ref := spec.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		schema := ref.Value
		if schemaType(schema.Type) != "object" && len(schema.Properties) == 0 {
			continue
		}
		class, err := classFromSchema(name, schema)
		if err != nil {
			return nil, err
		}
		if err := catalog.Add(class, "openapi:"+name); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func classFromSchema(name string, schema *openapi3.Schema) (Class, error) {
	required := make(map[string]struct{}, len(schema.Required))
	for _, item := range schema.Required {
		required[item] = struct{}{}
	}

	class := Class{Name: name}
	for _, prop := range propertyOrder(schema) {
		propRef := schema.Properties[prop]
		if propRef == nil {
			continue
		}
		field := Field{Name: prop}
		if raw, ok := extensionString(propRef.Value, ExtensionAnnotation); ok {
			field.Doc = raw
		} else {
			ann, err := annotationFromSchema(propRef)
			if err != nil {
				return Class{}, fmt.Errorf("introspect: schema %s property %s: %w", name, prop, err)
			}
			_, isRequired := required[prop]
			ann.Optional = !isRequired
			field.Annotation = &ann
		}
		class.Fields = append(class.Fields, field)
	}
	return class, nil
}

func propertyOrder(schema *openapi3.Schema) []string {
	var ordered []string
	listed := make(map[string]struct{})
	if raw, ok := schema.Extensions[ExtensionOrder].([]any); ok {
		for _, item := range raw {
			name, ok := item.(string)
			if !ok {
				continue
			}
			if _, exists := schema.Properties[name]; !exists {
				continue
			}
			if _, dup := listed[name]; dup {
				continue
			}
			listed[name] = struct{}{}
			ordered = append(ordered, name)
		}
	}

	rest := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if _, ok := listed[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

func annotationFromSchema(ref *openapi3.SchemaRef) (Annotation, error) {
	if className, ok := componentName(ref.Ref); ok {
		ann := Annotation{Type: "wrapper", ClassName: className}
		if ref.Value != nil {
			ann.Description = ref.Value.Description
		}
		return ann, nil
	}
	if ref.Value == nil {
		return Annotation{}, fmt.Errorf("unresolved reference %q", ref.Ref)
	}

	schema := ref.Value
	switch schemaType(schema.Type) {
	case "array":
		if schema.Items == nil {
			return Annotation{}, errors.New("array schema missing items")
		}
		elem, err := annotationFromSchema(schema.Items)
		if err != nil {
			return Annotation{}, err
		}
		if elem.Array {
			return Annotation{}, errors.New("nested arrays are not supported")
		}
		elem.Array = true
		elem.Description = schema.Description
		return elem, nil
	case "object":
		return Annotation{Type: "object", Description: schema.Description}, nil
	default:
		return Annotation{Type: scalarName(schema), Description: schema.Description}, nil
	}
}

func scalarName(schema *openapi3.Schema) string {
	switch schemaType(schema.Type) {
	case "string":
		switch schema.Format {
		case "date-time":
			return "dateTime"
		case "date":
			return "date"
		case "byte", "binary":
			return "base64Binary"
		}
		return "string"
	case "integer":
		if schema.Format == "int64" {
			return "long"
		}
		return "int"
	case "number":
		if schema.Format == "double" {
			return "double"
		}
		return "float"
	case "boolean":
		return "boolean"
	default:
		return VoidType
	}
}

func componentName(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	idx := strings.LastIndex(ref, componentSchemaPrefix)
	if idx < 0 {
		return "", false
	}
	name := ref[idx+len(componentSchemaPrefix):]
	return name, name != ""
}

func extensionString(schema *openapi3.Schema, key string) (string, bool) {
	if schema == nil || schema.Extensions == nil {
		return "", false
	}
	value, ok := schema.Extensions[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
