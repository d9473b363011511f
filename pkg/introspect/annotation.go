package introspect

import "strings"

// VoidType is the declared type of a field that carries no type metadata.
const VoidType = "void"

// Annotation is the structured per-field metadata understood by the type tree
// builder.
type Annotation struct {
	// Type is the declared type token, without any array suffix.
	Type string `json:"type" yaml:"type"`
	// Array marks the field as a repeated value of Type.
	Array bool `json:"array,omitempty" yaml:"array,omitempty"`
	// Optional marks the field as optional in the generated schema.
	Optional bool `json:"optional,omitempty" yaml:"optional,omitempty"`
	// ClassName identifies the referenced wrapper class for wrapper types.
	ClassName string `json:"className,omitempty" yaml:"className,omitempty"`
	// Description is free text documenting the field.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// TypeToken returns the declared type, falling back to VoidType.
func (a Annotation) TypeToken() string {
	token := strings.TrimSpace(a.Type)
	if token == "" {
		return VoidType
	}
	return token
}

// HasClassName reports whether a referenced class is declared.
func (a Annotation) HasClassName() bool {
	return strings.TrimSpace(a.ClassName) != ""
}
