// Package introspect defines the class introspection capability consumed by
// the type tree builder. An Introspector returns the ordered public fields of a
// wrapper class together with the metadata attached to each field, either as
// raw documentation text using the `@type`/`@optional`/`@className=` syntax or
// as a ready-made Annotation. Three sources ship with the package: a
// reflection-backed Registry for Go structs, a YAML/JSON Catalog, and an
// adapter turning OpenAPI component schemas into classes.
package introspect
