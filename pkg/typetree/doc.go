// Package typetree exposes the wrapper class type tree builder. A Builder
// reads the public fields of a wrapper class through an introspect.Introspector,
// classifies each field as scalar, object, wrapper or array, and returns a
// Descriptor: the ordered TypeNodes a schema generator renders into WSDL
// complex types. Wrapper references are resolved depth first; cycles fail with
// ErrCyclicReference. Array fields receive occurrence indexes from a Counter
// that, unless WithCounter is supplied, is shared by the whole process.
package typetree
