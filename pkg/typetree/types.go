package typetree

import internaltypetree "github.com/goliatone/go-wsdltypes/internal/typetree"

// Kind re-exports the internal node kind enumeration.
type Kind = internaltypetree.Kind

const (
	KindScalar  = internaltypetree.KindScalar
	KindObject  = internaltypetree.KindObject
	KindArrayOf = internaltypetree.KindArrayOf
	KindWrapper = internaltypetree.KindWrapper
)

type TypeNode = internaltypetree.TypeNode
type Descriptor = internaltypetree.Descriptor
type Counter = internaltypetree.Counter
type FieldError = internaltypetree.FieldError

type Strategy = internaltypetree.Strategy

const (
	StrategyScalar  = internaltypetree.StrategyScalar
	StrategyObject  = internaltypetree.StrategyObject
	StrategyWrapper = internaltypetree.StrategyWrapper
	StrategyArray   = internaltypetree.StrategyArray
)

type Resolution = internaltypetree.Resolution

var (
	ErrNotComplexType   = internaltypetree.ErrNotComplexType
	ErrMissingClassName = internaltypetree.ErrMissingClassName
	ErrUnreachableClass = internaltypetree.ErrUnreachableClass
	ErrCyclicReference  = internaltypetree.ErrCyclicReference
	ErrDepthExceeded    = internaltypetree.ErrDepthExceeded
)

// NewCounter returns an isolated occurrence counter.
func NewCounter() *Counter {
	return internaltypetree.NewCounter()
}

// SharedCounter returns the process-wide occurrence counter.
func SharedCounter() *Counter {
	return internaltypetree.SharedCounter()
}

// Resolve selects the strategy for a type token.
func Resolve(token string, isArray bool) Resolution {
	return internaltypetree.Resolve(token, isArray)
}

// IsComplex reports whether token is object or wrapper.
func IsComplex(token string) bool {
	return internaltypetree.IsComplex(token)
}
