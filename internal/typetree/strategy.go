package typetree

import (
	"strings"

	"github.com/goliatone/go-wsdltypes/pkg/introspect"
)

// Strategy selects how a field is turned into a TypeNode.
type Strategy string

const (
	StrategyScalar  Strategy = "scalar"
	StrategyObject  Strategy = "object"
	StrategyWrapper Strategy = "wrapper"
	StrategyArray   Strategy = "array"
)

const (
	tokenObject  = "object"
	tokenWrapper = "wrapper"
)

// Resolution is the outcome of strategy selection for a field.
type Resolution struct {
	Strategy Strategy
	// Token is the declared type token.
	Token string
	// Element is the strategy of array elements; empty unless Strategy is
	// StrategyArray.
	Element Strategy
}

// Resolve maps a declared type token onto a strategy.
func Resolve(token string, isArray bool) Resolution {
	token = strings.TrimSpace(token)
	if token == "" {
		token = introspect.VoidType
	}
	if isArray {
		return Resolution{Strategy: StrategyArray, Token: token, Element: Resolve(token, false).Strategy}
	}
	switch token {
	case tokenObject:
		return Resolution{Strategy: StrategyObject, Token: token}
	case tokenWrapper:
		return Resolution{Strategy: StrategyWrapper, Token: token}
	default:
		return Resolution{Strategy: StrategyScalar, Token: token}
	}
}

// ResolveAnnotation is Resolve applied to an extracted annotation.
func ResolveAnnotation(ann introspect.Annotation) Resolution {
	return Resolve(ann.TypeToken(), ann.Array)
}

// IsComplex reports whether token needs structural description.
func IsComplex(token string) bool {
	switch strings.TrimSpace(token) {
	case tokenObject, tokenWrapper:
		return true
	default:
		return false
	}
}

// StripNamespace drops any namespace or package qualifier from a class
// identifier: `Some\Namespace\Foo`, `some.pkg.Foo` and `some/pkg.Foo` all
// become `Foo`.
func StripNamespace(class string) string {
	class = strings.TrimSpace(class)
	if idx := strings.LastIndexAny(class, `\./`); idx >= 0 {
		return class[idx+1:]
	}
	return class
}
