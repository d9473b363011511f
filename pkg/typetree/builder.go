package typetree

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-wsdltypes/internal/annotation"
	internaltypetree "github.com/goliatone/go-wsdltypes/internal/typetree"
	"github.com/goliatone/go-wsdltypes/pkg/introspect"
)

// Builder converts wrapper classes into descriptors.
type Builder interface {
	Build(ctx context.Context, class string) (Descriptor, error)
	BuildFields(ctx context.Context, class string, fields []introspect.Field) (Descriptor, error)
	ResolveWrapper(ctx context.Context, token string, ann introspect.Annotation) (Descriptor, error)
	Counter() *Counter
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	logger     *zap.Logger
	counter    *Counter
	maxDepth   int
	keepMarkup bool
}

// WithLogger routes resolution traces to logger.
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(opts *builderOptions) {
		opts.logger = logger
	}
}

// WithCounter gives the builder its own occurrence counter instead of the
// process-wide one.
func WithCounter(counter *Counter) BuilderOption {
	return func(opts *builderOptions) {
		opts.counter = counter
	}
}

// WithMaxDepth caps wrapper nesting depth.
func WithMaxDepth(depth int) BuilderOption {
	return func(opts *builderOptions) {
		opts.maxDepth = depth
	}
}

// WithKeepMarkup disables markup stripping on field descriptions.
func WithKeepMarkup(keep bool) BuilderOption {
	return func(opts *builderOptions) {
		opts.keepMarkup = keep
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(in introspect.Introspector, options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	return internaltypetree.New(in, internaltypetree.Options{
		Logger:     cfg.logger,
		Counter:    cfg.counter,
		MaxDepth:   cfg.maxDepth,
		KeepMarkup: cfg.keepMarkup,
	})
}

// ExtractAnnotation parses raw field documentation into structured metadata.
func ExtractAnnotation(doc string) introspect.Annotation {
	return annotation.Extract(doc)
}
