package typetree

import "go.uber.org/zap"

const defaultMaxDepth = 64

// Options configures a Builder.
type Options struct {
	// Logger receives debug traces of the resolution. Defaults to a no-op
	// logger.
	Logger *zap.Logger
	// Counter assigns array occurrence indexes. Defaults to SharedCounter.
	Counter *Counter
	// MaxDepth caps wrapper nesting. Values <= 0 use the default of 64.
	MaxDepth int
	// KeepMarkup leaves field descriptions untouched instead of stripping
	// markup from them.
	KeepMarkup bool
}

func defaultOptions() Options {
	return Options{
		Logger:   zap.NewNop(),
		Counter:  SharedCounter(),
		MaxDepth: defaultMaxDepth,
	}
}
