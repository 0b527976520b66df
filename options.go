package stitchgo

import (
	"log/slog"

	"github.com/hupe1980/stitchgo/codec"
)

type options struct {
	codec            codec.Codec
	brand            string
	workers          int
	sharedCache      bool
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Matcher construction and recolor behavior.
type Option func(*options)

func defaultOptions() options {
	return options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

// WithCodec configures the codec used for decoding palette catalogs.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithBrand keeps only palette colours of the given brand (case-insensitive).
func WithBrand(brand string) Option {
	return func(o *options) {
		o.brand = brand
	}
}

// WithWorkers sets the number of goroutines used per recolor job.
// Values <= 0 use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithSharedCache makes recolor workers share one concurrent lookup cache
// instead of owning private caches that are merged afterwards.
func WithSharedCache(shared bool) Option {
	return func(o *options) {
		o.sharedCache = shared
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &stitchgo.BasicMetricsCollector{}
//	m, _ := stitchgo.New(records, stitchgo.WithMetricsCollector(metrics))
//	// ... use m ...
//	stats := metrics.GetStats()
//	fmt.Printf("Recolors: %d, cache misses: %d\n", stats.RecolorCount, stats.CacheMisses)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// PatternOptions configures CreatePattern.
type PatternOptions struct {
	// Width is the pattern width in stitches. Zero keeps the image size.
	Width int
	// MaxColors bounds the distinct colours before palette matching.
	MaxColors int
	// MaxIter bounds k-means iterations.
	MaxIter int
	// Seed drives k-means initialization.
	Seed int64
}

// DefaultPatternOptions contains the default pattern options.
var DefaultPatternOptions = PatternOptions{
	Width:     0,
	MaxColors: 200,
	MaxIter:   20,
	Seed:      1,
}

// PatternOption configures a single CreatePattern call.
type PatternOption func(*PatternOptions)

// WithWidth sets the pattern width in stitches.
func WithWidth(width int) PatternOption {
	return func(o *PatternOptions) {
		o.Width = width
	}
}

// WithMaxColors sets the colour limit applied before palette matching.
func WithMaxColors(n int) PatternOption {
	return func(o *PatternOptions) {
		o.MaxColors = n
	}
}

// WithSeed sets the k-means seed.
func WithSeed(seed int64) PatternOption {
	return func(o *PatternOptions) {
		o.Seed = seed
	}
}

// WithMaxIter sets the k-means iteration limit.
func WithMaxIter(n int) PatternOption {
	return func(o *PatternOptions) {
		o.MaxIter = n
	}
}
