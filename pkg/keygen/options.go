package keygen

import (
	"log/slog"

	"github.com/aretw0/psibench/internal/metrics"
)

// options holds the optional collaborators of a Generator.
type options struct {
	logger  *slog.Logger
	seed    *uint64
	metrics *metrics.Recorder
}

// Option defines a functional option for configuring the generator.
type Option func(*options)

// WithLogger sets the logger used for progress and fallback warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSeed makes the output reproducible. Without it the generator seeds
// itself from crypto/rand.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithMetrics records line, retry and fallback counters.
func WithMetrics(m *metrics.Recorder) Option {
	return func(o *options) {
		o.metrics = m
	}
}
