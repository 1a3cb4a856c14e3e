package dataset

import (
	"log/slog"

	"github.com/aretw0/psibench/internal/metrics"
)

type options struct {
	logger  *slog.Logger
	seed    *uint64
	metrics *metrics.Recorder
}

// Option defines a functional option for configuring the generator.
type Option func(*options)

// WithLogger sets the logger for the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSeed makes the dataset reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithMetrics records generated row counts.
func WithMetrics(m *metrics.Recorder) Option {
	return func(o *options) {
		o.metrics = m
	}
}
