package figure

import (
	"log/slog"

	"github.com/aretw0/psibench/internal/metrics"
)

type options struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// Option configures a Renderer.
type Option func(*options)

// WithLogger sets the logger for per-figure messages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics counts rendered figures and their durations.
func WithMetrics(m *metrics.Recorder) Option {
	return func(o *options) {
		o.metrics = m
	}
}
