package figure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gonum.org/v1/plot"

	"github.com/aretw0/psibench/internal/metrics"
	"github.com/aretw0/psibench/pkg/results"
)

// Report is the outcome of rendering one figure.
type Report struct {
	Name    string
	Kind    Kind
	Outputs []string
	Elapsed time.Duration
	Err     error
}

// Renderer turns specs into image files under a results directory.
type Renderer struct {
	root    string
	logger  *slog.Logger
	metrics *metrics.Recorder

	mu       sync.RWMutex
	rendered int
	failed   int
	last     time.Time
}

// NewRenderer creates a renderer resolving inputs and outputs against root.
func NewRenderer(root string, opts ...Option) *Renderer {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Renderer{
		root:    root,
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// Root returns the results directory.
func (r *Renderer) Root() string {
	return r.root
}

func (r *Renderer) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(r.root, filepath.FromSlash(rel))
}

// Render draws one figure. The returned report lists the written files.
func (r *Renderer) Render(ctx context.Context, spec Spec) (Report, error) {
	start := time.Now()
	rep := Report{Name: spec.Name, Kind: spec.Kind}

	err := r.render(ctx, spec, &rep)
	rep.Elapsed = time.Since(start)
	rep.Err = err

	r.mu.Lock()
	if err != nil {
		r.failed++
	} else {
		r.rendered++
		r.last = time.Now()
	}
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("figure failed", "name", spec.Name, "error", err)
		return rep, fmt.Errorf("figure %s: %w", spec.Name, err)
	}

	r.metrics.ObserveFigure(string(spec.Kind))
	r.metrics.ObserveDuration("render", rep.Elapsed)
	r.logger.Info("figure rendered", "name", spec.Name, "outputs", len(rep.Outputs), "elapsed", rep.Elapsed)
	return rep, nil
}

// RenderAll draws every spec, continuing past failures. The error joins all failures.
func (r *Renderer) RenderAll(ctx context.Context, specs []Spec) ([]Report, error) {
	reports := make([]Report, 0, len(specs))
	var errs []error
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		rep, err := r.Render(ctx, spec)
		reports = append(reports, rep)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return reports, errors.Join(errs...)
}

func (r *Renderer) render(ctx context.Context, spec Spec, rep *Report) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		panels [][]*plot.Plot
		err    error
	)
	switch spec.Kind {
	case KindStageBreakdown:
		data, lerr := load(r.path(spec.Inputs[0]), results.LoadStageBreakdown)
		if lerr != nil {
			return lerr
		}
		panels, err = buildStageBreakdown(data, spec)

	case KindIntersectionSweep:
		data, lerr := load(r.path(spec.Inputs[0]), results.LoadIntersectionSweep)
		if lerr != nil {
			return lerr
		}
		panels, err = buildIntersectionSweep(data, spec)

	case KindSchemeBars:
		data, lerr := load(r.path(spec.Inputs[0]), func(rd io.Reader) (*results.SchemeTable, error) {
			return results.LoadSchemeTable(rd, spec.SkipLines)
		})
		if lerr != nil {
			return lerr
		}
		panels, err = buildSchemeBars(data, spec)

	case KindComparison:
		return r.renderComparison(spec, rep)
	}
	if err != nil {
		return err
	}

	out := r.path(spec.Output)
	if err := save(out, panels, spec); err != nil {
		return err
	}
	rep.Outputs = append(rep.Outputs, out)
	return nil
}

func (r *Renderer) renderComparison(spec Spec, rep *Report) error {
	f := spec.apsiFilter()
	apsi, err := load(r.path(spec.Inputs[0]), func(rd io.Reader) ([]results.PerformancePoint, error) {
		return results.LoadAPSIPerformance(rd, f)
	})
	if err != nil {
		return err
	}
	ours, err := load(r.path(spec.Inputs[1]), func(rd io.Reader) ([]results.PerformancePoint, error) {
		return results.LoadSchemePerformance(rd, f.Sender)
	})
	if err != nil {
		return err
	}
	r.logger.Debug("comparison points", "name", spec.Name, "apsi", len(apsi), "ours", len(ours))

	plots, err := buildComparison(apsi, ours, spec)
	if err != nil {
		return err
	}
	outputs := spec.Outputs()
	for i, m := range comparisonMetrics {
		out := r.path(outputs[i])
		if err := save(out, [][]*plot.Plot{{plots[m.Name]}}, spec); err != nil {
			return err
		}
		rep.Outputs = append(rep.Outputs, out)
	}
	return nil
}

func load[T any](path string, fn func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	v, err := fn(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
