package figure

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultWatchPattern selects the files whose changes trigger a re-render.
const DefaultWatchPattern = "**/*.csv"

// DefaultDebounce is the quiet period before changed figures are re-rendered.
const DefaultDebounce = 200 * time.Millisecond

type watchOptions struct {
	pattern  string
	delay    time.Duration
	onReport func(Report)
}

// WatchOption configures a Watcher.
type WatchOption func(*watchOptions)

// WithPattern overrides the doublestar pattern matched against changed paths,
// relative to the results directory.
func WithPattern(pattern string) WatchOption {
	return func(o *watchOptions) {
		o.pattern = pattern
	}
}

// WithDebounce overrides the quiet period before re-rendering.
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		o.delay = d
	}
}

// WithReportHandler is called with the report of every re-rendered figure.
func WithReportHandler(fn func(Report)) WatchOption {
	return func(o *watchOptions) {
		o.onReport = fn
	}
}

// Watcher re-renders figures when their input CSVs change. It is a lifecycle worker and
// can run under a supervisor.
type Watcher struct {
	*worker.BaseWorker
	renderer *Renderer
	specs    map[string]Spec
	opts     watchOptions
	logger   *slog.Logger

	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
	renders   sync.WaitGroup
	renderMu  sync.Mutex
}

// NewWatcher creates a watcher over the renderer's results directory.
func NewWatcher(r *Renderer, specs []Spec, opts ...WatchOption) *Watcher {
	o := watchOptions{pattern: DefaultWatchPattern, delay: DefaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}
	byName := make(map[string]Spec, len(specs))
	for _, s := range specs {
		byName[s.Name] = s
	}
	return &Watcher{
		BaseWorker: worker.NewBaseWorker("figure-watcher"),
		renderer:   r,
		specs:      byName,
		opts:       o,
		logger:     r.logger,
	}
}

func (w *Watcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}
	if !doublestar.ValidatePattern(w.opts.pattern) {
		return fmt.Errorf("invalid watch pattern %q", w.opts.pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.addTree(watcher, w.renderer.Root()); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(w.opts.delay)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *Watcher) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
			"root":              w.renderer.Root(),
			"pattern":           w.opts.pattern,
		}
	})
}

// addTree watches dir and every directory below it; fsnotify is not recursive.
func (w *Watcher) addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// affected returns the names of the figures reading the changed file, sorted.
func (w *Watcher) affected(path string) []string {
	rel, err := filepath.Rel(w.renderer.Root(), path)
	if err != nil {
		return nil
	}
	rel = filepath.ToSlash(rel)
	if ok, _ := doublestar.Match(w.opts.pattern, rel); !ok {
		return nil
	}

	var names []string
	for name, s := range w.specs {
		if s.DependsOn(rel) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	w.logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if event.Has(fsnotify.Create) {
		if isDir, err := statDir(event.Name); err == nil && isDir {
			if err := w.addTree(w.watcher, event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	names := w.affected(event.Name)
	if len(names) == 0 {
		return
	}
	w.debouncer.add(names, func(batch []string) {
		w.rerender(ctx, batch)
	})
}

// rerender draws the batch off the event loop; renders never overlap.
func (w *Watcher) rerender(ctx context.Context, names []string) {
	sort.Strings(names)
	w.renders.Add(1)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer w.renders.Done()
		w.renderMu.Lock()
		defer w.renderMu.Unlock()

		for _, name := range names {
			if ctx.Err() != nil {
				return nil
			}
			rep, err := w.renderer.Render(ctx, w.specs[name])
			if err != nil {
				w.logger.Warn("re-render failed", "name", name, "error", err)
			}
			if w.opts.onReport != nil {
				w.opts.onReport(rep)
			}
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		w.logger.Error("re-render panic", "error", err)
	}))
}

func (w *Watcher) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if w.logger.Enabled(ctx, slog.LevelDebug) {
				w.logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
			} else {
				w.logger.Error("watcher panic", "error", panicErr)
			}
			err = panicErr
		}
	}()
	defer w.watcher.Close()

	w.logger.Info("watching results", "root", w.renderer.Root(), "figures", len(w.specs))
	err = w.loop(ctx)

	w.debouncer.stopAndWait(5 * time.Second)
	w.renders.Wait()
	return err
}

func (w *Watcher) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("fsnotify error", "error", wErr)
		}
	}
}

func statDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
