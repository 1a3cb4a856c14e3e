// Package metrics records generation and rendering counters in a Prometheus registry
// so batch runs can dump them to a node-exporter textfile.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the psibench metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	keywords    prometheus.Counter
	retries     prometheus.Counter
	fallbacks   prometheus.Counter
	datasetRows *prometheus.CounterVec
	figures     *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// New creates a Recorder backed by a fresh registry.
func New() (*Recorder, error) {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		keywords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "psibench_keywords_generated_total",
			Help: "Total number of keyword lines generated.",
		}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "psibench_keyword_retries_total",
			Help: "Total number of rejected keyword candidates due to collisions.",
		}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "psibench_keyword_fallbacks_total",
			Help: "Total number of keywords produced by the index-derived fallback.",
		}),
		datasetRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "psibench_dataset_rows_total",
				Help: "Total number of PSI dataset rows generated.",
			},
			[]string{"set"},
		),
		figures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "psibench_figures_rendered_total",
				Help: "Total number of figures rendered.",
			},
			[]string{"kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "psibench_operation_duration_seconds",
				Help:    "Duration of generation and rendering operations.",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
			[]string{"operation"},
		),
	}

	for _, c := range []prometheus.Collector{r.keywords, r.retries, r.fallbacks, r.datasetRows, r.figures, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveKeywords records the outcome of a keyword generation chunk.
func (r *Recorder) ObserveKeywords(lines, retries, fallbacks int) {
	if r == nil {
		return
	}
	r.keywords.Add(float64(lines))
	r.retries.Add(float64(retries))
	r.fallbacks.Add(float64(fallbacks))
}

// ObserveDataset records generated sender and query rows.
func (r *Recorder) ObserveDataset(senderRows, queryRows int) {
	if r == nil {
		return
	}
	r.datasetRows.WithLabelValues("sender").Add(float64(senderRows))
	r.datasetRows.WithLabelValues("query").Add(float64(queryRows))
}

// ObserveFigure records a rendered figure of the given kind.
func (r *Recorder) ObserveFigure(kind string) {
	if r == nil {
		return
	}
	r.figures.WithLabelValues(kind).Inc()
}

// ObserveDuration records how long an operation took.
func (r *Recorder) ObserveDuration(operation string, d time.Duration) {
	if r == nil {
		return
	}
	r.duration.WithLabelValues(operation).Observe(d.Seconds())
}

// WriteTextfile dumps the registry in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
