package figure

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/psibench/pkg/core"
	"github.com/aretw0/psibench/pkg/results"
)

// Kind selects how a figure is built from its inputs.
type Kind string

const (
	// KindStageBreakdown stacks the online stages per receiver size, one panel per sender size.
	KindStageBreakdown Kind = "stage-breakdown"
	// KindIntersectionSweep plots offline time, online time and communication against the
	// intersection size.
	KindIntersectionSweep Kind = "intersection-sweep"
	// KindSchemeBars groups one bar per scheme over receiver sizes.
	KindSchemeBars Kind = "scheme-bars"
	// KindComparison draws APSI against our scheme on log-log axes, one file per metric.
	KindComparison Kind = "comparison"
)

// MetricPlaceholder is replaced by the metric name in comparison outputs.
const MetricPlaceholder = "{metric}"

const (
	defaultWidth  = 10.0
	defaultHeight = 6.0
	defaultDPI    = 300
)

// Spec describes one figure.
type Spec struct {
	Name   string   `yaml:"name"`
	Kind   Kind     `yaml:"kind"`
	Inputs []string `yaml:"inputs"`
	Output string   `yaml:"output"`

	// Width and Height are in inches.
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	DPI    int     `yaml:"dpi,omitempty"`

	// Columns is the panel grid width of stage-breakdown figures.
	Columns int `yaml:"columns,omitempty"`
	// LegendEach puts a legend on every panel instead of the first one only.
	LegendEach bool `yaml:"legend_each,omitempty"`
	// RotateLabels tilts the x tick labels by 45 degrees.
	RotateLabels bool `yaml:"rotate_labels,omitempty"`

	// SkipLines is the number of metadata lines above the CSV header (scheme-bars).
	SkipLines int `yaml:"skip_lines,omitempty"`
	// XLabel and YLabel override the axis captions (scheme-bars).
	XLabel string `yaml:"x_label,omitempty"`
	YLabel string `yaml:"y_label,omitempty"`
	// LegendTitle is shown above the scheme legend entries.
	LegendTitle string `yaml:"legend_title,omitempty"`
	// Colors maps a scheme name to a hex color.
	Colors map[string]string `yaml:"colors,omitempty"`

	// XTickLabels replaces the intersection sizes on the sweep x axis.
	XTickLabels []string `yaml:"x_tick_labels,omitempty"`
	// OfflineYMax pins the sweep's offline panel to [0, OfflineYMax].
	OfflineYMax float64 `yaml:"offline_y_max,omitempty"`

	// Sender and Threads select the rows of a comparison; zero keeps the published
	// 2^20 sender, single thread setting. Sender also filters our scheme.
	Sender  int `yaml:"sender,omitempty"`
	Threads int `yaml:"threads,omitempty"`
	// Preferred maps a receiver size to the APSI parameter file that wins duplicates.
	Preferred map[int]string `yaml:"preferred,omitempty"`
}

// Validate checks the spec for the fields its kind needs.
func (s Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: figure without a name", core.ErrInvalidArgument)
	}
	if s.Output == "" {
		return fmt.Errorf("%w: figure %s has no output", core.ErrInvalidArgument, s.Name)
	}
	if _, err := formatOf(s.Output); err != nil {
		return fmt.Errorf("figure %s: %w", s.Name, err)
	}

	want := 1
	switch s.Kind {
	case KindStageBreakdown, KindIntersectionSweep, KindSchemeBars:
	case KindComparison:
		want = 2
		if !strings.Contains(s.Output, MetricPlaceholder) {
			return fmt.Errorf("%w: figure %s: comparison output must contain %s", core.ErrInvalidArgument, s.Name, MetricPlaceholder)
		}
	default:
		return fmt.Errorf("%w: figure %s: unknown kind %q", core.ErrInvalidArgument, s.Name, s.Kind)
	}
	if len(s.Inputs) != want {
		return fmt.Errorf("%w: figure %s: %s needs %d input(s), got %d", core.ErrInvalidArgument, s.Name, s.Kind, want, len(s.Inputs))
	}
	if s.Width < 0 || s.Height < 0 || s.DPI < 0 || s.Columns < 0 || s.SkipLines < 0 || s.Sender < 0 || s.Threads < 0 {
		return fmt.Errorf("%w: figure %s: negative size option", core.ErrInvalidArgument, s.Name)
	}
	return nil
}

// Outputs lists the files the spec writes, relative to the results directory.
func (s Spec) Outputs() []string {
	if s.Kind != KindComparison {
		return []string{s.Output}
	}
	out := make([]string, 0, len(comparisonMetrics))
	for _, m := range comparisonMetrics {
		out = append(out, strings.ReplaceAll(s.Output, MetricPlaceholder, m.Name))
	}
	return out
}

// DependsOn reports whether rel (slash separated, relative to the results directory)
// is one of the spec inputs.
func (s Spec) DependsOn(rel string) bool {
	for _, in := range s.Inputs {
		if in == rel {
			return true
		}
	}
	return false
}

func (s Spec) width() float64 {
	if s.Width > 0 {
		return s.Width
	}
	return defaultWidth
}

func (s Spec) height() float64 {
	if s.Height > 0 {
		return s.Height
	}
	return defaultHeight
}

func (s Spec) dpi() int {
	if s.DPI > 0 {
		return s.DPI
	}
	return defaultDPI
}

func (s Spec) apsiFilter() results.APSIFilter {
	f := results.DefaultAPSIFilter()
	if s.Sender > 0 {
		f.Sender = s.Sender
	}
	if s.Threads > 0 {
		f.Threads = s.Threads
	}
	if s.Preferred != nil {
		f.Preferred = s.Preferred
	}
	return f
}

// Manifest is the list of figures of a paper.
type Manifest struct {
	Figures []Spec `yaml:"figures"`
}

// LoadManifest reads and validates a YAML manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: invalid manifest: %v", core.ErrInvalidArgument, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every spec and rejects duplicate names.
func (m *Manifest) Validate() error {
	names := make(map[string]struct{}, len(m.Figures))
	for _, s := range m.Figures {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, dup := names[s.Name]; dup {
			return fmt.Errorf("%w: duplicate figure name %s", core.ErrInvalidArgument, s.Name)
		}
		names[s.Name] = struct{}{}
	}
	return nil
}

// Marshal encodes the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// Select returns the figures whose name matches any of the doublestar patterns.
// No patterns selects everything.
func (m *Manifest) Select(patterns ...string) ([]Spec, error) {
	if len(patterns) == 0 {
		return m.Figures, nil
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: bad pattern %q", core.ErrInvalidArgument, p)
		}
	}

	var out []Spec
	for _, s := range m.Figures {
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, s.Name); ok {
				out = append(out, s)
				break
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no figure matches %s", core.ErrInvalidArgument, strings.Join(patterns, ", "))
	}
	return out, nil
}
