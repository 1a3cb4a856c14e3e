package figure

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/aretw0/psibench/pkg/core"
	"github.com/aretw0/psibench/pkg/results"
)

type comparisonMetric struct {
	Name   string
	Title  string
	YLabel string
	value  func(results.PerformancePoint) float64
	// decades pins labelled y ticks at these powers of ten.
	decades []int
}

var comparisonMetrics = []comparisonMetric{
	{Name: "communication", Title: "Communication Cost Comparison", YLabel: "Communication (MB)",
		value: func(p results.PerformancePoint) float64 { return p.CommunicationMB }},
	{Name: "online_time", Title: "Online Computation Time Comparison", YLabel: "Online Time (s)",
		value: func(p results.PerformancePoint) float64 { return p.OnlineSec }},
	{Name: "offline_time", Title: "Offline Computation Time Comparison", YLabel: "Offline Time (s)",
		value: func(p results.PerformancePoint) float64 { return p.OfflineSec }, decades: []int{2, 3, 4}},
}

type comparisonSeries struct {
	label  string
	color  string
	glyph  draw.GlyphDrawer
	points []results.PerformancePoint
}

// buildComparison draws one log-log line chart per metric, keyed by metric name.
func buildComparison(apsi, ours []results.PerformancePoint, spec Spec) (map[string]*plot.Plot, error) {
	f := spec.apsiFilter()
	series := []comparisonSeries{
		{fmt.Sprintf("%s (thread=%d)", SchemeAPSI, f.Threads), DefaultSchemeColors[SchemeAPSI], draw.CircleGlyph{}, apsi},
		{SchemeOurs, DefaultSchemeColors[SchemeOurs], draw.BoxGlyph{}, ours},
	}
	for _, s := range series {
		if len(s.points) == 0 {
			return nil, fmt.Errorf("%w: no %s rows for sender %d", core.ErrMalformedInput, s.label, f.Sender)
		}
	}

	out := make(map[string]*plot.Plot, len(comparisonMetrics))
	for _, m := range comparisonMetrics {
		p := newPlot(fmt.Sprintf("%s (Sender Size = %s)", m.Title, Thousands(f.Sender)), "Receiver Size", m.YLabel)
		p.Add(gridLines(true))
		p.X.Scale = plot.LogScale{}
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

		for _, s := range series {
			xys := make(plotter.XYs, len(s.points))
			for k, pt := range s.points {
				v := m.value(pt)
				if pt.Receiver <= 0 || v <= 0 {
					return nil, fmt.Errorf("%w: %s at receiver %d has non-positive %s, cannot use a log axis",
						core.ErrMalformedInput, s.label, pt.Receiver, m.Name)
				}
				xys[k] = plotter.XY{X: float64(pt.Receiver), Y: v}
			}
			line, dots, err := plotter.NewLinePoints(xys)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", s.label, m.Name, err)
			}
			c := mustColor(s.color)
			line.Color = c
			line.Width = vg.Points(lineWidth)
			dots.Color = c
			dots.Shape = s.glyph
			dots.Radius = vg.Points(glyphSize)
			p.Add(line, dots)
			p.Legend.Add(s.label, line, dots)
		}

		// x ticks at our receiver sizes, as the paper prints them
		xt := make(plot.ConstantTicks, len(ours))
		for i, pt := range ours {
			xt[i] = plot.Tick{Value: float64(pt.Receiver), Label: strconv.Itoa(pt.Receiver)}
		}
		p.X.Tick.Marker = xt
		if len(m.decades) > 0 {
			p.Y.Tick.Marker = decadeTicks(m.decades)
		}
		p.Legend.Top = true
		p.Legend.Left = true
		out[m.Name] = p
	}
	return out, nil
}

func decadeTicks(exps []int) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(exps))
	for i, e := range exps {
		ticks[i] = plot.Tick{Value: math.Pow(10, float64(e)), Label: PowerLabel("10^" + strconv.Itoa(e))}
	}
	return ticks
}
