package figure

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/aretw0/psibench/pkg/core"
	"github.com/aretw0/psibench/pkg/results"
)

type sweepPanel struct {
	title  string
	yLabel string
	color  string
	glyph  draw.GlyphDrawer
	value  func(results.SweepPoint) float64
}

var sweepPanels = []sweepPanel{
	{"Offline Time vs Intersection Size", "Offline Time (s)", "#2E86AB", draw.CircleGlyph{}, func(p results.SweepPoint) float64 { return p.OfflineSec }},
	{"Online Time vs Intersection Size", "Online Time (s)", "#A23B72", draw.BoxGlyph{}, func(p results.SweepPoint) float64 { return p.OnlineSec }},
	{"Communication vs Intersection Size", "Communication (MB)", "#F18F01", draw.TriangleGlyph{}, func(p results.SweepPoint) float64 { return p.CommunicationMB }},
}

// buildIntersectionSweep draws offline time, online time and communication side by side.
func buildIntersectionSweep(points []results.SweepPoint, spec Spec) ([][]*plot.Plot, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no rows to plot", core.ErrMalformedInput)
	}
	labels := spec.XTickLabels
	if len(labels) == 0 {
		labels = make([]string, len(points))
		for i, pt := range points {
			labels[i] = strconv.FormatFloat(pt.Intersection, 'f', -1, 64)
		}
	}
	if len(labels) != len(points) {
		return nil, fmt.Errorf("%w: %d tick labels for %d rows", core.ErrInvalidArgument, len(labels), len(points))
	}

	row := make([]*plot.Plot, 0, len(sweepPanels))
	for i, sp := range sweepPanels {
		p := newPlot(sp.title, "Intersection Size", sp.yLabel)
		p.Add(gridLines(true))

		xys := make(plotter.XYs, len(points))
		for k, pt := range points {
			xys[k] = plotter.XY{X: float64(k), Y: sp.value(pt)}
		}
		line, dots, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sp.yLabel, err)
		}
		c := mustColor(sp.color)
		line.Color = c
		line.Width = vg.Points(2.5)
		dots.Color = c
		dots.Shape = sp.glyph
		dots.Radius = vg.Points(glyphSize)
		p.Add(line, dots)

		p.X.Tick.Marker = nominalTicks(labels)
		p.X.Min = -0.5
		p.X.Max = float64(len(points)) - 0.5
		rotateTicks(p)

		if i == 0 && spec.OfflineYMax > 0 {
			p.Y.Min = 0
			p.Y.Max = spec.OfflineYMax
			p.Y.Tick.Marker = stepTicks(0, spec.OfflineYMax, spec.OfflineYMax/6)
		}
		row = append(row, p)
	}
	return [][]*plot.Plot{row}, nil
}

// stepTicks places labelled ticks from lo to hi inclusive.
func stepTicks(lo, hi, step float64) plot.ConstantTicks {
	var ticks plot.ConstantTicks
	for v := lo; v <= hi+step/2; v += step {
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return ticks
}
