package figure

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/aretw0/psibench/pkg/core"
	"github.com/aretw0/psibench/pkg/results"
)

// Scheme names used by the comparison figures.
const (
	SchemeOurs = "Our Scheme"
	SchemeAPSI = "APSI"
)

// DefaultSchemeColors are used when a spec does not name a color for a scheme.
var DefaultSchemeColors = map[string]string{
	SchemeOurs: "#ff7f0e",
	SchemeAPSI: "#1f77b4",
}

var fallbackPalette = []string{"#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f"}

// schemeColor picks the figure color, then the default, then a palette entry by index.
func schemeColor(spec Spec, scheme string, i int) (color.RGBA, error) {
	if hex, ok := spec.Colors[scheme]; ok {
		return ParseColor(hex)
	}
	if hex, ok := DefaultSchemeColors[scheme]; ok {
		return ParseColor(hex)
	}
	return ParseColor(fallbackPalette[i%len(fallbackPalette)])
}

// buildSchemeBars draws one group of bars per receiver size, one bar per scheme.
func buildSchemeBars(t *results.SchemeTable, spec Spec) ([][]*plot.Plot, error) {
	if len(t.Schemes) == 0 {
		return nil, fmt.Errorf("%w: no schemes to plot", core.ErrMalformedInput)
	}

	xLabel := spec.XLabel
	if xLabel == "" {
		xLabel = "Receiver Size"
	}
	yLabel := spec.YLabel
	if yLabel == "" {
		yLabel = "Online Time (s)"
	}
	p := newPlot("", xLabel, yLabel)
	p.Add(gridLines(false))

	n := len(t.Schemes)
	group := barWidth(spec, 1, len(t.Labels), 0.7)
	width := group / vg.Length(n)

	if spec.LegendTitle != "" {
		p.Legend.Add(spec.LegendTitle)
	}
	for i, scheme := range t.Schemes {
		bar, err := plotter.NewBarChart(plotter.Values(t.Values[i]), width)
		if err != nil {
			return nil, fmt.Errorf("scheme %s: %w", scheme, err)
		}
		c, err := schemeColor(spec, scheme, i)
		if err != nil {
			return nil, err
		}
		bar.Color = c
		bar.LineStyle.Color = edgeColor
		bar.LineStyle.Width = vg.Points(0.5)
		bar.Offset = (vg.Length(i) - vg.Length(n-1)/2) * width
		p.Add(bar)
		p.Legend.Add(scheme, bar)
	}

	labels := make([]string, len(t.Labels))
	for i, l := range t.Labels {
		labels[i] = PowerLabel(l)
	}
	p.NominalX(labels...)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Y.Min = 0
	return [][]*plot.Plot{{p}}, nil
}
