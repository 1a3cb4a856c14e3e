package figure

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/aretw0/psibench/pkg/core"
	"github.com/aretw0/psibench/pkg/results"
)

// buildStageBreakdown draws one stacked bar panel per sender size.
func buildStageBreakdown(data []results.SenderBreakdown, spec Spec) ([][]*plot.Plot, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no rows to plot", core.ErrMalformedInput)
	}
	cols := spec.Columns
	if cols <= 0 {
		cols = len(data)
	}

	panels := make([]*plot.Plot, 0, len(data))
	for i, sb := range data {
		p := newPlot(fmt.Sprintf("Sender Size: %d", sb.Sender), "Receiver Size", "")
		if i%cols == 0 {
			p.Y.Label.Text = "Latency Overhead (ms)"
		}
		p.Add(gridLines(false))

		receivers := make([]string, len(sb.Rows))
		for k, row := range sb.Rows {
			receivers[k] = strconv.Itoa(row.Receiver)
		}
		width := barWidth(spec, cols, len(receivers), 0.6)

		var below *plotter.BarChart
		for j, stage := range results.Stages {
			vals := make(plotter.Values, len(sb.Rows))
			for k, row := range sb.Rows {
				vals[k] = row.StagesMS[j]
			}
			bar, err := plotter.NewBarChart(vals, width)
			if err != nil {
				return nil, fmt.Errorf("sender %d, %s: %w", sb.Sender, stage.Label, err)
			}
			bar.Color = mustColor(stage.Color)
			bar.LineStyle.Color = edgeColor
			bar.LineStyle.Width = vg.Points(0.5)
			if below != nil {
				bar.StackOn(below)
			}
			p.Add(bar)
			if i == 0 || spec.LegendEach {
				p.Legend.Add(stage.Label, bar)
			}
			below = bar
		}

		p.NominalX(receivers...)
		if spec.RotateLabels {
			rotateTicks(p)
		}
		p.Legend.Top = true
		p.Legend.Left = true
		p.Y.Min = 0
		panels = append(panels, p)
	}
	return arrange(panels, cols), nil
}

// barWidth spreads n groups over one panel; fill is the share of a slot covered by bars.
func barWidth(spec Spec, cols, n int, fill float64) vg.Length {
	if cols <= 0 {
		cols = 1
	}
	if n <= 0 {
		n = 1
	}
	panel := vg.Length(spec.width()) * vg.Inch / vg.Length(cols)
	// axes and padding take roughly a fifth of the panel
	slot := panel * 0.8 / vg.Length(n)
	return slot * vg.Length(fill)
}
