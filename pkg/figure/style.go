package figure

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/aretw0/psibench/pkg/core"
)

const (
	titleSize = 14
	labelSize = 12
	tickSize  = 11
	lineWidth = 2
	glyphSize = 4
)

var (
	gridColor = color.Gray{Y: 190}
	edgeColor = color.Black
)

// ParseColor decodes #rgb or #rrggbb.
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: bad color %q", core.ErrInvalidArgument, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: bad color %q", core.ErrInvalidArgument, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func mustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹', '-': '⁻',
}

// PowerLabel renders "2^10" as "2¹⁰". Labels without a caret, or with an exponent that
// has no superscript form, are returned unchanged.
func PowerLabel(s string) string {
	base, exp, ok := strings.Cut(s, "^")
	if !ok || exp == "" {
		return s
	}
	var b strings.Builder
	b.WriteString(base)
	for _, r := range strings.Trim(exp, "{}") {
		sup, ok := superscripts[r]
		if !ok {
			return s
		}
		b.WriteRune(sup)
	}
	return b.String()
}

// Thousands formats n with comma separators.
func Thousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = titleSize
	p.Title.Padding = vg.Points(6)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Label.TextStyle.Font.Size = labelSize
	p.Y.Label.TextStyle.Font.Size = labelSize
	p.X.Tick.Label.Font.Size = tickSize
	p.Y.Tick.Label.Font.Size = tickSize
	p.Legend.TextStyle.Font.Size = 10
	return p
}

// gridLines is a dashed grid; vertical lines only when both is set.
func gridLines(both bool) *plotter.Grid {
	g := plotter.NewGrid()
	g.Horizontal.Color = gridColor
	g.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	g.Horizontal.Width = vg.Points(0.5)
	if both {
		g.Vertical.Color = gridColor
		g.Vertical.Dashes = g.Horizontal.Dashes
		g.Vertical.Width = g.Horizontal.Width
	} else {
		g.Vertical.Color = nil
	}
	return g
}

// nominalTicks labels the integer positions 0..len(labels)-1.
func nominalTicks(labels []string) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(labels))
	for i, l := range labels {
		ticks[i] = plot.Tick{Value: float64(i), Label: l}
	}
	return ticks
}

func rotateTicks(p *plot.Plot) {
	p.X.Tick.Label.Rotation = 0.785398
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

// blankPlot fills unused grid cells.
func blankPlot() *plot.Plot {
	p := plot.New()
	p.HideAxes()
	return p
}

// arrange lays panels out row-major on a grid cols wide, padding the last row.
func arrange(panels []*plot.Plot, cols int) [][]*plot.Plot {
	if cols <= 0 || cols > len(panels) {
		cols = len(panels)
	}
	rows := (len(panels) + cols - 1) / cols
	out := make([][]*plot.Plot, rows)
	for r := range out {
		out[r] = make([]*plot.Plot, cols)
		for c := range out[r] {
			if i := r*cols + c; i < len(panels) {
				out[r][c] = panels[i]
			} else {
				out[r][c] = blankPlot()
			}
		}
	}
	return out
}
