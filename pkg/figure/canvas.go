package figure

import (
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/aretw0/psibench/pkg/adapters/fs"
	"github.com/aretw0/psibench/pkg/core"
)

func formatOf(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "jpg", "jpeg", "svg", "pdf":
		return ext, nil
	}
	return "", fmt.Errorf("%w: unsupported output format %q", core.ErrInvalidArgument, filepath.Ext(path))
}

func newCanvas(format string, w, h vg.Length, dpi int) (vg.CanvasWriterTo, error) {
	switch format {
	case "png":
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))}, nil
	case "svg":
		return vgsvg.New(w, h), nil
	case "pdf":
		return vgpdf.New(w, h), nil
	}
	return nil, fmt.Errorf("%w: unsupported output format %q", core.ErrInvalidArgument, format)
}

// save draws the panel grid onto one canvas and writes it atomically.
func save(path string, panels [][]*plot.Plot, spec Spec) error {
	if len(panels) == 0 || len(panels[0]) == 0 {
		return fmt.Errorf("%w: nothing to draw", core.ErrMalformedInput)
	}
	format, err := formatOf(path)
	if err != nil {
		return err
	}

	w := vg.Length(spec.width()) * vg.Inch
	h := vg.Length(spec.height()) * vg.Inch
	c, err := newCanvas(format, w, h, spec.dpi())
	if err != nil {
		return err
	}

	pad := vg.Points(12)
	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      len(panels[0]),
		PadX:      pad * 2,
		PadY:      pad * 2,
		PadTop:    pad,
		PadBottom: pad,
		PadLeft:   pad,
		PadRight:  pad,
	}
	cells := plot.Align(panels, tiles, draw.New(c))
	for i := range panels {
		for j := range panels[i] {
			panels[i][j].Draw(cells[i][j])
		}
	}

	f, err := fs.CreateAtomic(path, 0644)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Abort()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Commit()
}
