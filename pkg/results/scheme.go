package results

import (
	"fmt"
	"io"

	"github.com/aretw0/psibench/pkg/core"
)

// SchemeTable is a wide table with one row per scheme and one column per receiver size.
type SchemeTable struct {
	// Labels are the receiver size column headers, e.g. "2^10".
	Labels  []string
	Schemes []string
	// Values[i][j] is the value of Schemes[i] at Labels[j].
	Values [][]float64
}

// Series returns the values of one scheme.
func (t *SchemeTable) Series(scheme string) ([]float64, bool) {
	for i, s := range t.Schemes {
		if s == scheme {
			return t.Values[i], true
		}
	}
	return nil, false
}

// LoadSchemeTable reads a scheme-by-size table. The first column holds the scheme name
// whatever its header; skip metadata lines precede the header.
func LoadSchemeTable(r io.Reader, skip int) (*SchemeTable, error) {
	t, err := readTable(r, skip)
	if err != nil {
		return nil, err
	}
	if len(t.header) < 2 {
		return nil, fmt.Errorf("%w: scheme table needs at least one size column", core.ErrMalformedInput)
	}

	out := &SchemeTable{Labels: append([]string(nil), t.header[1:]...)}
	for row := range t.rows {
		if t.blank(row) {
			continue
		}
		name, err := t.cell(row, 0)
		if err != nil {
			return nil, err
		}
		vals := make([]float64, len(out.Labels))
		for j := range out.Labels {
			if vals[j], err = t.float(row, j+1, ""); err != nil {
				return nil, err
			}
		}
		out.Schemes = append(out.Schemes, name)
		out.Values = append(out.Values, vals)
	}
	return out, nil
}
