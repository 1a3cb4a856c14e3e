// Package results loads the CSV summaries written by the external PSI benchmark harness.
package results

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/psibench/pkg/core"
)

// table is a header-indexed CSV document.
type table struct {
	header []string
	index  map[string]int
	rows   [][]string
	// first is the 1-based file line of rows[0].
	first int
}

// readTable skips `skip` raw lines (free-form metadata) and parses the rest as CSV.
func readTable(r io.Reader, skip int) (*table, error) {
	br := bufio.NewReader(r)
	for i := 0; i < skip; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: file ends inside %d metadata lines", core.ErrMalformedInput, skip)
			}
			return nil, err
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing csv header", core.ErrMalformedInput)
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	t := &table{header: header, index: make(map[string]int, len(header)), first: skip + 2}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.header[i] = h
		t.index[h] = i
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedInput, err)
	}
	t.rows = rows
	return t, nil
}

// col returns the index of a required column.
func (t *table) col(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing column %q", core.ErrMalformedInput, name)
	}
	return i, nil
}

// colPrefix returns the first column whose name starts with prefix.
func (t *table) colPrefix(prefix string) (int, error) {
	for i, h := range t.header {
		if strings.HasPrefix(h, prefix) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: missing column %q", core.ErrMalformedInput, prefix+"...")
}

// cell returns a trimmed cell, failing on short rows.
func (t *table) cell(row, col int) (string, error) {
	rec := t.rows[row]
	if col >= len(rec) {
		return "", fmt.Errorf("%w: line %d: missing column %q", core.ErrMalformedInput, t.first+row, t.header[col])
	}
	return strings.TrimSpace(rec[col]), nil
}

// float parses a numeric cell after removing an optional unit suffix such as " KB".
func (t *table) float(row, col int, unit string) (float64, error) {
	s, err := t.cell(row, col)
	if err != nil {
		return 0, err
	}
	if unit != "" {
		s = strings.TrimSpace(strings.TrimSuffix(s, unit))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: column %q: %q is not a number", core.ErrMalformedInput, t.first+row, t.header[col], s)
	}
	return v, nil
}

// integer parses an integer cell. Values like "1048576.0" are accepted.
func (t *table) integer(row, col int) (int, error) {
	v, err := t.float(row, col, "")
	if err != nil {
		return 0, err
	}
	if v != float64(int(v)) {
		return 0, fmt.Errorf("%w: line %d: column %q: %v is not an integer", core.ErrMalformedInput, t.first+row, t.header[col], v)
	}
	return int(v), nil
}

// blank reports whether a row holds no data.
func (t *table) blank(row int) bool {
	for _, c := range t.rows[row] {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
