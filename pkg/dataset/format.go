package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/psibench/pkg/core"
)

const (
	senderHeader = "db size %d label bytes %d item bytes %d"
	queryHeader  = "query size %d intersection size %d item bytes %d"

	// maxPrealloc caps slice capacity taken from header counts.
	maxPrealloc = 1 << 16
)

// FileName returns the conventional dataset file name for params.
func FileName(p core.DatasetParams) string {
	return fmt.Sprintf("dataset_%d_%d_%d_%d_%d.csv",
		p.SenderSize, p.ReceiverSize, p.IntersectionSize, p.LabelBytes, p.ItemBytes)
}

// Write emits the combined sender/query file.
func Write(w io.Writer, ds *core.Dataset) error {
	bw := bufio.NewWriter(w)
	p := ds.Params

	fmt.Fprintf(bw, senderHeader+"\n", len(ds.Sender), p.LabelBytes, p.ItemBytes)
	for _, e := range ds.Sender {
		bw.WriteString(e.Item)
		if p.LabelBytes != 0 {
			bw.WriteByte(',')
			bw.WriteString(e.Label)
		}
		bw.WriteByte('\n')
	}

	fmt.Fprintf(bw, queryHeader+"\n", len(ds.Query), p.IntersectionSize, p.ItemBytes)
	for _, q := range ds.Query {
		bw.WriteString(q)
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return nil
}

// Read parses a file produced by Write.
func Read(r io.Reader) (*core.Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	line := 0

	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		line++
		return strings.TrimRight(sc.Text(), "\r"), true
	}

	ds := &core.Dataset{}
	p := &ds.Params

	header, ok := next()
	if !ok {
		return nil, readErr(sc, line, "missing sender header")
	}
	if _, err := fmt.Sscanf(header, senderHeader, &p.SenderSize, &p.LabelBytes, &p.ItemBytes); err != nil {
		return nil, fmt.Errorf("%w: line %d: bad sender header %q", core.ErrMalformedInput, line, header)
	}
	if p.SenderSize < 0 || p.LabelBytes < 0 || p.ItemBytes < 0 {
		return nil, fmt.Errorf("%w: line %d: negative value in sender header %q", core.ErrMalformedInput, line, header)
	}

	ds.Sender = make([]core.SenderEntry, 0, min(p.SenderSize, maxPrealloc))
	for len(ds.Sender) < p.SenderSize {
		row, ok := next()
		if !ok {
			return nil, readErr(sc, line, fmt.Sprintf("expected %d sender rows, got %d", p.SenderSize, len(ds.Sender)))
		}
		item, label, hasLabel := strings.Cut(row, ",")
		if hasLabel != (p.LabelBytes != 0) {
			return nil, fmt.Errorf("%w: line %d: label presence does not match header", core.ErrMalformedInput, line)
		}
		ds.Sender = append(ds.Sender, core.SenderEntry{Item: item, Label: label})
	}

	header, ok = next()
	if !ok {
		return nil, readErr(sc, line, "missing query header")
	}
	var queryItemBytes int
	if _, err := fmt.Sscanf(header, queryHeader, &p.ReceiverSize, &p.IntersectionSize, &queryItemBytes); err != nil {
		return nil, fmt.Errorf("%w: line %d: bad query header %q", core.ErrMalformedInput, line, header)
	}
	if p.ReceiverSize < 0 || p.IntersectionSize < 0 {
		return nil, fmt.Errorf("%w: line %d: negative value in query header %q", core.ErrMalformedInput, line, header)
	}
	if queryItemBytes != p.ItemBytes {
		return nil, fmt.Errorf("%w: item bytes differ between headers (%d vs %d)", core.ErrMalformedInput, p.ItemBytes, queryItemBytes)
	}

	ds.Query = make([]string, 0, min(p.ReceiverSize, maxPrealloc))
	for len(ds.Query) < p.ReceiverSize {
		row, ok := next()
		if !ok {
			return nil, readErr(sc, line, fmt.Sprintf("expected %d query rows, got %d", p.ReceiverSize, len(ds.Query)))
		}
		ds.Query = append(ds.Query, row)
	}

	if extra, ok := next(); ok {
		return nil, fmt.Errorf("%w: line %d: unexpected trailing data %q", core.ErrMalformedInput, line, extra)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ds, nil
}

func readErr(sc *bufio.Scanner, line int, msg string) error {
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}
	return fmt.Errorf("%w: line %d: %s", core.ErrMalformedInput, line, msg)
}
