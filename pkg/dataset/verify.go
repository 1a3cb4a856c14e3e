package dataset

import (
	"errors"
	"fmt"

	"github.com/aretw0/psibench/pkg/core"
)

// Report summarizes a dataset check.
type Report struct {
	Params       core.DatasetParams
	Intersection int
	Problems     []string
}

// OK reports whether the dataset passed every check.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// Err returns the problems as a single error wrapping core.ErrMalformedInput.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, 0, len(r.Problems))
	for _, p := range r.Problems {
		errs = append(errs, errors.New(p))
	}
	return fmt.Errorf("%w: %w", core.ErrMalformedInput, errors.Join(errs...))
}

// Check verifies the structural properties of a dataset: item and label widths,
// distinct items on both sides and the requested overlap.
func Check(ds *core.Dataset) Report {
	p := ds.Params
	rep := Report{Params: p, Intersection: ds.Intersection()}
	problem := func(format string, args ...any) {
		rep.Problems = append(rep.Problems, fmt.Sprintf(format, args...))
	}

	if len(ds.Sender) != p.SenderSize {
		problem("sender has %d rows, header says %d", len(ds.Sender), p.SenderSize)
	}
	if len(ds.Query) != p.ReceiverSize {
		problem("query has %d rows, header says %d", len(ds.Query), p.ReceiverSize)
	}

	seen := make(map[string]struct{}, len(ds.Sender))
	for i, e := range ds.Sender {
		if len(e.Item) != p.ItemBytes {
			problem("sender row %d: item %q is not %d bytes", i+1, e.Item, p.ItemBytes)
		}
		if len(e.Label) != p.LabelBytes {
			problem("sender row %d: label is not %d bytes", i+1, p.LabelBytes)
		}
		if _, dup := seen[e.Item]; dup {
			problem("sender row %d: duplicate item %q", i+1, e.Item)
		}
		seen[e.Item] = struct{}{}
	}

	seen = make(map[string]struct{}, len(ds.Query))
	for i, q := range ds.Query {
		if len(q) != p.ItemBytes {
			problem("query row %d: item %q is not %d bytes", i+1, q, p.ItemBytes)
		}
		if _, dup := seen[q]; dup {
			problem("query row %d: duplicate item %q", i+1, q)
		}
		seen[q] = struct{}{}
	}

	if want := min(p.IntersectionSize, p.ReceiverSize); rep.Intersection < want {
		problem("intersection %d is below requested %d", rep.Intersection, want)
	}
	return rep
}
