package results

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/psibench/pkg/core"
)

// PerformancePoint is the end-to-end cost of one receiver size.
type PerformancePoint struct {
	Receiver        int
	CommunicationMB float64
	OfflineSec      float64
	OnlineSec       float64
}

// APSILabel is the run descriptor encoded as
// sender_receiver_intersection_labelbytes_itembytes_<threads>t.
type APSILabel struct {
	Sender       int
	Receiver     int
	Intersection int
	LabelBytes   int
	ItemBytes    int
	Threads      int
}

// ParseAPSILabel decodes an APSI run label.
func ParseAPSILabel(s string) (APSILabel, error) {
	parts := strings.Split(strings.TrimSpace(s), "_")
	if len(parts) != 6 {
		return APSILabel{}, fmt.Errorf("%w: label %q does not have 6 fields", core.ErrMalformedInput, s)
	}
	parts[5] = strings.TrimSuffix(parts[5], "t")

	var vals [6]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return APSILabel{}, fmt.Errorf("%w: label %q: field %d is not a number", core.ErrMalformedInput, s, i+1)
		}
		vals[i] = v
	}
	return APSILabel{
		Sender:       vals[0],
		Receiver:     vals[1],
		Intersection: vals[2],
		LabelBytes:   vals[3],
		ItemBytes:    vals[4],
		Threads:      vals[5],
	}, nil
}

// APSIFilter selects rows of the APSI performance table.
type APSIFilter struct {
	Sender  int `yaml:"sender"`
	Threads int `yaml:"threads"`
	// Preferred maps a receiver size to the parameter file whose row wins when the
	// table holds several runs for that size. Otherwise the first row wins.
	Preferred map[int]string `yaml:"preferred"`
}

// DefaultSender is the sender size of the published comparison.
const DefaultSender = 1048576

// DefaultAPSIFilter matches the published comparison: 2^20 sender items, one thread.
func DefaultAPSIFilter() APSIFilter {
	return APSIFilter{
		Sender:    DefaultSender,
		Threads:   1,
		Preferred: map[int]string{256: "1M-256.json"},
	}
}

// LoadAPSIPerformance reads the APSI benchmark table (label, com "X KB",
// offline time "X s", online time "X s", param) filtered by f and sorted by receiver size.
// Communication is converted to MB.
func LoadAPSIPerformance(r io.Reader, f APSIFilter) ([]PerformancePoint, error) {
	t, err := readTable(r, 0)
	if err != nil {
		return nil, err
	}

	labelCol, err := t.colPrefix("label")
	if err != nil {
		return nil, err
	}
	comCol, err := t.col("com")
	if err != nil {
		return nil, err
	}
	offCol, err := t.col("offline time")
	if err != nil {
		return nil, err
	}
	onCol, err := t.col("online time")
	if err != nil {
		return nil, err
	}
	paramCol, err := t.col("param")
	if err != nil {
		return nil, err
	}

	type entry struct {
		point PerformancePoint
		param string
	}
	byReceiver := make(map[int]entry)

	for row := range t.rows {
		if t.blank(row) {
			continue
		}
		raw, err := t.cell(row, labelCol)
		if err != nil {
			return nil, err
		}
		label, err := ParseAPSILabel(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", t.first+row, err)
		}
		if label.Sender != f.Sender || label.Threads != f.Threads {
			continue
		}

		comKB, err := t.float(row, comCol, "KB")
		if err != nil {
			return nil, err
		}
		off, err := t.float(row, offCol, "s")
		if err != nil {
			return nil, err
		}
		on, err := t.float(row, onCol, "s")
		if err != nil {
			return nil, err
		}
		param, err := t.cell(row, paramCol)
		if err != nil {
			return nil, err
		}

		e := entry{
			point: PerformancePoint{
				Receiver:        label.Receiver,
				CommunicationMB: comKB / 1024,
				OfflineSec:      off,
				OnlineSec:       on,
			},
			param: param,
		}

		if _, seen := byReceiver[label.Receiver]; !seen {
			byReceiver[label.Receiver] = e
			continue
		}
		if want, ok := f.Preferred[label.Receiver]; ok && param == want {
			byReceiver[label.Receiver] = e
		}
	}

	out := make([]PerformancePoint, 0, len(byReceiver))
	for _, e := range byReceiver {
		out = append(out, e.point)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Receiver < out[j].Receiver })
	return out, nil
}

// LoadSchemePerformance reads our scheme's table: one comment line, then a header with
// Sender, Receiver, com (MB), sum_offline and sum_online. Rows shorter than the header
// are ignored. The result is filtered by sender and sorted by receiver size.
func LoadSchemePerformance(r io.Reader, sender int) ([]PerformancePoint, error) {
	t, err := readTable(r, 1)
	if err != nil {
		return nil, err
	}

	cols := make([]int, 5)
	for i, name := range []string{"Sender", "Receiver", "com", "sum_offline", "sum_online"} {
		if cols[i], err = t.col(name); err != nil {
			return nil, err
		}
	}

	var out []PerformancePoint
	for row, rec := range t.rows {
		if len(rec) < len(t.header) {
			continue
		}
		s, err := t.integer(row, cols[0])
		if err != nil {
			return nil, err
		}
		if s != sender {
			continue
		}
		p := PerformancePoint{}
		if p.Receiver, err = t.integer(row, cols[1]); err != nil {
			return nil, err
		}
		if p.CommunicationMB, err = t.float(row, cols[2], ""); err != nil {
			return nil, err
		}
		if p.OfflineSec, err = t.float(row, cols[3], ""); err != nil {
			return nil, err
		}
		if p.OnlineSec, err = t.float(row, cols[4], ""); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Receiver < out[j].Receiver })
	return out, nil
}
