package results

import (
	"io"
	"sort"
)

// Stage is one phase of the online protocol as reported by the harness.
type Stage struct {
	Column string
	Label  string
	Color  string
}

// Stages lists the stacked phases in drawing order.
var Stages = []Stage{
	{Column: "OPRF_s", Label: "OPRF", Color: "#4e79a7"},
	{Column: "Gen_Idx_s", Label: "Gen Index", Color: "#f28e2b"},
	{Column: "Query_Idx_s", Label: "Query Index", Color: "#e15759"},
	{Column: "Get_Key_s", Label: "Get Key", Color: "#76b7b2"},
	{Column: "Dec_s", Label: "Decryption", Color: "#59a14f"},
}

// StageTiming holds the per-stage latency of one receiver size, in milliseconds.
type StageTiming struct {
	Receiver int
	StagesMS []float64
}

// TotalMS sums all stages.
func (s StageTiming) TotalMS() float64 {
	var sum float64
	for _, v := range s.StagesMS {
		sum += v
	}
	return sum
}

// SenderBreakdown groups the timings measured for one sender size.
type SenderBreakdown struct {
	Sender int
	Rows   []StageTiming
}

// LoadStageBreakdown reads a Sender,Receiver,OPRF_s,... summary. Senders come back in
// ascending order, each with rows sorted by receiver size.
func LoadStageBreakdown(r io.Reader) ([]SenderBreakdown, error) {
	t, err := readTable(r, 0)
	if err != nil {
		return nil, err
	}

	senderCol, err := t.col("Sender")
	if err != nil {
		return nil, err
	}
	receiverCol, err := t.col("Receiver")
	if err != nil {
		return nil, err
	}
	stageCols := make([]int, len(Stages))
	for i, s := range Stages {
		if stageCols[i], err = t.col(s.Column); err != nil {
			return nil, err
		}
	}

	bySender := make(map[int]*SenderBreakdown)
	for row := range t.rows {
		if t.blank(row) {
			continue
		}
		sender, err := t.integer(row, senderCol)
		if err != nil {
			return nil, err
		}
		receiver, err := t.integer(row, receiverCol)
		if err != nil {
			return nil, err
		}
		timing := StageTiming{Receiver: receiver, StagesMS: make([]float64, len(Stages))}
		for i, c := range stageCols {
			sec, err := t.float(row, c, "")
			if err != nil {
				return nil, err
			}
			timing.StagesMS[i] = sec * 1000
		}

		b, ok := bySender[sender]
		if !ok {
			b = &SenderBreakdown{Sender: sender}
			bySender[sender] = b
		}
		b.Rows = append(b.Rows, timing)
	}

	out := make([]SenderBreakdown, 0, len(bySender))
	for _, b := range bySender {
		sort.SliceStable(b.Rows, func(i, j int) bool { return b.Rows[i].Receiver < b.Rows[j].Receiver })
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sender < out[j].Sender })
	return out, nil
}
