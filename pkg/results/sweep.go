package results

import "io"

// SweepPoint is one row of the intersection-size sweep.
type SweepPoint struct {
	Intersection    float64
	OfflineSec      float64
	OnlineSec       float64
	CommunicationMB float64
}

// LoadIntersectionSweep reads an Intersection_Size,Total_Offline(s),Total_Online(s),
// Communication(MB) summary in file order.
func LoadIntersectionSweep(r io.Reader) ([]SweepPoint, error) {
	t, err := readTable(r, 0)
	if err != nil {
		return nil, err
	}

	cols := make([]int, 4)
	for i, name := range []string{"Intersection_Size", "Total_Offline(s)", "Total_Online(s)", "Communication(MB)"} {
		if cols[i], err = t.col(name); err != nil {
			return nil, err
		}
	}

	var points []SweepPoint
	for row := range t.rows {
		if t.blank(row) {
			continue
		}
		var vals [4]float64
		for i, c := range cols {
			if vals[i], err = t.float(row, c, ""); err != nil {
				return nil, err
			}
		}
		points = append(points, SweepPoint{
			Intersection:    vals[0],
			OfflineSec:      vals[1],
			OnlineSec:       vals[2],
			CommunicationMB: vals[3],
		})
	}
	return points, nil
}
