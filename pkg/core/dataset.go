package core

// DatasetParams describes the shape of a synthetic PSI dataset.
type DatasetParams struct {
	SenderSize       int `json:"sender_size" yaml:"sender_size"`
	ReceiverSize     int `json:"receiver_size" yaml:"receiver_size"`
	IntersectionSize int `json:"intersection_size" yaml:"intersection_size"`
	LabelBytes       int `json:"label_bytes" yaml:"label_bytes"`
	ItemBytes        int `json:"item_bytes" yaml:"item_bytes"`
}

// SenderEntry is one row of the sender's labeled database.
type SenderEntry struct {
	Item  string
	Label string
}

// Dataset is a sender database plus the receiver's query set.
type Dataset struct {
	Params DatasetParams
	Sender []SenderEntry
	Query  []string
}

// SenderItems returns the set of sender items.
func (d *Dataset) SenderItems() map[string]struct{} {
	items := make(map[string]struct{}, len(d.Sender))
	for _, e := range d.Sender {
		items[e.Item] = struct{}{}
	}
	return items
}

// Intersection counts the query items that also appear in the sender database.
func (d *Dataset) Intersection() int {
	items := d.SenderItems()
	n := 0
	for _, q := range d.Query {
		if _, ok := items[q]; ok {
			n++
		}
	}
	return n
}
