package dataset

import (
	"github.com/aretw0/introspection"
)

// GeneratorState exposes internal state for observability.
type GeneratorState struct {
	SenderSize       int   `json:"sender_size"`
	ReceiverSize     int   `json:"receiver_size"`
	IntersectionSize int   `json:"intersection_size"`
	LabelBytes       int   `json:"label_bytes"`
	ItemBytes        int   `json:"item_bytes"`
	LastSenderRows   int   `json:"last_sender_rows"`
	LastQueryRows    int   `json:"last_query_rows"`
	LastIntersection int   `json:"last_intersection"`
	LastElapsedMS    int64 `json:"last_elapsed_ms"`
}

// State implements introspection.Introspectable.
func (g *Generator) State() any {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return GeneratorState{
		SenderSize:       g.cfg.SenderSize,
		ReceiverSize:     g.cfg.ReceiverSize,
		IntersectionSize: g.cfg.IntersectionSize,
		LabelBytes:       g.cfg.LabelBytes,
		ItemBytes:        g.cfg.ItemBytes,
		LastSenderRows:   g.last.SenderRows,
		LastQueryRows:    g.last.QueryRows,
		LastIntersection: g.last.Intersection,
		LastElapsedMS:    g.last.Elapsed.Milliseconds(),
	}
}

// ComponentType implements introspection.Component.
func (g *Generator) ComponentType() string {
	return "dataset-generator"
}

var _ introspection.Introspectable = (*Generator)(nil)
var _ introspection.Component = (*Generator)(nil)
