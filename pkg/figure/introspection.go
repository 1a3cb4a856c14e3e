package figure

import (
	"time"

	"github.com/aretw0/introspection"
)

// RendererState exposes internal state for observability.
type RendererState struct {
	Root       string    `json:"root"`
	Rendered   int       `json:"rendered"`
	Failed     int       `json:"failed"`
	LastRender time.Time `json:"last_render"`
}

// State implements introspection.Introspectable.
func (r *Renderer) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RendererState{
		Root:       r.root,
		Rendered:   r.rendered,
		Failed:     r.failed,
		LastRender: r.last,
	}
}

// ComponentType implements introspection.Component.
func (r *Renderer) ComponentType() string {
	return "figure-renderer"
}

var _ introspection.Introspectable = (*Renderer)(nil)
var _ introspection.Component = (*Renderer)(nil)
