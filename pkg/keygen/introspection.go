package keygen

import (
	"github.com/aretw0/introspection"
)

// GeneratorState exposes internal state for observability.
type GeneratorState struct {
	Lines         int `json:"lines"`
	ChunkSize     int `json:"chunk_size"`
	MaxKeywordLen int `json:"max_keyword_len"`
	AlphabetSize  int `json:"alphabet_size"`
	Unique        int `json:"unique"`
	Written       int `json:"written"`
	Retries       int `json:"retries"`
	Fallbacks     int `json:"fallbacks"`
}

// State implements introspection.Introspectable.
func (g *Generator) State() any {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return GeneratorState{
		Lines:         g.cfg.Lines,
		ChunkSize:     g.cfg.ChunkSize,
		MaxKeywordLen: g.cfg.MaxKeywordLen,
		AlphabetSize:  len(g.alphabet),
		Unique:        len(g.used),
		Written:       g.stats.Lines,
		Retries:       g.stats.Retries,
		Fallbacks:     g.stats.Fallbacks,
	}
}

// ComponentType implements introspection.Component.
func (g *Generator) ComponentType() string {
	return "keyword-generator"
}

var _ introspection.Introspectable = (*Generator)(nil)
var _ introspection.Component = (*Generator)(nil)
