package keygen

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/psibench/internal/metrics"
	"github.com/aretw0/psibench/internal/validator"
	"github.com/aretw0/psibench/pkg/adapters/fs"
	"github.com/aretw0/psibench/pkg/core"
)

const (
	DefaultLines         = 1 << 24
	DefaultChunkSize     = 65536
	DefaultMaxKeywordLen = 50
	DefaultCharset       = "abcdefghijklmnopqrstuvwxyz0123456789"
	DefaultMaxAttempts   = 1000

	// MinKeywordLen is the shortest random keyword unless MaxKeywordLen is smaller.
	MinKeywordLen = 3

	// progressWindow is the number of lines between two progress reports.
	progressWindow = 1 << 20

	fallbackPrefix = "key_"

	maxChunkBuffer = 8 << 20
)

// Config controls the shape of a keyword dataset.
type Config struct {
	Lines         int    `name:"lines" validate:"gt=0"`
	ChunkSize     int    `name:"chunk-size" validate:"gt=0"`
	MaxKeywordLen int    `name:"max-keyword-len" validate:"gte=1,lte=1024"`
	Charset       string `name:"charset" validate:"required,nospace"`
	MaxAttempts   int    `name:"max-attempts" validate:"gt=0"`
}

// DefaultConfig returns the configuration used for the 2^24-line benchmark dataset.
func DefaultConfig() Config {
	return Config{
		Lines:         DefaultLines,
		ChunkSize:     DefaultChunkSize,
		MaxKeywordLen: DefaultMaxKeywordLen,
		Charset:       DefaultCharset,
		MaxAttempts:   DefaultMaxAttempts,
	}
}

// Generator produces unique keyword records. It is not safe for concurrent Generate calls.
type Generator struct {
	cfg      Config
	alphabet []rune
	minLen   int
	rng      *rand.Rand
	logger   *slog.Logger
	metrics  *metrics.Recorder

	mu    sync.RWMutex
	used  map[string]struct{}
	stats core.KeywordStats
}

// New validates cfg and creates a Generator.
func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := validator.Validate(cfg); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	var seed [32]byte
	if o.seed != nil {
		binary.LittleEndian.PutUint64(seed[:], *o.seed)
	} else if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("failed to seed generator: %w", err)
	}

	return &Generator{
		cfg:      cfg,
		alphabet: dedupe(cfg.Charset),
		minLen:   min(MinKeywordLen, cfg.MaxKeywordLen),
		rng:      rand.New(rand.NewChaCha8(seed)),
		logger:   o.logger,
		metrics:  o.metrics,
		used:     make(map[string]struct{}),
	}, nil
}

// Next produces the record for line index i and the number of rejected candidates.
func (g *Generator) Next(i int) (core.KeywordRecord, int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec := core.KeywordRecord{Payload: uint8(g.rng.Uint32())}

	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		candidate := g.candidate()
		if _, taken := g.used[candidate]; !taken {
			g.used[candidate] = struct{}{}
			rec.Keyword = candidate
			return rec, attempt
		}
	}

	g.logger.Warn("max attempts reached while generating keyword, consider a longer keyword length",
		"line", i+1,
		"attempts", g.cfg.MaxAttempts,
	)
	rec.Keyword = g.fallback(i)
	rec.Fallback = true
	return rec, g.cfg.MaxAttempts
}

// candidate draws a random keyword. Callers hold g.mu.
func (g *Generator) candidate() string {
	n := g.minLen + g.rng.IntN(g.cfg.MaxKeywordLen-g.minLen+1)
	buf := make([]rune, n)
	for j := range buf {
		buf[j] = g.alphabet[g.rng.IntN(len(g.alphabet))]
	}
	return string(buf)
}

// fallback derives a unique key from the line index. Callers hold g.mu.
func (g *Generator) fallback(i int) string {
	base := fallbackPrefix + strconv.Itoa(i)
	kw := base
	for n := 1; ; n++ {
		if _, taken := g.used[kw]; !taken {
			break
		}
		kw = base + "_" + strconv.Itoa(n)
	}
	g.used[kw] = struct{}{}
	return kw
}

// isFallbackKey reports whether kw has the key_<i> or key_<i>_<n> shape.
func isFallbackKey(kw string) bool {
	rest, ok := strings.CutPrefix(kw, fallbackPrefix)
	if !ok {
		return false
	}
	index, suffix, hasSuffix := strings.Cut(rest, "_")
	return isDigits(index) && (!hasSuffix || isDigits(suffix))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Generate writes cfg.Lines records to w, flushing every cfg.ChunkSize lines.
func (g *Generator) Generate(ctx context.Context, w io.Writer) (core.KeywordStats, error) {
	start := time.Now()
	total := g.cfg.Lines
	progressEvery := max(1, progressWindow/g.cfg.ChunkSize)

	stats := core.KeywordStats{}
	lineMax := g.cfg.MaxKeywordLen + core.PayloadBits + 2
	buf := make([]byte, 0, min(g.cfg.ChunkSize, maxChunkBuffer/lineMax)*lineMax)
	pending, pendingRetries, pendingFallbacks := 0, 0, 0

	flush := func() error {
		if pending == 0 {
			return nil
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("failed to write chunk: %w", err)
		}
		stats.Lines += pending
		stats.Chunks++
		g.metrics.ObserveKeywords(pending, pendingRetries, pendingFallbacks)
		g.record(stats)

		buf = buf[:0]
		pending, pendingRetries, pendingFallbacks = 0, 0, 0
		return nil
	}

	for i := 0; i < total; i++ {
		rec, retries := g.Next(i)
		stats.Retries += retries
		pendingRetries += retries
		if rec.Fallback {
			stats.Fallbacks++
			pendingFallbacks++
		}

		buf = append(buf, rec.Keyword...)
		buf = append(buf, ' ')
		buf = appendPayload(buf, rec.Payload)
		buf = append(buf, '\n')
		pending++

		if pending < g.cfg.ChunkSize {
			continue
		}
		if err := flush(); err != nil {
			return stats, err
		}

		if stats.Chunks%progressEvery == 0 {
			g.logger.Info("progress",
				"written", stats.Lines,
				"total", total,
				"percent", fmt.Sprintf("%.2f", float64(stats.Lines)/float64(total)*100),
				"elapsed", time.Since(start).Round(100*time.Millisecond),
			)
		}

		if err := ctx.Err(); err != nil {
			return stats, err
		}
	}

	if err := flush(); err != nil {
		return stats, err
	}

	stats.Unique = g.uniqueCount()
	stats.Elapsed = time.Since(start)
	g.record(stats)
	g.metrics.ObserveDuration("keywords", stats.Elapsed)
	return stats, nil
}

// WriteFile generates the dataset into path atomically.
func (g *Generator) WriteFile(ctx context.Context, path string) (core.KeywordStats, error) {
	f, err := fs.CreateAtomic(path, 0644)
	if err != nil {
		return core.KeywordStats{}, err
	}

	stats, err := g.Generate(ctx, f)
	if err != nil {
		f.Abort()
		return stats, err
	}
	if err := f.Commit(); err != nil {
		return stats, err
	}

	g.logger.Info("done",
		"lines", stats.Lines,
		"unique", stats.Unique,
		"fallbacks", stats.Fallbacks,
		"path", path,
		"elapsed", stats.Elapsed.Round(100*time.Millisecond),
	)
	return stats, nil
}

func (g *Generator) uniqueCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.used)
}

func (g *Generator) record(s core.KeywordStats) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stats = s
}

func appendPayload(buf []byte, v uint8) []byte {
	for bit := core.PayloadBits - 1; bit >= 0; bit-- {
		buf = append(buf, '0'+(v>>bit)&1)
	}
	return buf
}

// dedupe keeps the first occurrence of every rune so each symbol is equally likely.
func dedupe(charset string) []rune {
	seen := make(map[rune]struct{}, len(charset))
	out := make([]rune, 0, len(charset))
	for _, r := range charset {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
