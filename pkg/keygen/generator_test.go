package keygen

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/psibench/pkg/core"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func smallConfig(lines int) Config {
	cfg := DefaultConfig()
	cfg.Lines = lines
	cfg.ChunkSize = 64
	cfg.MaxKeywordLen = 10
	return cfg
}

// countingWriter records the size of every Write call.
type countingWriter struct {
	bytes.Buffer
	writes []int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, len(p))
	return w.Buffer.Write(p)
}

func parseLines(t *testing.T, data []byte) []core.KeywordRecord {
	t.Helper()
	var recs []core.KeywordRecord
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		rec, err := core.ParseKeywordRecord(sc.Text())
		require.NoError(t, err)
		recs = append(recs, rec)
	}
	require.NoError(t, sc.Err())
	return recs
}

func TestGenerate_Properties(t *testing.T) {
	cfg := smallConfig(500)
	gen, err := New(cfg, WithSeed(1), WithLogger(quietLogger()))
	require.NoError(t, err)

	var out bytes.Buffer
	stats, err := gen.Generate(context.Background(), &out)
	require.NoError(t, err)

	recs := parseLines(t, out.Bytes())
	assert.Len(t, recs, cfg.Lines)
	assert.Equal(t, cfg.Lines, stats.Lines)
	assert.Equal(t, cfg.Lines, stats.Unique)
	assert.Zero(t, stats.Fallbacks)

	seen := make(map[string]struct{}, len(recs))
	for _, rec := range recs {
		n := utf8.RuneCountInString(rec.Keyword)
		assert.GreaterOrEqual(t, n, MinKeywordLen)
		assert.LessOrEqual(t, n, cfg.MaxKeywordLen)
		for _, r := range rec.Keyword {
			assert.True(t, strings.ContainsRune(cfg.Charset, r), "rune %q outside charset", r)
		}
		_, dup := seen[rec.Keyword]
		assert.False(t, dup, "duplicate keyword %q", rec.Keyword)
		seen[rec.Keyword] = struct{}{}
	}

	for _, line := range strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n") {
		_, payload, _ := strings.Cut(line, " ")
		assert.Len(t, payload, 8)
		assert.Empty(t, strings.Trim(payload, "01"))
	}
}

func TestGenerate_FallbackKeepsKeywordsUnique(t *testing.T) {
	// "ab" with length exactly 3 only has 8 keywords.
	cfg := Config{Lines: 20, ChunkSize: 5, MaxKeywordLen: 3, Charset: "ab", MaxAttempts: DefaultMaxAttempts}
	gen, err := New(cfg, WithSeed(7), WithLogger(quietLogger()))
	require.NoError(t, err)

	var out bytes.Buffer
	stats, err := gen.Generate(context.Background(), &out)
	require.NoError(t, err)

	recs := parseLines(t, out.Bytes())
	require.Len(t, recs, 20)
	assert.Equal(t, 12, stats.Fallbacks)
	assert.Equal(t, 20, stats.Unique)

	seen := make(map[string]struct{})
	for i, rec := range recs {
		if strings.HasPrefix(rec.Keyword, fallbackPrefix) {
			assert.Equal(t, fallbackPrefix+strconv.Itoa(i), rec.Keyword)
		} else {
			assert.Len(t, rec.Keyword, 3)
		}
		_, dup := seen[rec.Keyword]
		assert.False(t, dup, "duplicate keyword %q", rec.Keyword)
		seen[rec.Keyword] = struct{}{}
	}
}

func TestFallback_AvoidsTakenKeys(t *testing.T) {
	gen, err := New(smallConfig(1), WithSeed(3), WithLogger(quietLogger()))
	require.NoError(t, err)

	gen.used["key_4"] = struct{}{}
	gen.used["key_4_1"] = struct{}{}

	assert.Equal(t, "key_4_2", gen.fallback(4))
	assert.Equal(t, "key_5", gen.fallback(5))
	assert.Len(t, gen.used, 4)
}

func TestIsFallbackKey(t *testing.T) {
	tests := []struct {
		kw   string
		want bool
	}{
		{"key_0", true},
		{"key_42", true},
		{"key_42_3", true},
		{"key_", false},
		{"key_42_", false},
		{"key_x1", false},
		{"key_1_2_3", false},
		{"key_ZZZ!", false},
		{"abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.kw, func(t *testing.T) {
			assert.Equal(t, tt.want, isFallbackKey(tt.kw))
		})
	}
}

func TestGenerate_HugeChunkSize(t *testing.T) {
	cfg := smallConfig(10)
	cfg.ChunkSize = math.MaxInt64 / 8

	gen, err := New(cfg, WithSeed(8), WithLogger(quietLogger()))
	require.NoError(t, err)

	var out bytes.Buffer
	stats, err := gen.Generate(context.Background(), &out)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Lines)
	assert.Equal(t, 1, stats.Chunks)
	assert.Equal(t, 10, strings.Count(out.String(), "\n"))
}

func TestGenerate_ChunkedWrites(t *testing.T) {
	cfg := smallConfig(10)
	cfg.ChunkSize = 4
	gen, err := New(cfg, WithSeed(2), WithLogger(quietLogger()))
	require.NoError(t, err)

	var w countingWriter
	stats, err := gen.Generate(context.Background(), &w)
	require.NoError(t, err)

	assert.Len(t, w.writes, 3)
	assert.Equal(t, 3, stats.Chunks)
	assert.Equal(t, 10, strings.Count(w.String(), "\n"))
}

func TestGenerate_ShortMaxLength(t *testing.T) {
	cfg := smallConfig(30)
	cfg.MaxKeywordLen = 1
	gen, err := New(cfg, WithSeed(9), WithLogger(quietLogger()))
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = gen.Generate(context.Background(), &out)
	require.NoError(t, err)

	for _, rec := range parseLines(t, out.Bytes()) {
		if !strings.HasPrefix(rec.Keyword, fallbackPrefix) {
			assert.Len(t, rec.Keyword, 1)
		}
	}
}

func TestGenerate_SeedIsReproducible(t *testing.T) {
	run := func() string {
		gen, err := New(smallConfig(50), WithSeed(42), WithLogger(quietLogger()))
		require.NoError(t, err)
		var out bytes.Buffer
		_, err = gen.Generate(context.Background(), &out)
		require.NoError(t, err)
		return out.String()
	}
	assert.Equal(t, run(), run())
}

func TestGenerate_Cancelled(t *testing.T) {
	cfg := smallConfig(100)
	cfg.ChunkSize = 10
	gen, err := New(cfg, WithSeed(1), WithLogger(quietLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	stats, err := gen.Generate(ctx, &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 10, stats.Lines)
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Zero Lines", func(c *Config) { c.Lines = 0 }},
		{"Negative Chunk", func(c *Config) { c.ChunkSize = -1 }},
		{"Zero Max Length", func(c *Config) { c.MaxKeywordLen = 0 }},
		{"Max Length Too Large", func(c *Config) { c.MaxKeywordLen = 1025 }},
		{"Empty Charset", func(c *Config) { c.Charset = "" }},
		{"Whitespace Charset", func(c *Config) { c.Charset = "ab c" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			assert.True(t, errors.Is(err, core.ErrInvalidArgument), "got %v", err)
		})
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "kv.txt")
	gen, err := New(smallConfig(100), WithSeed(5), WithLogger(quietLogger()))
	require.NoError(t, err)

	stats, err := gen.WriteFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.Lines)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, parseLines(t, data), 100)

	state := gen.State().(GeneratorState)
	assert.Equal(t, 100, state.Written)
	assert.Equal(t, 100, state.Unique)
	assert.Equal(t, len(DefaultCharset), state.AlphabetSize)
	assert.Equal(t, "keyword-generator", gen.ComponentType())
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []rune("abc"), dedupe("aabcba"))
}

