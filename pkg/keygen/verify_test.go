package keygen

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/psibench/pkg/core"
)

func TestCheck_GeneratedOutput(t *testing.T) {
	cfg := smallConfig(200)
	gen, err := New(cfg, WithSeed(21), WithLogger(quietLogger()))
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = gen.Generate(context.Background(), &out)
	require.NoError(t, err)

	rep, err := Check(&out, cfg)
	require.NoError(t, err)
	assert.True(t, rep.OK(), "problems: %v", rep.Problems)
	assert.Equal(t, 200, rep.Lines)
	assert.Equal(t, 200, rep.Unique)
	assert.NoError(t, rep.Err())
}

func TestCheck_DetectsProblems(t *testing.T) {
	input := strings.Join([]string{
		"abc 00000001",
		"abc 00000010",   // duplicate
		"ab 00000011",    // too short
		"ABC 00000100",   // outside charset
		"key_4 00000101",    // fallback, exempt
		"key_4_12 00000110", // suffixed fallback, exempt
		"key_ZZZ! 00000111", // not a fallback: outside charset
		"abcd 012",          // bad payload
	}, "\n") + "\n"

	cfg := Config{Lines: 9, MaxKeywordLen: 10, Charset: DefaultCharset}
	rep, err := Check(strings.NewReader(input), cfg)
	require.NoError(t, err)

	assert.Equal(t, 8, rep.Lines)
	assert.Equal(t, 2, rep.Fallbacks)
	assert.Len(t, rep.Problems, 6)
	assert.True(t, errors.Is(rep.Err(), core.ErrMalformedInput))
}

func TestCheck_TruncatesProblems(t *testing.T) {
	var b strings.Builder
	for i := 0; i < maxReportedProblems+5; i++ {
		b.WriteString("dup 00000000\n")
	}

	rep, err := Check(strings.NewReader(b.String()), Config{MaxKeywordLen: 10, Charset: DefaultCharset})
	require.NoError(t, err)
	assert.Len(t, rep.Problems, maxReportedProblems)
	assert.Equal(t, 4, rep.Truncated)
	assert.Contains(t, rep.Err().Error(), "and 4 more")
}
