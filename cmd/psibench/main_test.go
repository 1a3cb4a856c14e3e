package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/psibench/pkg/core"
	"github.com/aretw0/psibench/pkg/dataset"
	"github.com/aretw0/psibench/pkg/keygen"
)

// execute runs the root command in-process and returns what it printed.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("PSIBENCH_METRICS_FILE", "")
	t.Cleanup(func() { metricsFile = "" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestVersion(t *testing.T) {
	out := execute(t, "version")
	assert.Regexp(t, `^psibench version \d+\.\d+\.\d+\n$`, out)
}

func TestGenKeywordsAndVerify(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kv", "kv_small.txt")
	metrics := filepath.Join(dir, "run.prom")

	out := execute(t, "gen", "keywords", "-o", path, "-n", "500", "-c", "64", "-m", "8", "--seed", "1", "--metrics-file", metrics)
	assert.Contains(t, out, "wrote 500 keywords to "+path)

	f, err := os.Open(path)
	require.NoError(t, err)
	rep, err := keygen.Check(f, keygen.Config{Lines: 500, MaxKeywordLen: 8, Charset: keygen.DefaultCharset})
	f.Close()
	require.NoError(t, err)
	assert.True(t, rep.OK(), "problems: %v", rep.Problems)

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "psibench_keywords_generated_total 500")

	out = execute(t, "verify", "keywords", filepath.Join(dir, "**", "*.txt"), "-n", "500", "-m", "8")
	assert.Contains(t, out, path)
	assert.Contains(t, out, "ok")
}

func TestGenDatasetAndVerify(t *testing.T) {
	dir := t.TempDir()

	out := execute(t, "gen", "dataset", "100", "20", "5", "4", "6", "--dir", dir, "--seed", "2")
	want := filepath.Join(dir, "dataset_100_20_5_4_6.csv")
	assert.Contains(t, out, "wrote "+want)
	assert.FileExists(t, want)

	out = execute(t, "verify", "dataset", filepath.Join(dir, "*.csv"))
	assert.Contains(t, out, want)
	assert.Contains(t, out, "ok")
}

func TestGenDataset_IntersectionAboveSender(t *testing.T) {
	dir := t.TempDir()

	out := execute(t, "gen", "dataset", "10", "5", "20", "--dir", dir, "--seed", "3")
	want := filepath.Join(dir, "dataset_10_5_20_32_8.csv")
	assert.Contains(t, out, "wrote "+want)

	out = execute(t, "verify", "dataset", want)
	assert.Contains(t, out, "ok")
}

func TestParseDatasetArgs(t *testing.T) {
	dc, err := parseDatasetArgs([]string{"1024", "256", "64"})
	require.NoError(t, err)
	assert.Equal(t, dataset.Config{
		SenderSize:       1024,
		ReceiverSize:     256,
		IntersectionSize: 64,
		LabelBytes:       dataset.DefaultLabelBytes,
		ItemBytes:        dataset.DefaultItemBytes,
	}, dc)

	dc, err = parseDatasetArgs([]string{"10", "5", "1", "0", "3"})
	require.NoError(t, err)
	assert.Equal(t, 0, dc.LabelBytes)
	assert.Equal(t, 3, dc.ItemBytes)

	_, err = parseDatasetArgs([]string{"10", "five", "1"})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "receiver_size")

	_, err = parseDatasetArgs([]string{"10", "5"})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestPlot(t *testing.T) {
	dir := t.TempDir()
	results := filepath.Join(dir, "result")
	require.NoError(t, os.MkdirAll(results, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(results, "sweep.csv"), []byte(`Intersection_Size,Total_Offline(s),Total_Online(s),Communication(MB)
1,480.5,1.20,3.4
512,490.1,1.31,3.6
`), 0644))

	manifest := filepath.Join(dir, "figures.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`figures:
  - name: sweep
    kind: intersection-sweep
    inputs: [sweep.csv]
    output: figs/sweep.png
    width: 6
    height: 3
    dpi: 50
  - name: unused
    kind: scheme-bars
    inputs: [missing.csv]
    output: unused.png
`), 0644))

	out := execute(t, "plot", "swe*", "--results", results, "--manifest", manifest)
	assert.Contains(t, strings.ToLower(out), "figure")
	assert.Contains(t, out, "sweep")
	assert.NotContains(t, out, "unused")
	assert.FileExists(t, filepath.Join(results, "figs", "sweep.png"))
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.csv", "b.csv", filepath.Join("sub", "c.csv")} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, nil, 0644))
	}

	files, err := expandGlobs([]string{filepath.Join(dir, "**", "*.csv")})
	require.NoError(t, err)
	assert.Len(t, files, 3)

	files, err = expandGlobs([]string{filepath.Join(dir, "missing.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "missing.txt")}, files)

	_, err = expandGlobs([]string{"["})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
