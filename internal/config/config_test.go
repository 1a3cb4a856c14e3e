package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PSIBENCH_DATA_DIR", "")
	t.Setenv("PSIBENCH_RESULTS_DIR", "")
	t.Setenv("PSIBENCH_LOG_LEVEL", "")

	cfg := Load()
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "result", cfg.ResultsDir)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PSIBENCH_DATA_DIR", "/tmp/fixtures")
	t.Setenv("PSIBENCH_RESULTS_DIR", "protocol_v2/result")
	t.Setenv("PSIBENCH_LOG_LEVEL", "DEBUG")

	cfg := Load()
	assert.Equal(t, "/tmp/fixtures", cfg.DataDir)
	assert.Equal(t, "protocol_v2/result", cfg.ResultsDir)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PSIBENCH_METRICS_FILE=run.prom\n"), 0644))

	t.Setenv("PSIBENCH_METRICS_FILE", "")
	os.Unsetenv("PSIBENCH_METRICS_FILE")

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, "run.prom", Load().MetricsFile)
}
