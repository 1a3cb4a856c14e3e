// Package config resolves psibench defaults from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the environment-provided defaults. Command-line flags take precedence.
type Config struct {
	DataDir     string
	ResultsDir  string
	Manifest    string
	MetricsFile string
	LogLevel    string
}

// Load reads configuration from environment variables.
// A .env file can be merged first with LoadDotEnv; real environment variables take precedence.
func Load() *Config {
	return &Config{
		DataDir:     getEnv("PSIBENCH_DATA_DIR", "data"),
		ResultsDir:  getEnv("PSIBENCH_RESULTS_DIR", "result"),
		Manifest:    getEnv("PSIBENCH_MANIFEST", ""),
		MetricsFile: getEnv("PSIBENCH_METRICS_FILE", ""),
		LogLevel:    getEnv("PSIBENCH_LOG_LEVEL", "info"),
	}
}

// LoadDotEnv merges the given .env files into the process environment.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Level maps LogLevel to a slog level; unknown values fall back to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
