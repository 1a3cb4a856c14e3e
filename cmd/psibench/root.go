package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aretw0/psibench/internal/config"
	"github.com/aretw0/psibench/internal/metrics"
	"github.com/aretw0/psibench/internal/platform"
)

var (
	verbose     bool
	metricsFile string

	cfg      *config.Config
	ws       platform.Workspace
	recorder *metrics.Recorder
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "psibench",
	Short: "Synthetic inputs and figures for PSI benchmarks",
	Long: `psibench generates the keyword and sender/receiver datasets fed to the PSI
benchmark harness, and renders the paper figures from the CSV summaries it produces.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.LoadDotEnv(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		cfg = config.Load()

		level := cfg.Level()
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts)).With("run_id", uuid.NewString())
		slog.SetDefault(logger)

		wd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}
		ws = platform.Resolve(wd, cfg)
		slog.Debug("workspace resolved", "root", ws.Root, "data", ws.DataDir, "results", ws.ResultsDir)

		recorder, err = metrics.New()
		if err != nil {
			fatal("Failed to set up metrics", err)
		}
		if metricsFile == "" {
			metricsFile = cfg.MetricsFile
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if metricsFile == "" {
			return
		}
		if err := recorder.WriteTextfile(metricsFile); err != nil {
			slog.Warn("failed to write metrics", "path", metricsFile, "error", err)
			return
		}
		slog.Debug("metrics written", "path", metricsFile)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
}
