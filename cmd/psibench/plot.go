package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/supervisor"
	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/aretw0/psibench/pkg/figure"
)

var (
	plotResults  string
	plotManifest string
	plotMatch    []string
	plotWatch    bool
)

var plotCmd = &cobra.Command{
	Use:   "plot [name-pattern...]",
	Short: "Render the paper figures from benchmark CSVs",
	Long: `Render every figure of the manifest, or those whose name matches one of the given
doublestar patterns. Without --manifest, figures.yaml at the workspace root is used, and the
built-in figure list when there is none.`,
	Run: func(cmd *cobra.Command, args []string) {
		manifest, source, err := loadManifest()
		if err != nil {
			fatal("Failed to load manifest", err)
		}
		specs, err := manifest.Select(append(args, plotMatch...)...)
		if err != nil {
			fatal("Invalid arguments", err)
		}

		root := plotResults
		if root == "" {
			root = ws.ResultsDir
		}
		slog.Debug("rendering figures", "manifest", source, "results", root, "figures", len(specs))

		r := figure.NewRenderer(root,
			figure.WithLogger(slog.Default()),
			figure.WithMetrics(recorder),
		)
		reports, renderErr := r.RenderAll(cmd.Context(), specs)
		printReports(cmd.OutOrStdout(), reports)
		slog.Debug("renderer state", "component", r.ComponentType(), "state", r.State())

		if !plotWatch {
			if renderErr != nil {
				fatal("Some figures failed", renderErr)
			}
			return
		}
		if err := watchFigures(cmd.Context(), cmd.OutOrStdout(), r, specs); err != nil {
			fatal("Watch failed", err)
		}
	},
}

func loadManifest() (*figure.Manifest, string, error) {
	path := plotManifest
	if path == "" {
		path = ws.Manifest
	}
	if path == "" {
		return figure.DefaultManifest(), "built-in", nil
	}
	m, err := figure.LoadManifest(path)
	return m, path, err
}

// watchFigures supervises a figure watcher until ctx is cancelled.
func watchFigures(ctx context.Context, out io.Writer, r *figure.Renderer, specs []figure.Spec) error {
	spec := supervisor.Spec{
		Name: "figure-watcher",
		Type: string(worker.TypeGoroutine),
		Factory: func() (worker.Worker, error) {
			return figure.NewWatcher(r, specs, figure.WithReportHandler(func(rep figure.Report) {
				printReports(out, []figure.Report{rep})
			})), nil
		},
		Backoff: supervisor.Backoff{
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			Multiplier:      2,
			ResetDuration:   time.Minute,
			MaxRestarts:     5,
			MaxDuration:     10 * time.Minute,
		},
		RestartPolicy: supervisor.RestartOnFailure,
	}

	sup := supervisor.New("plot-watch", supervisor.StrategyOneForOne, spec)
	if err := sup.Start(ctx); err != nil {
		return err
	}
	slog.Info("watching for changes, press Ctrl+C to stop", "results", r.Root())
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return sup.Stop(stopCtx)
}

func printReports(w io.Writer, reports []figure.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Figure", "Kind", "Outputs", "Time", "Status"})
	for _, rep := range reports {
		status := "ok"
		if rep.Err != nil {
			status = rep.Err.Error()
		}
		table.Append([]string{
			rep.Name,
			string(rep.Kind),
			strings.Join(rep.Outputs, "\n"),
			rep.Elapsed.Round(time.Millisecond).String(),
			status,
		})
	}
	table.Render()
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVar(&plotResults, "results", "", "Results directory (default: PSIBENCH_RESULTS_DIR or ./result)")
	plotCmd.Flags().StringVar(&plotManifest, "manifest", "", "Figure manifest (YAML)")
	plotCmd.Flags().StringSliceVar(&plotMatch, "match", nil, "Doublestar pattern selecting figures by name (repeatable)")
	plotCmd.Flags().BoolVar(&plotWatch, "watch", false, "Re-render figures when their inputs change")
}
