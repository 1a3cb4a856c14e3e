package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/psibench/pkg/core"
	"github.com/aretw0/psibench/pkg/dataset"
)

var dsDir string

var genDatasetCmd = &cobra.Command{
	Use:   "dataset <sender_size> <receiver_size> <intersection_size> [label_byte_count] [item_byte_count]",
	Short: "Generate a sender/receiver dataset",
	Long: fmt.Sprintf(`Write dataset_<S>_<R>_<N>_<L>_<I>.csv holding S sender rows (item,label) and R receiver
items, at least min(N, R) of which are sender items. Labels default to %d bytes and items
to %d bytes.`, dataset.DefaultLabelBytes, dataset.DefaultItemBytes),
	Args: cobra.RangeArgs(3, 5),
	Run: func(cmd *cobra.Command, args []string) {
		dc, err := parseDatasetArgs(args)
		if err != nil {
			fatal("Invalid arguments", err)
		}

		dir := dsDir
		if dir == "" {
			dir = ws.DataDir
		}

		opts := []dataset.Option{
			dataset.WithLogger(slog.Default()),
			dataset.WithMetrics(recorder),
		}
		if seeded(cmd) {
			opts = append(opts, dataset.WithSeed(genSeed))
		}

		gen, err := dataset.New(dc, opts...)
		if err != nil {
			fatal("Invalid arguments", err)
		}

		path, stats, err := gen.WriteFile(cmd.Context(), dir)
		if err != nil {
			fatal("Failed to generate dataset", err)
		}
		slog.Debug("generator state", "component", gen.ComponentType(), "state", gen.State())

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d sender rows, %d queries, %d shared)\n",
			path, stats.SenderRows, stats.QueryRows, stats.Intersection)
	},
}

// parseDatasetArgs maps the positional arguments onto a dataset config.
func parseDatasetArgs(args []string) (dataset.Config, error) {
	vals := []int{0, 0, 0, dataset.DefaultLabelBytes, dataset.DefaultItemBytes}
	names := []string{"sender_size", "receiver_size", "intersection_size", "label_byte_count", "item_byte_count"}
	if len(args) < 3 || len(args) > len(vals) {
		return dataset.Config{}, fmt.Errorf("%w: expected 3 to 5 arguments, got %d", core.ErrInvalidArgument, len(args))
	}
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return dataset.Config{}, fmt.Errorf("%w: %s must be an integer, got %q", core.ErrInvalidArgument, names[i], a)
		}
		vals[i] = v
	}
	return dataset.Config{
		SenderSize:       vals[0],
		ReceiverSize:     vals[1],
		IntersectionSize: vals[2],
		LabelBytes:       vals[3],
		ItemBytes:        vals[4],
	}, nil
}

func init() {
	genCmd.AddCommand(genDatasetCmd)
	genDatasetCmd.Flags().StringVar(&dsDir, "dir", "", "Output directory (default: data dir)")
}
