package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/aretw0/psibench/pkg/dataset"
	"github.com/aretw0/psibench/pkg/keygen"
)

// bench measures generator throughput across chunk sizes and dataset shapes.
func main() {
	lines := flag.Int("lines", 1<<20, "Keyword lines per run")
	sender := flag.Int("sender", 1<<16, "Sender rows of the dataset run")
	keep := flag.Bool("keep", false, "Keep the generated files after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "psibench_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Run", "Rows", "Elapsed", "Rows/s"})

	for _, chunk := range []int{1 << 10, 1 << 13, keygen.DefaultChunkSize} {
		cfg := keygen.DefaultConfig()
		cfg.Lines = *lines
		cfg.ChunkSize = chunk

		gen, err := keygen.New(cfg, keygen.WithSeed(1), keygen.WithLogger(logger))
		if err != nil {
			panic(err)
		}
		stats, err := gen.WriteFile(ctx, filepath.Join(benchDir, fmt.Sprintf("kv_%d.txt", chunk)))
		if err != nil {
			panic(err)
		}
		table.Append(row(fmt.Sprintf("keywords chunk=%d", chunk), stats.Lines, stats.Elapsed))
	}

	for _, label := range []int{0, dataset.DefaultLabelBytes} {
		gen, err := dataset.New(dataset.Config{
			SenderSize:       *sender,
			ReceiverSize:     *sender / 16,
			IntersectionSize: *sender / 64,
			LabelBytes:       label,
			ItemBytes:        dataset.DefaultItemBytes,
		}, dataset.WithSeed(1), dataset.WithLogger(logger))
		if err != nil {
			panic(err)
		}
		_, stats, err := gen.WriteFile(ctx, benchDir)
		if err != nil {
			panic(err)
		}
		table.Append(row(fmt.Sprintf("dataset label=%d", label), stats.SenderRows+stats.QueryRows, stats.Elapsed))
	}

	table.Render()
}

func row(name string, rows int, d time.Duration) []string {
	rate := float64(rows) / d.Seconds()
	return []string{name, strconv.Itoa(rows), d.Round(time.Millisecond).String(), strconv.FormatFloat(rate, 'f', 0, 64)}
}
