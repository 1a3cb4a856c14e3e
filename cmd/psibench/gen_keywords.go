package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/psibench/pkg/keygen"
)

// DefaultKeywordFile is written under the data directory when --out is not given.
const DefaultKeywordFile = "kv_2_24.txt"

var (
	kwOut     string
	kwLines   int
	kwChunk   int
	kwMaxLen  int
	kwCharset string
)

var genKeywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Generate a unique keyword dataset",
	Long: `Write one "<keyword> <8-bit payload>" line per entry. Keywords are unique within the
file; when no unused random keyword is found the deterministic key_<index> is used instead.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := kwOut
		if out == "" {
			out = filepath.Join(ws.DataDir, DefaultKeywordFile)
		}

		kc := keygen.DefaultConfig()
		kc.Lines = kwLines
		kc.ChunkSize = kwChunk
		kc.MaxKeywordLen = kwMaxLen
		kc.Charset = kwCharset

		opts := []keygen.Option{
			keygen.WithLogger(slog.Default()),
			keygen.WithMetrics(recorder),
		}
		if seeded(cmd) {
			opts = append(opts, keygen.WithSeed(genSeed))
		}

		gen, err := keygen.New(kc, opts...)
		if err != nil {
			fatal("Invalid arguments", err)
		}

		stats, err := gen.WriteFile(cmd.Context(), out)
		if err != nil {
			fatal("Failed to generate keywords", err)
		}
		slog.Debug("generator state", "component", gen.ComponentType(), "state", gen.State())

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d keywords to %s (%d fallbacks, %d retries) in %s\n",
			stats.Lines, out, stats.Fallbacks, stats.Retries, stats.Elapsed.Round(time.Millisecond))
	},
}

func init() {
	genCmd.AddCommand(genKeywordsCmd)
	genKeywordsCmd.Flags().StringVarP(&kwOut, "out", "o", "", "Output file (default: <data dir>/"+DefaultKeywordFile+")")
	genKeywordsCmd.Flags().IntVarP(&kwLines, "lines", "n", keygen.DefaultLines, "Number of lines")
	genKeywordsCmd.Flags().IntVarP(&kwChunk, "chunk-size", "c", keygen.DefaultChunkSize, "Lines buffered per write")
	genKeywordsCmd.Flags().IntVarP(&kwMaxLen, "max-keyword-len", "m", keygen.DefaultMaxKeywordLen, "Maximum keyword length")
	genKeywordsCmd.Flags().StringVar(&kwCharset, "charset", keygen.DefaultCharset, "Keyword alphabet")
}
