package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/aretw0/psibench/pkg/core"
	"github.com/aretw0/psibench/pkg/dataset"
	"github.com/aretw0/psibench/pkg/keygen"
)

var (
	verifyLines   int
	verifyMaxLen  int
	verifyCharset string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check generated files against their format and invariants",
}

var verifyKeywordsCmd = &cobra.Command{
	Use:   "keywords <file-or-glob>...",
	Short: "Check keyword files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		files, err := expandGlobs(args)
		if err != nil {
			fatal("Invalid arguments", err)
		}
		kc := keygen.Config{Lines: verifyLines, MaxKeywordLen: verifyMaxLen, Charset: verifyCharset}

		table := newVerifyTable(cmd.OutOrStdout(), "Lines", "Unique", "Fallbacks")
		var errs []error
		for _, path := range files {
			rep, err := checkFile(path, func(r io.Reader) (keygen.Report, error) { return keygen.Check(r, kc) })
			if err == nil {
				err = rep.Err()
			}
			table.Append([]string{path, strconv.Itoa(rep.Lines), strconv.Itoa(rep.Unique), strconv.Itoa(rep.Fallbacks), status(err)})
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
			}
		}
		table.Render()
		if err := errors.Join(errs...); err != nil {
			fatal("Verification failed", err)
		}
	},
}

var verifyDatasetCmd = &cobra.Command{
	Use:   "dataset <file-or-glob>...",
	Short: "Check sender/receiver dataset files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		files, err := expandGlobs(args)
		if err != nil {
			fatal("Invalid arguments", err)
		}

		table := newVerifyTable(cmd.OutOrStdout(), "Sender", "Receiver", "Shared")
		var errs []error
		for _, path := range files {
			rep, err := checkFile(path, func(r io.Reader) (dataset.Report, error) {
				ds, err := dataset.Read(r)
				if err != nil {
					return dataset.Report{}, err
				}
				return dataset.Check(ds), nil
			})
			if err == nil {
				err = rep.Err()
			}
			p := rep.Params
			table.Append([]string{path, strconv.Itoa(p.SenderSize), strconv.Itoa(p.ReceiverSize), strconv.Itoa(rep.Intersection), status(err)})
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
			}
		}
		table.Render()
		if err := errors.Join(errs...); err != nil {
			fatal("Verification failed", err)
		}
	},
}

// expandGlobs resolves doublestar patterns; plain paths are kept even when missing so
// the check reports them.
func expandGlobs(args []string) ([]string, error) {
	var files []string
	for _, a := range args {
		if !doublestar.ValidatePattern(a) {
			return nil, fmt.Errorf("%w: bad pattern %q", core.ErrInvalidArgument, a)
		}
		matches, err := doublestar.FilepathGlob(a, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			files = append(files, a)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

func checkFile[T any](path string, fn func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	return fn(f)
}

func newVerifyTable(w io.Writer, cols ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(append(append([]string{"File"}, cols...), "Status"))
	return table
}

func status(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.AddCommand(verifyKeywordsCmd)
	verifyCmd.AddCommand(verifyDatasetCmd)
	verifyKeywordsCmd.Flags().IntVarP(&verifyLines, "lines", "n", 0, "Expected line count (0: any)")
	verifyKeywordsCmd.Flags().IntVarP(&verifyMaxLen, "max-keyword-len", "m", keygen.DefaultMaxKeywordLen, "Maximum keyword length")
	verifyKeywordsCmd.Flags().StringVar(&verifyCharset, "charset", keygen.DefaultCharset, "Keyword alphabet")
}
