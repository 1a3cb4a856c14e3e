// Package psibench is the entry point to the PSI benchmark tooling.
//
// It wires the synthetic input generators and the figure renderer behind a small set of
// aliases and constructors, so callers need a single import for the common paths.
//
// Features:
//
//   - **Keyword datasets**: unique `<keyword> <8-bit payload>` lines, streamed in chunks
//     and written atomically (pkg/keygen).
//   - **PSI datasets**: distinct sender items with labels plus a shuffled receiver query
//     set with a guaranteed overlap (pkg/dataset).
//   - **Figures**: stacked stage breakdowns, intersection sweeps, scheme bars and log-log
//     comparisons rendered from benchmark CSVs (pkg/figure).
//
// Usage:
//
//	gen, err := psibench.NewKeywordGenerator(psibench.DefaultKeywordConfig(),
//		keygen.WithLogger(logger),
//	)
//	stats, err := gen.WriteFile(ctx, "data/kv_2_24.txt")
//
//	r := psibench.NewRenderer("result")
//	reports, err := r.RenderAll(ctx, psibench.DefaultManifest().Figures)
package psibench
