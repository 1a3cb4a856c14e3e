// Package keygen generates keyword datasets for the PSI benchmark harness.
//
// Every line has the form "<keyword> <8-bit binary payload>". Keywords are random strings
// over a configurable alphabet with a random length in [min(3, MaxKeywordLen), MaxKeywordLen],
// unique within a run. A keyword is retried up to MaxAttempts times on collision; when the
// budget runs out the generator falls back to the index-derived key "key_<i>" instead of
// failing the run.
//
// Usage:
//
//	gen, err := keygen.New(keygen.DefaultConfig(), keygen.WithLogger(logger))
//	stats, err := gen.WriteFile(ctx, "data/kv_2_24.txt")
package keygen
