// Package figure renders benchmark summaries into static paper figures.
//
// A Spec names a figure kind, the CSV inputs it reads and the image it writes; a Manifest
// groups specs and is usually loaded from figures.yaml. Paths are relative to the results
// directory handed to NewRenderer. The output format follows the output extension
// (png, jpg, svg or pdf).
//
// Usage:
//
//	r := figure.NewRenderer("result", figure.WithLogger(logger))
//	reports, err := r.RenderAll(ctx, figure.DefaultManifest().Figures)
package figure
