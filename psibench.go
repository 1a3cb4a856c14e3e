package psibench

import (
	_ "embed"

	"github.com/aretw0/psibench/pkg/dataset"
	"github.com/aretw0/psibench/pkg/figure"
	"github.com/aretw0/psibench/pkg/keygen"
)

// Version exposes the version of the module.
//
//go:embed VERSION
var Version string

// --- Types ---

// KeywordConfig shapes a keyword dataset.
type KeywordConfig = keygen.Config

// DatasetConfig shapes a sender/receiver dataset.
type DatasetConfig = dataset.Config

// FigureSpec describes one figure.
type FigureSpec = figure.Spec

// Manifest is a list of figures.
type Manifest = figure.Manifest

// --- Constructors ---

// DefaultKeywordConfig returns the 2^24 line keyword dataset of the benchmarks.
func DefaultKeywordConfig() KeywordConfig {
	return keygen.DefaultConfig()
}

// NewKeywordGenerator validates cfg and returns a keyword generator.
func NewKeywordGenerator(cfg KeywordConfig, opts ...keygen.Option) (*keygen.Generator, error) {
	return keygen.New(cfg, opts...)
}

// NewDatasetGenerator validates cfg and returns a dataset generator.
func NewDatasetGenerator(cfg DatasetConfig, opts ...dataset.Option) (*dataset.Generator, error) {
	return dataset.New(cfg, opts...)
}

// NewRenderer returns a figure renderer over a results directory.
func NewRenderer(root string, opts ...figure.Option) *figure.Renderer {
	return figure.NewRenderer(root, opts...)
}

// DefaultManifest returns the built-in figure list.
func DefaultManifest() *Manifest {
	return figure.DefaultManifest()
}

// LoadManifest reads a YAML figure manifest.
func LoadManifest(path string) (*Manifest, error) {
	return figure.LoadManifest(path)
}
