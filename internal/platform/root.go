// Package platform locates the benchmark workspace a command runs in.
package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/psibench/internal/config"
)

// ManifestName is the figure manifest looked up at the workspace root.
const ManifestName = "figures.yaml"

// Markers identify a workspace root, checked in order at each level.
var Markers = []string{".psibench", ManifestName, ".git"}

// FindRoot recursively looks upwards for a workspace root indicator.
// If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, m := range Markers {
			if hasFile(dir, m) {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

// Workspace holds the resolved default paths of a run.
type Workspace struct {
	// Root is empty when no marker was found; paths then stay relative to the working directory.
	Root       string
	DataDir    string
	ResultsDir string
	// Manifest is empty when the built-in figure list should be used.
	Manifest string
}

// Resolve anchors the relative paths of cfg at the workspace root above startDir.
// An explicit manifest wins; otherwise figures.yaml at the root is used when present.
func Resolve(startDir string, cfg *config.Config) Workspace {
	root, err := FindRoot(startDir)
	if err != nil {
		root = ""
	}

	ws := Workspace{
		Root:       root,
		DataDir:    anchor(root, cfg.DataDir),
		ResultsDir: anchor(root, cfg.ResultsDir),
	}
	switch {
	case cfg.Manifest != "":
		ws.Manifest = anchor(root, cfg.Manifest)
	case root != "" && hasFile(root, ManifestName):
		ws.Manifest = filepath.Join(root, ManifestName)
	}
	return ws
}

func anchor(root, path string) string {
	if root == "" || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
