package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/psibench/internal/config"
)

func TestFindRoot(t *testing.T) {
	// /tmp/
	//   bench/ (figures.yaml)
	//     result/
	//       micro/
	//   marked/ (.psibench)
	//   empty/

	baseDir := t.TempDir()
	benchDir := filepath.Join(baseDir, "bench")
	resultDir := filepath.Join(benchDir, "result")
	microDir := filepath.Join(resultDir, "micro")
	markedDir := filepath.Join(baseDir, "marked")
	emptyDir := filepath.Join(baseDir, "empty")

	for _, d := range []string{microDir, markedDir, emptyDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(benchDir, ManifestName), []byte("figures: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(markedDir, ".psibench"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{
			name:      "Start at Root",
			startPath: benchDir,
			wantRoot:  benchDir,
		},
		{
			name:      "Start in Results",
			startPath: resultDir,
			wantRoot:  benchDir,
		},
		{
			name:      "Start Nested Deeply",
			startPath: microDir,
			wantRoot:  benchDir,
		},
		{
			name:      "Marker Directory",
			startPath: markedDir,
			wantRoot:  markedDir,
		},
		{
			name:      "No Root Found",
			startPath: emptyDir,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("FindRoot() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != "" && filepath.Clean(got) != filepath.Clean(tt.wantRoot) {
				t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	baseDir := t.TempDir()
	benchDir := filepath.Join(baseDir, "bench")
	nested := filepath.Join(benchDir, "result", "compare")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(benchDir, ManifestName), []byte("figures: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{DataDir: "data", ResultsDir: "result"}
	ws := Resolve(nested, cfg)
	if ws.Root != benchDir {
		t.Fatalf("Root = %q, want %q", ws.Root, benchDir)
	}
	if want := filepath.Join(benchDir, "data"); ws.DataDir != want {
		t.Errorf("DataDir = %q, want %q", ws.DataDir, want)
	}
	if want := filepath.Join(benchDir, "result"); ws.ResultsDir != want {
		t.Errorf("ResultsDir = %q, want %q", ws.ResultsDir, want)
	}
	if want := filepath.Join(benchDir, ManifestName); ws.Manifest != want {
		t.Errorf("Manifest = %q, want %q", ws.Manifest, want)
	}

	cfg = &config.Config{DataDir: "/abs/data", ResultsDir: "result", Manifest: "paper.yaml"}
	ws = Resolve(nested, cfg)
	if ws.DataDir != "/abs/data" {
		t.Errorf("absolute DataDir rewritten to %q", ws.DataDir)
	}
	if want := filepath.Join(benchDir, "paper.yaml"); ws.Manifest != want {
		t.Errorf("Manifest = %q, want %q", ws.Manifest, want)
	}

	emptyDir := filepath.Join(baseDir, "empty")
	if err := os.Mkdir(emptyDir, 0755); err != nil {
		t.Fatal(err)
	}
	ws = Resolve(emptyDir, &config.Config{DataDir: "data", ResultsDir: "result"})
	if ws.Root != "" || ws.DataDir != "data" || ws.Manifest != "" {
		t.Errorf("unexpected workspace without root: %+v", ws)
	}
}
