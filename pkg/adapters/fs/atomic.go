package fs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = "psibench-tmp-"

	// defaultBufferSize matches the 1 MiB write buffer used for large datasets.
	defaultBufferSize = 1 << 20
)

// AtomicFile streams data into a temporary file that only replaces the target
// filename once Commit succeeds. Abort (or a failed Commit) removes the temp file.
type AtomicFile struct {
	*bufio.Writer
	target string
	perm   os.FileMode
	tmp    *os.File
	done   bool
}

// CreateAtomic creates the parent directory of filename if needed and opens a temp
// file next to it.
func CreateAtomic(filename string, perm os.FileMode) (*AtomicFile, error) {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Same directory so the final rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	return &AtomicFile{
		Writer: bufio.NewWriterSize(tmpFile, defaultBufferSize),
		target: filename,
		perm:   perm,
		tmp:    tmpFile,
	}, nil
}

// Name returns the final filename.
func (f *AtomicFile) Name() string {
	return f.target
}

// Commit flushes, syncs and renames the temp file over the target.
func (f *AtomicFile) Commit() error {
	if f.done {
		return fmt.Errorf("atomic file %s already closed", f.target)
	}
	f.done = true
	defer os.Remove(f.tmp.Name()) // no-op after a successful rename

	if err := f.Flush(); err != nil {
		f.tmp.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := f.tmp.Sync(); err != nil {
		f.tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := f.tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(f.tmp.Name(), f.perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(f.tmp.Name(), f.target); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", f.target, err)
	}

	return nil
}

// Abort discards everything written so far. It is safe to call after Commit.
func (f *AtomicFile) Abort() {
	if f.done {
		return
	}
	f.done = true
	f.tmp.Close()
	os.Remove(f.tmp.Name())
}

// WriteFileAtomic writes data to a file atomically by writing to a temp file
// and then renaming it to the target filename.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	f, err := CreateAtomic(filename, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Abort()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	return f.Commit()
}
