// internal/export/copy.go
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies a file from src to dst, replacing dst if it exists.
// Creates destination directory if it doesn't exist.
func CopyFile(src, dst string) (int64, error) {
	// Create destination directory
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, fmt.Errorf("%w: create directory: %v", ErrIOFailure, err)
	}

	// Open source
	srcFile, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("%w: open source: %v", ErrIOFailure, err)
	}
	defer func() { _ = srcFile.Close() }()

	info, err := srcFile.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: stat source: %v", ErrIOFailure, err)
	}

	// Create destination
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("%w: create destination: %v", ErrIOFailure, err)
	}
	defer func() { _ = dstFile.Close() }()

	// Copy content
	size, err := io.Copy(dstFile, srcFile)
	if err != nil {
		// Clean up partial file on error
		_ = os.Remove(dst)
		return 0, fmt.Errorf("%w: copy %s: %v", ErrIOFailure, src, err)
	}

	// Sync to disk
	if err := dstFile.Sync(); err != nil {
		return 0, fmt.Errorf("%w: sync: %v", ErrIOFailure, err)
	}

	return size, nil
}

// copyRun tracks the files written by a single mirror so that two sources
// landing on the same destination file are reported instead of silently merged.
type copyRun struct {
	written map[string]bool
	files   int
	bytes   int64
}

func newCopyRun() *copyRun {
	return &copyRun{written: make(map[string]bool)}
}

func (r *copyRun) copy(src, dst string) error {
	if r.written[dst] {
		return fmt.Errorf("%w: %w: %s", ErrIOFailure, ErrDestinationExists, dst)
	}
	n, err := CopyFile(src, dst)
	if err != nil {
		return err
	}
	r.written[dst] = true
	r.files++
	r.bytes += n
	return nil
}

// copyWithMeta copies src and, when present, its .meta companion into dir.
func (r *copyRun) copyWithMeta(src, dir string) error {
	name := filepath.Base(src)
	if err := r.copy(src, filepath.Join(dir, name)); err != nil {
		return err
	}
	meta := src + ".meta"
	if !fileExists(meta) {
		return nil
	}
	return r.copy(meta, filepath.Join(dir, name+".meta"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
