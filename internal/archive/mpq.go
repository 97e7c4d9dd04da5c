// internal/archive/mpq.go
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gompq "github.com/suprsokr/go-mpq"
)

// MPQ writes MoPaQ archives. Entry names use backslash separators.
type MPQ struct{}

// Extension implements export.ArchiveWriter.
func (MPQ) Extension() string { return FormatMPQ }

// Write implements export.ArchiveWriter. Directory assets are implied by the
// files beneath them and are not stored. The archive is written to disk when
// it is closed.
func (MPQ) Write(ctx context.Context, root string, assetPaths []string, outputPath string) (err error) {
	entries, err := resolve(root, assetPaths)
	if err != nil {
		return err
	}

	var files []entry
	for _, e := range entries {
		if !e.dir {
			files = append(files, e)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return err
	}
	_ = os.Remove(outputPath)

	archive, err := gompq.CreateV2(outputPath, len(files)+10)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := archive.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(outputPath)
		}
	}()

	for _, e := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		mpqPath := strings.ReplaceAll(e.asset, "/", "\\")
		if err := archive.AddFile(e.path, mpqPath); err != nil {
			return fmt.Errorf("add %s: %w", e.asset, err)
		}
	}

	return nil
}
