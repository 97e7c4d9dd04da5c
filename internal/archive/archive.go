// Package archive implements the legacy package formats written by export.ExportLegacy.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/unipack/internal/export"
)

// Supported formats.
const (
	FormatUnityPackage = "unitypackage"
	FormatZip          = "zip"
	FormatMPQ          = "mpq"
)

// New returns the writer for format.
func New(format string) (export.ArchiveWriter, error) {
	switch strings.ToLower(format) {
	case FormatUnityPackage, "":
		return UnityPackage{}, nil
	case FormatZip:
		return Zip{}, nil
	case FormatMPQ:
		return MPQ{}, nil
	default:
		return nil, fmt.Errorf("unknown archive format %q", format)
	}
}

// entry is one asset resolved against the project root.
type entry struct {
	asset string // project-relative slash path
	path  string // absolute OS path
	dir   bool
}

func resolve(root string, assets []string) ([]entry, error) {
	entries := make([]entry, 0, len(assets))
	for _, a := range assets {
		p := filepath.Join(root, filepath.FromSlash(a))
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{asset: a, path: p, dir: info.IsDir()})
	}
	return entries, nil
}

// createOutput prepares outputPath for writing, replacing any previous archive.
func createOutput(outputPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, err
	}
	return os.Create(outputPath)
}
