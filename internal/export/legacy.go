// internal/export/legacy.go
package export

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/unipack/internal/descriptor"
	"github.com/vmunix/unipack/internal/pathutil"
)

// legacyNameReplacer turns spaces and path separators into underscores.
var legacyNameReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// LegacyFileName returns the archive file name for d:
// the display name with spaces replaced by underscores, "_v", the version and ext.
// Other characters are kept as-is.
func LegacyFileName(d *descriptor.Descriptor, ext string) string {
	return legacyNameReplacer.Replace(d.DisplayName+"_v"+d.Version) + "." + ext
}

// CollectAssetPaths returns the project-relative asset paths that make up the
// package: each non-ignored source, its .meta companion, and for directories
// every non-ignored file beneath it, in lexical walk order without duplicates.
func (e *Exporter) CollectAssetPaths(ctx context.Context, d *descriptor.Descriptor) ([]string, error) {
	ignore := pathutil.NewIgnoreSet(e.host.Root(), d.IgnorePaths)
	seen := make(map[string]bool)
	var assets []string
	add := func(abs string) {
		asset := e.host.PathToAsset(abs)
		if !seen[asset] {
			seen[asset] = true
			assets = append(assets, asset)
		}
	}

	for _, sp := range d.SourcePaths {
		src := e.resolve(sp)
		if ignore.Match(src) {
			continue
		}

		info, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("%w: source %s: %v", ErrIOFailure, sp, err)
		}

		add(src)
		if fileExists(src + ".meta") {
			add(src + ".meta")
		}
		if !info.IsDir() {
			continue
		}

		err = filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if path == src {
				return nil
			}
			if ignore.Match(path) {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !entry.IsDir() {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: walk %s: %v", ErrIOFailure, sp, err)
		}
	}

	return assets, nil
}

// ExportLegacy bundles the package's assets into a single archive in the
// descriptor's legacy destination folder. Without a legacy destination path
// the export is skipped.
func (e *Exporter) ExportLegacy(ctx context.Context, d *descriptor.Descriptor) (*Result, error) {
	log := e.logger(d)

	if d.LegacyDestinationPath == "" {
		log.Info("skipping legacy package, no output path set")
		return skipped(descriptor.ErrMissingOutputPath), nil
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if e.archive == nil {
		return nil, ErrNoArchiveWriter
	}

	assets, err := e.CollectAssetPaths(ctx, d)
	if err != nil {
		return nil, err
	}

	dir := e.resolve(d.LegacyDestinationPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create legacy destination: %v", ErrIOFailure, err)
	}
	output := filepath.Join(dir, LegacyFileName(d, e.archive.Extension()))

	log.Info("generating legacy package", "output", output, "assets", len(assets))
	if err := e.archive.Write(ctx, e.host.Root(), assets, output); err != nil {
		return nil, fmt.Errorf("%w: write archive: %w", ErrIOFailure, err)
	}

	res := &Result{Destination: output, Files: len(assets)}
	if info, err := os.Stat(output); err == nil {
		res.Bytes = info.Size()
	}
	return res, nil
}
