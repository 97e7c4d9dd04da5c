// internal/export/mirror.go
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmunix/unipack/internal/descriptor"
	"github.com/vmunix/unipack/internal/pathutil"
)

// Mirror writes the manifest for d and copies the package sources to its destination.
//
// The destination is emptied of non-hidden entries first, so re-running a mirror
// for the same descriptor produces the same destination contents. Sources are
// resolved against the project root; file sources are flattened into the
// destination root and directory sources have their contents copied into it.
// Paths matching the descriptor's ignore fragments are skipped.
//
// Without a destination path only the manifest is written and the result is
// marked skipped. A copy failure aborts the mirror with ErrIOFailure and leaves
// the destination partially written.
func (e *Exporter) Mirror(ctx context.Context, d *descriptor.Descriptor) (*Result, error) {
	log := e.logger(d)

	manifestPath, err := e.WriteManifest(d)
	if err != nil {
		return nil, err
	}

	if d.DestinationPath == "" {
		log.Info("skipping mirror, no destination path set")
		return skipped(descriptor.ErrMissingOutputPath), nil
	}

	dest := e.resolve(d.DestinationPath)
	if err := e.checkDestination(d, dest); err != nil {
		return nil, err
	}

	log.Info("mirroring package", "destination", dest)

	if err := prepareDestination(dest); err != nil {
		return nil, err
	}

	run := newCopyRun()
	if err := run.copyWithMeta(manifestPath, dest); err != nil {
		return nil, err
	}

	ignore := pathutil.NewIgnoreSet(e.host.Root(), d.IgnorePaths)
	for _, sp := range d.SourcePaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src := e.resolve(sp)
		if ignore.Match(src) {
			log.Debug("ignoring source", "source", sp)
			continue
		}

		info, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("%w: source %s: %v", ErrIOFailure, sp, err)
		}

		if !info.IsDir() {
			if err := run.copyWithMeta(src, dest); err != nil {
				return nil, err
			}
			continue
		}

		if err := run.copyTree(ctx, src, dest, dest, ignore); err != nil {
			return nil, err
		}
	}

	log.Info("mirrored package", "destination", dest, "files", run.files, "bytes", run.bytes)
	return &Result{Destination: dest, Files: run.files, Bytes: run.bytes}, nil
}

// checkDestination refuses destinations whose clearing would delete the
// project, the descriptor or any source.
func (e *Exporter) checkDestination(d *descriptor.Descriptor, dest string) error {
	destSlash := filepath.ToSlash(dest)
	guarded := []string{e.host.Root()}
	if dir := d.Dir(); dir != "" {
		guarded = append(guarded, dir)
	}
	for _, sp := range d.SourcePaths {
		guarded = append(guarded, e.resolve(sp))
	}

	for _, g := range guarded {
		if pathutil.Within(filepath.ToSlash(g), destSlash) {
			return fmt.Errorf("%w: %s contains %s", ErrUnsafeDestination, dest, g)
		}
	}
	return nil
}

// copyTree copies the contents of srcDir into dstDir: subdirectories first,
// then files. skip is never descended into.
func (r *copyRun) copyTree(ctx context.Context, srcDir, dstDir, skip string, ignore *pathutil.IgnoreSet) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrIOFailure, srcDir, err)
	}

	var files []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		src := filepath.Join(srcDir, entry.Name())
		if src == skip || ignore.Match(src) {
			continue
		}

		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(src)
			if err != nil {
				return fmt.Errorf("%w: stat %s: %v", ErrIOFailure, src, err)
			}
			isDir = info.IsDir()
		}
		if !isDir {
			files = append(files, entry.Name())
			continue
		}

		dst := filepath.Join(dstDir, entry.Name())
		if err := os.MkdirAll(dst, 0755); err != nil {
			return fmt.Errorf("%w: create %s: %v", ErrIOFailure, dst, err)
		}
		if err := r.copyTree(ctx, src, dst, skip, ignore); err != nil {
			return err
		}
	}

	for _, name := range files {
		if err := r.copy(filepath.Join(srcDir, name), filepath.Join(dstDir, name)); err != nil {
			return err
		}
	}
	return nil
}
