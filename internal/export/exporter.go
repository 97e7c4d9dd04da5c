// Package export mirrors package sources to a destination folder and bundles
// them into legacy archives.
package export

//go:generate mockgen -destination=mocks/archive.go -package=mocks . ArchiveWriter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vmunix/unipack/internal/descriptor"
	"github.com/vmunix/unipack/internal/host"
	"github.com/vmunix/unipack/internal/manifest"
	"github.com/vmunix/unipack/internal/pathutil"
)

// GeneratedDir is the folder, next to the descriptor, that holds generated manifests.
const GeneratedDir = "Generated"

// ArchiveWriter serializes a list of project assets into a single archive file.
type ArchiveWriter interface {
	// Extension returns the archive file extension without the dot.
	Extension() string
	// Write bundles assetPaths, relative to root, into outputPath.
	Write(ctx context.Context, root string, assetPaths []string, outputPath string) error
}

// Result describes the outcome of one export step.
type Result struct {
	Destination string `json:"destination,omitempty"`
	Files       int    `json:"files"`
	Bytes       int64  `json:"bytes"`
	Skipped     bool   `json:"skipped,omitempty"`
	// Reason is set when the step was skipped.
	Reason error `json:"-"`
}

func skipped(reason error) *Result {
	return &Result{Skipped: true, Reason: reason}
}

// Options configures an Exporter.
type Options struct {
	// EscapeStrings applies JSON escaping to manifest values.
	EscapeStrings bool
}

// Exporter runs mirror and legacy exports for descriptors.
type Exporter struct {
	host    host.Host
	archive ArchiveWriter
	opts    Options
	log     *slog.Logger
}

// NewExporter creates an exporter. archive may be nil when legacy exports are not used.
func NewExporter(h host.Host, archive ArchiveWriter, opts Options, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{host: h, archive: archive, opts: opts, log: logger}
}

func (e *Exporter) logger(d *descriptor.Descriptor) *slog.Logger {
	return e.log.With("package", d.PackageName, "id", d.ID)
}

// resolve turns a descriptor path into an absolute OS path.
func (e *Exporter) resolve(p string) string {
	return filepath.FromSlash(pathutil.Normalize(e.host.Root(), p))
}

// ManifestPath returns where the generated manifest for d is written.
func (e *Exporter) ManifestPath(d *descriptor.Descriptor) string {
	dir := d.Dir()
	if dir == "" {
		dir = e.host.Root()
	}
	return filepath.Join(dir, GeneratedDir, d.ID, manifest.Filename)
}

// WriteManifest generates the manifest for d, writes it next to the descriptor
// and imports it through the host so it gets a .meta companion.
func (e *Exporter) WriteManifest(d *descriptor.Descriptor) (string, error) {
	var opts []manifest.Option
	if e.opts.EscapeStrings {
		opts = append(opts, manifest.WithEscaping())
	}
	doc, err := manifest.Generate(d, opts...)
	if err != nil {
		return "", err
	}

	path := e.ManifestPath(d)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("%w: create manifest dir: %v", ErrIOFailure, err)
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return "", fmt.Errorf("%w: write manifest: %v", ErrIOFailure, err)
	}
	if err := e.host.ImportAsset(e.host.PathToAsset(path)); err != nil {
		return "", fmt.Errorf("%w: import manifest: %v", ErrIOFailure, err)
	}

	e.logger(d).Debug("wrote manifest", "path", path)
	return path, nil
}
