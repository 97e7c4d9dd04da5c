// internal/versioninfo/generator.go
package versioninfo

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmunix/unipack/internal/descriptor"
	"github.com/vmunix/unipack/internal/host"
	"github.com/vmunix/unipack/internal/pathutil"
)

// DefaultFilename is the generated file name when none is configured.
const DefaultFilename = "VersionConstants.cs"

// Date layouts for the publish placeholders, always in UTC.
const (
	PublishDateLayout = "Monday, January 2, 2006"
	PublishTimeLayout = "01/02/2006 15:04:05"
)

// ErrTemplateNotFound indicates the configured template file cannot be read.
var ErrTemplateNotFound = errors.New("version constants template not found")

//go:embed default_template.txt
var defaultTemplate string

// Options configures a Generator.
type Options struct {
	// Template is a project-relative template path used when a descriptor has none.
	// Empty selects the built-in template.
	Template string
	// Filename of the generated file.
	Filename string
}

// Generator renders version constants files.
type Generator struct {
	host     host.Host
	provider Provider
	opts     Options
	log      *slog.Logger
	now      func() time.Time
}

// NewGenerator creates a generator.
func NewGenerator(h host.Host, p Provider, opts Options, logger *slog.Logger) *Generator {
	if opts.Filename == "" {
		opts.Filename = DefaultFilename
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{host: h, provider: p, opts: opts, log: logger, now: time.Now}
}

// Generate writes the version constants file for d into its VersionConstantsPath
// and returns the written path.
//
// Returns descriptor.ErrMissingOutputPath when d has no VersionConstantsPath,
// and ErrTemplateNotFound when the selected template cannot be read.
func (g *Generator) Generate(ctx context.Context, d *descriptor.Descriptor) (string, error) {
	log := g.log.With("package", d.PackageName, "id", d.ID)

	if d.VersionConstantsPath == "" {
		log.Warn("no version constants path set, skipping")
		return "", descriptor.ErrMissingOutputPath
	}

	tmpl, err := g.template(d)
	if err != nil {
		return "", err
	}

	branch, err := g.provider.Branch(ctx)
	if err != nil {
		return "", fmt.Errorf("version info: %w", err)
	}
	commit, err := g.provider.Commit(ctx)
	if err != nil {
		return "", fmt.Errorf("version info: %w", err)
	}

	now := g.now().UTC()
	contents := strings.NewReplacer(
		"${version}", d.Version,
		"${git_branch}", branch,
		"${git_commit}", commit,
		"${publish_date}", now.Format(PublishDateLayout),
		"${publish_utc_time}", now.Format(PublishTimeLayout),
	).Replace(tmpl)

	dir := filepath.FromSlash(pathutil.Normalize(g.host.Root(), d.VersionConstantsPath))
	path := filepath.Join(dir, g.opts.Filename)
	log.Info("generating version constants", "path", path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create version constants dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		return "", fmt.Errorf("write version constants: %w", err)
	}
	if err := g.host.ImportAsset(g.host.PathToAsset(path)); err != nil {
		return "", fmt.Errorf("import version constants: %w", err)
	}
	return path, nil
}

// template returns the descriptor's template, the configured default, or the built-in one.
func (g *Generator) template(d *descriptor.Descriptor) (string, error) {
	name := d.VersionTemplatePath
	if name == "" {
		name = g.opts.Template
	}
	if name == "" {
		return defaultTemplate, nil
	}

	data, err := os.ReadFile(filepath.FromSlash(pathutil.Normalize(g.host.Root(), name)))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}
	return string(data), nil
}
