// internal/host/project.go
package host

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/unipack/internal/pathutil"
)

// skipDirs are Unity-managed folders that never hold authored assets.
var skipDirs = map[string]bool{
	"Library": true,
	"Temp":    true,
	"Logs":    true,
	"obj":     true,
}

// Project is a Host backed by a Unity project directory on disk.
type Project struct {
	root string
	log  *slog.Logger
}

var _ Host = (*Project)(nil)

// NewProject opens the Unity project rooted at root.
func NewProject(root string, logger *slog.Logger) (*Project, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open project: %s is not a directory", abs)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Project{root: abs, log: logger}, nil
}

// Root returns the absolute project root.
func (p *Project) Root() string {
	return p.root
}

// AbsPath resolves an asset path (or an absolute path) to a filesystem path.
func (p *Project) AbsPath(assetPath string) string {
	return filepath.FromSlash(pathutil.Normalize(p.root, assetPath))
}

// FindAssetsOfType walks the project for files ending in kind.
// Hidden directories and Unity-managed folders are skipped.
func (p *Project) FindAssetsOfType(ctx context.Context, kind Kind) ([]string, error) {
	var assets []string

	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != p.root && (pathutil.IsHidden(d.Name()) || skipDirs[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), string(kind)) {
			assets = append(assets, p.PathToAsset(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find %s assets: %w", kind, err)
	}

	p.log.Debug("found assets", "kind", string(kind), "count", len(assets))
	return assets, nil
}

// PathToAsset converts an absolute path into a project-relative asset path.
func (p *Project) PathToAsset(fullPath string) string {
	return pathutil.Rel(fullPath, p.root)
}

// ImportAsset writes a .meta sidecar for the asset, and for any parent folder
// below the top-level folder, when one does not exist yet.
func (p *Project) ImportAsset(assetPath string) error {
	abs := p.AbsPath(assetPath)
	if !pathutil.Within(filepath.ToSlash(abs), filepath.ToSlash(p.root)) || abs == p.root {
		return fmt.Errorf("import %s: outside project", assetPath)
	}

	rel := p.PathToAsset(abs)
	parts := strings.Split(rel, "/")
	start := min(2, len(parts))
	for i := start; i <= len(parts); i++ {
		target := filepath.Join(p.root, filepath.FromSlash(strings.Join(parts[:i], "/")))
		if err := p.ensureMeta(target); err != nil {
			return fmt.Errorf("import %s: %w", assetPath, err)
		}
	}
	return nil
}

func (p *Project) ensureMeta(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	metaPath := pathutil.MetaPath(path)
	if _, err := os.Stat(metaPath); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.WriteFile(metaPath, []byte(metaContent(NewGUID(), info.IsDir())), 0644); err != nil {
		return err
	}
	p.log.Debug("created meta", "asset", p.PathToAsset(path))
	return nil
}
