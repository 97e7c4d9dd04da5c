// internal/descriptor/store.go
package descriptor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/hbollon/go-edlib"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"github.com/vmunix/unipack/internal/host"
	"github.com/vmunix/unipack/internal/pathutil"
)

// Kind selects descriptor files through the host.
const Kind = host.Kind(FileSuffix)

// loadConcurrency bounds the number of descriptor files parsed at once.
const loadConcurrency = 8

// suggestThreshold is the minimum Jaro-Winkler similarity for a "did you mean" hint.
const suggestThreshold = 0.8

// Store finds and loads descriptors from the project. Nothing is cached:
// every call reads the files fresh from disk.
type Store struct {
	host host.Host
	log  *slog.Logger
	fold cases.Caser
}

// NewStore creates a descriptor store backed by h.
func NewStore(h host.Host, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{host: h, log: logger, fold: cases.Fold()}
}

// All loads every descriptor in the project, in discovery order.
// Descriptors without an ID are assigned one, which is saved back to disk.
func (s *Store) All(ctx context.Context) ([]*Descriptor, error) {
	assets, err := s.host.FindAssetsOfType(ctx, Kind)
	if err != nil {
		return nil, fmt.Errorf("enumerate descriptors: %w", err)
	}

	results := make([]*Descriptor, len(assets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)

	for i, asset := range assets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := s.load(asset)
			if err != nil {
				return err
			}
			results[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Store) load(asset string) (*Descriptor, error) {
	file := s.absPath(asset)
	d, err := Load(file)
	if err != nil {
		return nil, err
	}

	if d.ID == "" {
		d.ID = NewID()
		if err := d.Save(file); err != nil {
			return nil, fmt.Errorf("assign id to %s: %w", asset, err)
		}
		s.log.Info("assigned descriptor id", "asset", asset, "id", d.ID)
	}
	return d, nil
}

// Get loads the descriptor with the given ID. Matching is case-insensitive.
func (s *Store) Get(ctx context.Context, id string) (*Descriptor, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	if d := s.Find(all, id); d != nil {
		return d, nil
	}
	return nil, s.notFound(all, id)
}

// Find returns the descriptor in descs whose ID matches id, or nil.
func (s *Store) Find(descs []*Descriptor, id string) *Descriptor {
	want := s.fold.String(id)
	for _, d := range descs {
		if s.fold.String(d.ID) == want {
			return d
		}
	}
	return nil
}

// Suggest returns the ID in descs closest to id, or "" if none is close enough.
func (s *Store) Suggest(descs []*Descriptor, id string) string {
	want := s.fold.String(id)
	var best string
	var bestScore float32
	for _, d := range descs {
		score := edlib.JaroWinklerSimilarity(want, s.fold.String(d.ID))
		if score > bestScore {
			best, bestScore = d.ID, score
		}
	}
	if bestScore < suggestThreshold {
		return ""
	}
	return best
}

func (s *Store) notFound(descs []*Descriptor, id string) error {
	if hint := s.Suggest(descs, id); hint != "" {
		return fmt.Errorf("%w: %s (did you mean %s?)", ErrNotFound, id, hint)
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Create writes a new descriptor named after packageName into dir, a
// project-relative folder, and registers it with the host.
func (s *Store) Create(dir, packageName, displayName string) (*Descriptor, error) {
	d := New(packageName)
	d.DisplayName = displayName

	asset := pathutil.Clean(path.Join(dir, pathutil.SanitizeFilename(packageName)+FileSuffix))
	target := s.absPath(asset)
	if _, err := os.Stat(target); err == nil {
		return nil, fmt.Errorf("create descriptor: %s already exists", asset)
	}
	if err := d.Save(target); err != nil {
		return nil, err
	}
	if err := s.host.ImportAsset(asset); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) absPath(asset string) string {
	return filepath.FromSlash(pathutil.Normalize(s.host.Root(), asset))
}
