// internal/export/clear.go
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmunix/unipack/internal/pathutil"
)

// prepareDestination empties dir of everything but hidden entries, or creates it.
func prepareDestination(dir string) error {
	entries, err := os.ReadDir(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: create destination: %v", ErrIOFailure, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("%w: read destination: %v", ErrIOFailure, err)
	}

	for _, entry := range entries {
		if pathutil.IsHidden(entry.Name()) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("%w: clear destination: %v", ErrIOFailure, err)
		}
	}
	return nil
}
