// internal/descriptor/file.go
package descriptor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load reads a descriptor file.
func Load(path string) (*Descriptor, error) {
	d := &Descriptor{}
	if _, err := toml.DecodeFile(path, d); err != nil {
		return nil, fmt.Errorf("load descriptor %s: %w", path, err)
	}
	d.path = path
	return d, nil
}

// Save writes the descriptor to path.
// Returns ErrIDChanged if path already holds a descriptor with a different ID.
func (d *Descriptor) Save(path string) error {
	if d.ID == "" {
		return fmt.Errorf("%w: id is empty", ErrInvalid)
	}

	if existing := readID(path); existing != "" && existing != d.ID {
		return fmt.Errorf("%w: %s holds %s, refusing to write %s", ErrIDChanged, path, existing, d.ID)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(d); err != nil {
		return fmt.Errorf("encode descriptor: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create descriptor dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write descriptor: %w", err)
	}

	d.path = path
	return nil
}

// readID returns the ID stored in an existing descriptor file, or "" if there is none.
func readID(path string) string {
	var head struct {
		ID string `toml:"id"`
	}
	// Missing or unparsable files carry no ID to protect.
	if _, err := toml.DecodeFile(path, &head); err != nil {
		return ""
	}
	return head.ID
}
