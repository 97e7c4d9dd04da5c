// Package descriptor defines the package descriptor: the authoritative,
// on-disk definition of a Unity package and its file layout.
package descriptor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileSuffix identifies descriptor files inside a Unity project.
const FileSuffix = ".upkg.toml"

// Defaults applied to new descriptors.
const (
	DefaultVersion      = "1.0.0"
	DefaultUnityVersion = "2018.1"
)

// Descriptor describes a package to export.
type Descriptor struct {
	ID           string       `toml:"id"`
	PackageName  string       `toml:"package_name"`
	DisplayName  string       `toml:"display_name"`
	Version      string       `toml:"version"`
	UnityVersion string       `toml:"unity_version"`
	Description  string       `toml:"description"`
	Category     string       `toml:"category"`
	Keywords     []string     `toml:"keywords"`
	Author       *Author      `toml:"author,omitempty"`
	Dependencies []Dependency `toml:"dependencies,omitempty"`

	SourcePaths           []string `toml:"source_paths"`
	IgnorePaths           []string `toml:"ignore_paths"`
	DestinationPath       string   `toml:"destination_path"`
	LegacyDestinationPath string   `toml:"legacy_destination_path"`

	VersionConstantsPath string `toml:"version_constants_path,omitempty"`
	VersionTemplatePath  string `toml:"version_template_path,omitempty"`

	path string
}

// Author identifies the package author.
type Author struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
	URL   string `toml:"url"`
}

// Dependency is a package the described package depends on.
type Dependency struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// New creates a descriptor with a fresh ID and default versions.
func New(packageName string) *Descriptor {
	return &Descriptor{
		ID:           NewID(),
		PackageName:  packageName,
		Version:      DefaultVersion,
		UnityVersion: DefaultUnityVersion,
	}
}

// NewID returns a new opaque descriptor ID.
func NewID() string {
	return uuid.NewString()
}

// Path returns the file the descriptor was loaded from or last saved to.
func (d *Descriptor) Path() string {
	return d.path
}

// Dir returns the directory containing the descriptor file.
func (d *Descriptor) Dir() string {
	if d.path == "" {
		return ""
	}
	return filepath.Dir(d.path)
}

// Validate checks that the fields required for a manifest are set.
func (d *Descriptor) Validate() error {
	var missing []string
	if strings.TrimSpace(d.PackageName) == "" {
		missing = append(missing, "package_name")
	}
	if strings.TrimSpace(d.DisplayName) == "" {
		missing = append(missing, "display_name")
	}
	if strings.TrimSpace(d.Version) == "" {
		missing = append(missing, "version")
	}
	if strings.TrimSpace(d.UnityVersion) == "" {
		missing = append(missing, "unity_version")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalid, strings.Join(missing, ", "))
	}
	return nil
}

// HasAuthor reports whether an author should be emitted.
func (d *Descriptor) HasAuthor() bool {
	return d.Author != nil && d.Author.Name != ""
}

// String returns a short label for logs and errors.
func (d *Descriptor) String() string {
	name := d.PackageName
	if name == "" {
		name = d.DisplayName
	}
	return fmt.Sprintf("%s (%s)", name, d.ID)
}
