// Package host models the editor host: the Unity project that owns package
// descriptors and assets, and the asset database that tracks them.
package host

//go:generate mockgen -destination=mocks/host.go -package=mocks . Host

import "context"

// Kind selects assets by file name suffix.
type Kind string

// Host is the narrow view of the editor the exporter needs.
// Asset paths are project-relative and slash-separated.
type Host interface {
	// Root returns the absolute project root.
	Root() string
	// FindAssetsOfType returns the asset paths of every asset of kind, in lexical order.
	FindAssetsOfType(ctx context.Context, kind Kind) ([]string, error)
	// PathToAsset converts an absolute filesystem path into an asset path.
	PathToAsset(fullPath string) string
	// ImportAsset registers a new or changed asset with the host.
	ImportAsset(assetPath string) error
}
