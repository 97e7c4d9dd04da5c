// internal/config/discover.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Discover when no config file exists in any search location.
var ErrNotFound = errors.New("config not found")

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./unipack.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "unipack", "config.toml")
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. UNIPACK_CONFIG environment variable
//  2. ./unipack.toml (current directory, usually the Unity project root)
//  3. $XDG_CONFIG_HOME/unipack/config.toml
func Discover() (string, error) {
	// 1. Check UNIPACK_CONFIG env var
	if envPath := os.Getenv("UNIPACK_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("UNIPACK_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./unipack.toml",
		DefaultPath(),
	}

	// 2-3. Check each path
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, formatPaths(paths))
}

func formatPaths(paths []string) string {
	return strings.Join(paths, ", ")
}
