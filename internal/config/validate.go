// internal/config/validate.go
package config

import (
	"fmt"
	"os"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validLegacyFormats = map[string]bool{
	"unitypackage": true, "zip": true, "mpq": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.Legacy.Format != "" && !validLegacyFormats[c.Legacy.Format] {
		errs = append(errs, fmt.Sprintf("legacy.format: must be one of unitypackage, zip, mpq; got %q", c.Legacy.Format))
	}

	if strings.ContainsAny(c.Codegen.Filename, `/\`) {
		errs = append(errs, fmt.Sprintf("codegen.filename: must be a file name, not a path; got %q", c.Codegen.Filename))
	}

	if c.Project.Root != "" {
		info, err := os.Stat(c.Project.Root)
		switch {
		case os.IsNotExist(err):
			errs = append(errs, fmt.Sprintf("project.root: directory %q does not exist", c.Project.Root))
		case err == nil && !info.IsDir():
			errs = append(errs, fmt.Sprintf("project.root: %q is not a directory", c.Project.Root))
		}
	}

	return errs
}
