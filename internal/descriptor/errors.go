// internal/descriptor/errors.go
package descriptor

import "errors"

var (
	// ErrInvalid indicates fields required for a valid manifest are empty.
	ErrInvalid = errors.New("invalid descriptor")

	// ErrNotFound indicates no descriptor matches the requested ID.
	ErrNotFound = errors.New("descriptor not found")

	// ErrIDChanged indicates an attempt to overwrite a descriptor file with a different ID.
	ErrIDChanged = errors.New("descriptor id is immutable")

	// ErrMissingOutputPath indicates an output location is not configured.
	// Operations that return it are skipped, not failed.
	ErrMissingOutputPath = errors.New("no output path configured")
)
