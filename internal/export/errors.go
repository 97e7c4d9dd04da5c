// internal/export/errors.go
package export

import "errors"

var (
	// ErrIOFailure indicates a copy, delete or create failure during an export.
	// The destination is left as it was when the failure happened.
	ErrIOFailure = errors.New("export i/o failure")

	// ErrDestinationExists indicates two sources map to the same destination file.
	ErrDestinationExists = errors.New("destination file already written")

	// ErrUnsafeDestination indicates clearing the destination would delete project content.
	ErrUnsafeDestination = errors.New("unsafe destination")

	// ErrNoArchiveWriter indicates a legacy export was requested without an archive writer.
	ErrNoArchiveWriter = errors.New("no archive writer configured")
)
