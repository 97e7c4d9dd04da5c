package batch

import (
	"fmt"
	"strings"
)

// BatchError is returned by Driver.Run when one or more descriptors failed.
type BatchError struct {
	Failed []Failure
}

// Failure is one descriptor that could not be processed.
type Failure struct {
	ID  string
	Err error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch failed for %d package(s): %s", len(e.Failed), strings.Join(e.IDs(), ", "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, f := range e.Failed {
		errs[i] = f.Err
	}
	return errs
}

// IDs returns the failed descriptor IDs in processing order.
func (e *BatchError) IDs() []string {
	ids := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		ids[i] = f.ID
	}
	return ids
}
