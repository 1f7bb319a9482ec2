package entity

import "fmt"

// ValidationError reports a Conference field that violates a construction
// invariant. Ingest skips records that fail validation instead of aborting
// the batch.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid conference: field %s: %s", e.Field, e.Message)
}
