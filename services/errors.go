// services/errors.go
package services

import "fmt"

// ValidationError reports out-of-range or malformed input. The engine
// recovers locally where it can (clamping) and only returns this when
// an operation genuinely cannot proceed, e.g. overpaying a balance.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NotFoundError reports a missing sale or report.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError reports a concurrent-settlement race, e.g. two
// operators settling the same balance.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// StoreError wraps an I/O failure from the backing store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// AggregationError reports a failed read during report generation. The
// whole report is aborted; nothing partial is ever saved.
type AggregationError struct {
	Stage string
	Err   error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation failed at %s: %v", e.Stage, e.Err)
}
func (e *AggregationError) Unwrap() error { return e.Err }
