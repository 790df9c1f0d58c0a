package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrMissingLabels  = errors.New("at least one label is required")
	ErrMissingAddress = errors.New("IP nodes require a non-empty address property")
	ErrMissingType    = errors.New("type is required")
	ErrMissingSource  = errors.New("source is required")
	ErrMissingTarget  = errors.New("target is required")
	ErrEmptyTopology  = errors.New("topology contains no nodes")
)

// Sentinel errors for entity lookups.
var (
	ErrNodeNotFound         = errors.New("node not found")
	ErrRelationshipNotFound = errors.New("relationship not found")
)

// ErrDuplicateKey indicates a unique constraint violation (maps to HTTP 409 Conflict).
var ErrDuplicateKey = errors.New("duplicate key")

// Close-hosts query errors. Source and target lookup failures are caller
// input problems and are reported before any traversal starts.
var (
	ErrSourceNotFound     = errors.New("no IP node matches the source address")
	ErrAmbiguousSource    = errors.New("more than one IP node matches the source address")
	ErrTargetNotFound     = errors.New("no IP node matches the target address")
	ErrPathBudgetExceeded = errors.New("traversal path budget exceeded")
	ErrDepthOutOfRange    = errors.New("depth exceeds the configured maximum")
)

// TraversalError reports a fault raised while the traversal was reading the graph.
// The traversal is abandoned; no partial result accompanies it.
type TraversalError struct {
	Depth int
	Err   error
}

// Error implements the error interface.
func (e *TraversalError) Error() string {
	return fmt.Sprintf("traversal failed at depth %d: %v", e.Depth, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TraversalError) Unwrap() error { return e.Err }

// TopologyError locates a validation failure inside a topology document.
type TopologyError struct {
	Kind  string
	Index int
	Err   error
}

// Error implements the error interface.
func (e *TopologyError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Kind, e.Index, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TopologyError) Unwrap() error { return e.Err }

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}
