package collection

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for collection operations.
var (
	// ErrNoIndex is returned when an indexed retrieval names an index
	// that was never created.
	ErrNoIndex = errors.New("jsdata: no such index")

	// ErrInvalidID is returned when a record id is not usable as a
	// lookup key.
	ErrInvalidID = errors.New("jsdata: invalid record id")
)

// NoIndexError reports an indexed retrieval against a missing index.
type NoIndexError struct {
	Collection string
	Index      string
}

// Error returns the error string.
func (e *NoIndexError) Error() string {
	return fmt.Sprintf("jsdata: collection %q has no index %q", e.Collection, e.Index)
}

// Is reports whether the target error matches NoIndexError.
// This allows errors.Is(err, ErrNoIndex) to return true.
func (e *NoIndexError) Is(err error) bool {
	return err == ErrNoIndex
}

// IsNoIndex returns true if the error is a NoIndexError.
func IsNoIndex(err error) bool {
	if err == nil {
		return false
	}
	var e *NoIndexError
	return errors.As(err, &e) || errors.Is(err, ErrNoIndex)
}

// InvalidIDError reports a record id that cannot be used as a map key.
type InvalidIDError struct {
	Collection string
	Value      any
}

// Error returns the error string.
func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("jsdata: collection %q: invalid record id of type %T", e.Collection, e.Value)
}

// Is reports whether the target error matches InvalidIDError.
func (e *InvalidIDError) Is(err error) bool {
	return err == ErrInvalidID
}

// IsInvalidID returns true if the error is an InvalidIDError.
func IsInvalidID(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidIDError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidID)
}
