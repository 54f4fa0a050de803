package jsdata

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for store operations.
var (
	// ErrUnknownResource is returned when a schema references a resource
	// that was never defined.
	ErrUnknownResource = errors.New("jsdata: unknown resource")

	// ErrResourceExists is returned when a resource name is defined twice.
	ErrResourceExists = errors.New("jsdata: resource already defined")

	// ErrInvalidAssign is returned when a value that is not a record
	// sequence is assigned to a relationship field.
	ErrInvalidAssign = errors.New("jsdata: invalid relationship assignment")
)

// UnknownResourceError reports a reference to an undefined resource.
type UnknownResourceError struct {
	Name string
}

// Error returns the error string.
func (e *UnknownResourceError) Error() string {
	return fmt.Sprintf("jsdata: unknown resource %q", e.Name)
}

// Is reports whether the target error matches UnknownResourceError.
// This allows errors.Is(err, ErrUnknownResource) to return true.
func (e *UnknownResourceError) Is(err error) bool {
	return err == ErrUnknownResource
}

// IsUnknownResource returns true if the error is an UnknownResourceError.
func IsUnknownResource(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownResourceError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownResource)
}

// ResourceExistsError reports a duplicate resource definition.
type ResourceExistsError struct {
	Name string
}

// Error returns the error string.
func (e *ResourceExistsError) Error() string {
	return fmt.Sprintf("jsdata: resource %q already defined", e.Name)
}

// Is reports whether the target error matches ResourceExistsError.
func (e *ResourceExistsError) Is(err error) bool {
	return err == ErrResourceExists
}

// IsResourceExists returns true if the error is a ResourceExistsError.
func IsResourceExists(err error) bool {
	if err == nil {
		return false
	}
	var e *ResourceExistsError
	return errors.As(err, &e) || errors.Is(err, ErrResourceExists)
}

// InvalidAssignError reports an assignment of a non-sequence value to a
// computed relationship field.
type InvalidAssignError struct {
	Field string
	Value any
}

// Error returns the error string.
func (e *InvalidAssignError) Error() string {
	return fmt.Sprintf("jsdata: cannot assign %T to relationship field %q", e.Value, e.Field)
}

// Is reports whether the target error matches InvalidAssignError.
func (e *InvalidAssignError) Is(err error) bool {
	return err == ErrInvalidAssign
}

// IsInvalidAssign returns true if the error is an InvalidAssignError.
func IsInvalidAssign(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidAssignError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidAssign)
}
