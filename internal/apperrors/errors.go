// Package apperrors defines the error taxonomy shared by the service and
// repository layers. Handlers translate these into transport statuses;
// nothing below the handlers knows about HTTP.
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input, such as an empty message body.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports a duplicate unique key.
type ConflictError struct {
	Kind string
	Key  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Key)
}

// NotFoundError reports an absent entity.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// ForbiddenError reports an authenticated caller attempting an operation
// the ownership rules do not allow.
type ForbiddenError struct {
	Caller string
	Action string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("user %q may not %s", e.Caller, e.Action)
}

// UnavailableError reports that the backing store could not be reached.
// It is distinct from an empty result, which is a success.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: storage unavailable: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target *ForbiddenError
	return errors.As(err, &target)
}

func IsUnavailable(err error) bool {
	var target *UnavailableError
	return errors.As(err, &target)
}
