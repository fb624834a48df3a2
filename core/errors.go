package core

import "github.com/pkg/errors"

// FieldError pins a message to a single input field, eg. a negative
// marks_obtained or a malformed assessment date.
type FieldError struct {
	Field string
	Error string
}

// ValidationError rejects malformed or out-of-range input before any
// mutation happens. Fields carries the per-field breakdown rendered to
// API callers.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// ConflictError reports a uniqueness violation on an identity attribute
// (email, student/teacher identifier). Uniqueness is ultimately enforced
// by the record store, so a conflict can still surface after the pre-write
// check under concurrent creation.
type ConflictError struct {
	message string
}

func NewConflictError(msg string) error {
	return &ConflictError{message: msg}
}

func (c ConflictError) Error() string {
	return c.message
}

func IsConflict(err error) bool {
	_, ok := errors.Cause(err).(*ConflictError)
	return ok
}

// DependencyError marks a record-store failure (unreachable database,
// aborted transaction). Error() stays generic; the underlying cause is
// kept for internal logging only.
type DependencyError struct {
	message string
	err     error
}

func NewDependencyError(err error, msg string) error {
	return &DependencyError{message: msg, err: err}
}

func (d DependencyError) Error() string {
	return d.message
}

// Unwrap exposes the underlying store error to loggers.
func (d DependencyError) Unwrap() error {
	return d.err
}

func IsDependency(err error) bool {
	_, ok := errors.Cause(err).(*DependencyError)
	return ok
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
