// Package errors provides standardized error handling for the concatd
// application. It defines the error kinds the concatenation pipeline can
// fail with and helper functions for consistent error creation, wrapping,
// and classification.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Validation kinds, raised before a run starts
	SelectionEmpty
	OutputPathInvalid
	InvalidConfig
	// Filesystem kinds, raised while walking or writing
	FileNotFound
	PermissionDenied
	ReadFailed
	WriteFailed
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors tied to a specific path on disk
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ValidationError represents errors found while checking a session before the
// run starts. They block the run and are surfaced immediately.
type ValidationError struct {
	ApplicationError
}

// NewValidationError creates a new validation error
func NewValidationError(msg string, kind ErrorKind) *ValidationError {
	return &ValidationError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: kind,
		},
	}
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind carried anywhere in err's chain, or Unknown.
func KindOf(err error) ErrorKind {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind()
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Kind()
	}
	return Unknown
}

// IsSelectionEmpty checks if the error means nothing was selected
func IsSelectionEmpty(err error) bool {
	return KindOf(err) == SelectionEmpty
}

// IsOutputPathInvalid checks if the error means the output target is unusable
func IsOutputPathInvalid(err error) bool {
	return KindOf(err) == OutputPathInvalid
}

// IsPermissionDenied checks if the error is a permission error
func IsPermissionDenied(err error) bool {
	return KindOf(err) == PermissionDenied
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	return KindOf(err) == FileNotFound
}

// IsReadFailed checks if the error came from reading a source file
func IsReadFailed(err error) bool {
	return KindOf(err) == ReadFailed
}

// IsWriteFailed checks if the error came from writing the output
func IsWriteFailed(err error) bool {
	return KindOf(err) == WriteFailed
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	return KindOf(err) == InvalidConfig
}
