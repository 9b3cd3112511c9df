// Package errors provides structured error types for wellmap.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the preview server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (layout files, attribute names, flags)
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSelection, "no such attribute: %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidSelection) {
//	    // Handle selection error
//	}
//
//	// Configuration errors remember which file they came from
//	err := errors.Config(path, "unknown well %q", key)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidSelection Code = "INVALID_SELECTION"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidColor     Code = "INVALID_COLOR"
	ErrCodeInvalidInput     Code = "INVALID_INPUT"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Path    string // File the error originated from (optional)
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Config creates a configuration error attributed to the layout file at path.
func Config(path string, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidConfig,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	}
}

// WithPath returns a copy of err attributed to path. Errors that are not
// *Error, or that already carry a path, are returned unchanged.
func WithPath(err error, path string) error {
	var e *Error
	if !errors.As(err, &e) || e.Path != "" {
		return err
	}
	cp := *e
	cp.Path = path
	return &cp
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, preceded by
// the originating file when one is known. For other errors, returns the error
// string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		msg := e.Message
		if e.Path != "" {
			msg = fmt.Sprintf("Error in %s:\n%s", e.Path, msg)
		}
		if e.Cause != nil {
			msg = fmt.Sprintf("%s: %v", msg, e.Cause)
		}
		return msg
	}
	return err.Error()
}
