// Package errors provides structured error types for wsdiff.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and serve mode
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes separate the fatal input failures (a supplied path is missing or
// unreadable) from the non-fatal per-file conditions (a source that cannot
// be decoded as text, a language the highlighter cannot process). The
// pipeline treats the former as run-aborting and the latter as per-unit
// degradations.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPath, "path %q does not exist", path)
//	if errors.Is(err, errors.ErrCodeInvalidPath) {
//	    // Fatal: report and exit non-zero
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors (fatal)
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidPath  Code = "INVALID_PATH"
	ErrCodeInvalidFlag  Code = "INVALID_FLAG"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Per-unit conditions (non-fatal)
	ErrCodeUndecodable     Code = "UNDECODABLE_SOURCE"
	ErrCodeHighlightFailed Code = "HIGHLIGHT_FAILED"

	// Backend errors (degrade, never abort)
	ErrCodeCache Code = "CACHE_ERROR"
	ErrCodeStore Code = "STORE_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
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

// Is reports whether err carries the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns an empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsFatal reports whether an error should abort the whole run rather than
// degrade a single unit.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeUndecodable, ErrCodeHighlightFailed, ErrCodeCache, ErrCodeStore:
		return false
	}
	return true
}
