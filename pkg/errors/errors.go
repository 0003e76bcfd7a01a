// Package errors provides structured error types for canvaslayout.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP service and the library
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Configuration and input validation failures
//   - NOT_FOUND_*: Resource not found
//   - NETWORK_*: Network-related errors (shared cache backends)
//   - INTERNAL_*: Unexpected internal errors
//
// Only configuration is ever rejected: once a container and its children pass
// validation, measuring and laying them out cannot fail.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfiguration, "design width must be >= 0, got %d", w)
//	if errors.Is(err, errors.ErrCodeInvalidConfiguration) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode scene %s", path)
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
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidConstraint    Code = "INVALID_CONSTRAINT"
	ErrCodeInvalidFormat        Code = "INVALID_FORMAT"
	ErrCodeInvalidPath          Code = "INVALID_PATH"
	ErrCodeDuplicateChild       Code = "DUPLICATE_CHILD"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeChildNotFound Code = "CHILD_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsInvalid reports whether err carries one of the INVALID_* codes or
// DUPLICATE_CHILD, i.e. whether the caller supplied bad input.
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidConfiguration, ErrCodeInvalidInput, ErrCodeInvalidConstraint,
		ErrCodeInvalidFormat, ErrCodeInvalidPath, ErrCodeDuplicateChild:
		return true
	}
	return false
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
