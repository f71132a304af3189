// Package errors provides structured error types for stablematch.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, readers and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages naming the offending vertex or rank
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Structural codes (DUPLICATE_NEIGHBOUR, INVALID_RANK, UNKNOWN_NEIGHBOUR,
// INCONSISTENT_PREFERENCES, INCONSISTENT_MATCHING) describe malformed
// preference data. They are fatal: a computation that hits one aborts
// and produces no matching. The remaining codes cover input, format and
// configuration failures at the boundary.
//
// Rejected proposals and exhausted proposers are ordinary control flow
// inside the engine and never surface as errors.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRank, "rank %d skips ahead of %d", rank, next)
//	if errors.Is(err, errors.ErrCodeInvalidRank) {
//	    // Handle malformed list
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "line %d", n)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Structural errors in preference data
	ErrCodeDuplicateNeighbour   Code = "DUPLICATE_NEIGHBOUR"
	ErrCodeInvalidRank          Code = "INVALID_RANK"
	ErrCodeUnknownNeighbour     Code = "UNKNOWN_NEIGHBOUR"
	ErrCodeInconsistentPrefs    Code = "INCONSISTENT_PREFERENCES"
	ErrCodeInconsistentMatching Code = "INCONSISTENT_MATCHING"
	ErrCodeDuplicateVertex      Code = "DUPLICATE_VERTEX"
	ErrCodeUnknownVertex        Code = "UNKNOWN_VERTEX"

	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeUnknownAlgorithm Code = "UNKNOWN_ALGORITHM"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// WithContext wraps err with a message, keeping the code of the first
// *Error in its chain. Errors without a code are wrapped as INTERNAL_ERROR.
func WithContext(err error, format string, args ...any) *Error {
	code := GetCode(err)
	if code == "" {
		code = ErrCodeInternal
	}
	return Wrap(code, err, format, args...)
}

// Is reports whether err has the given error code.
// It walks the whole error chain, so a wrapped structural error is still
// recognised under an outer context error.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
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
// For *Error types, returns the messages along the chain without code
// prefixes. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}
