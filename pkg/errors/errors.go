// Package errors provides structured error types for hypercouple.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the engine
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
//   - INVALID_INPUT: malformed documents, empty ids, duplicate edge ids, cycles
//   - UNKNOWN_ALGORITHM: the requested coupling algorithm is not registered
//   - RESOURCE_EXCEEDED: the input is larger than the configured enumeration ceiling
//   - CANCELED: the caller abandoned the computation
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "edge %s: empty source id", id)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Engine errors
	ErrCodeUnknownAlgorithm Code = "UNKNOWN_ALGORITHM"
	ErrCodeResourceExceeded Code = "RESOURCE_EXCEEDED"
	ErrCodeCanceled         Code = "CANCELED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// coder is implemented by typed errors that carry their own code.
type coder interface {
	Code() Code
}

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
// The outermost coded error in the chain decides.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Both *Error and typed errors with a Code method are recognized; the
// outermost one in the chain wins. Returns empty string otherwise.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
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

// UnknownAlgorithmError is returned when a coupling algorithm id has no
// registry entry.
type UnknownAlgorithmError struct {
	ID string // The offending algorithm id
}

// Error implements the error interface.
func (e *UnknownAlgorithmError) Error() string {
	return "Unknown coupling algorithm: " + e.ID
}

// Code returns the error code for this error type.
func (e *UnknownAlgorithmError) Code() Code {
	return ErrCodeUnknownAlgorithm
}

// ResourceExceededError is returned before an exponential enumeration starts
// when the input exceeds a configured ceiling.
type ResourceExceededError struct {
	Bound  string // Name of the exceeded bound, e.g. "max_nodes"
	Limit  int    // Configured ceiling
	Actual int    // Observed value
}

// Error implements the error interface.
func (e *ResourceExceededError) Error() string {
	return fmt.Sprintf("resource limit exceeded: %s is %d, got %d", e.Bound, e.Limit, e.Actual)
}

// Code returns the error code for this error type.
func (e *ResourceExceededError) Code() Code {
	return ErrCodeResourceExceeded
}
