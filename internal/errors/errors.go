// Package errors provides standardized domain errors with codes for the
// normalization engine.
//
// Usage:
//
//	// In components - return typed errors
//	if obs.Count < 1 {
//	    return errors.MalformedInputf("count must be >= 1, got %d", obs.Count)
//	}
//
//	// In callers - check with errors.Is
//	if errors.Is(err, errors.ErrMalformedInput) {
//	    // skip the entry, keep the pass going
//	}
//
// Recovered rule and hierarchy problems are not errors at all: they are
// reported as domain.Conflict values and never abort a pass.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the engine.
const (
	CodeMalformedInput Code = "MALFORMED_INPUT"
	CodeValidation     Code = "VALIDATION"
)

// Error is a domain error with a code and message.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors for use with errors.Is().
var (
	ErrMalformedInput = &Error{Code: CodeMalformedInput, Message: "malformed input"}
	ErrValidation     = &Error{Code: CodeValidation, Message: "validation error"}
)

// MalformedInputf creates a malformed input error with formatted message.
func MalformedInputf(format string, args ...any) *Error {
	return &Error{Code: CodeMalformedInput, Message: fmt.Sprintf(format, args...)}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
