// Package errors provides structured error types for idef0.
//
// Errors carry a machine-readable [Code] next to the human-readable message so
// the CLI can pick exit behaviour and wording without string matching.
//
// # Error Codes
//
//   - INVALID_*: bad flags, formats, configuration or output paths
//   - AMBIGUOUS_ROOT: the model does not name exactly one root process
//   - FILE_NOT_FOUND: an input or config file is missing
//   - INTERNAL_ERROR / UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // ...
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidConfig, cause, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeAmbiguousRoot Code = "AMBIGUOUS_ROOT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

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
func (e *Error) Unwrap() error { return e.Cause }

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err, or any error it wraps, is an *Error with code.
// Codes of both [Error] and [AmbiguousRootError] are recognised.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from err, or "" if it carries none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ar *AmbiguousRootError
	if errors.As(err, &ar) {
		return ErrCodeAmbiguousRoot
	}
	return ""
}

// UserMessage returns a message suitable for printing to a terminal.
// For *Error values the code prefix is dropped.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// AmbiguousRootError reports that a model names zero or several root
// processes. Candidates lists every "is composed of" subject found, in the
// order they first appeared.
type AmbiguousRootError struct {
	Candidates []string
}

// Error implements the error interface.
func (e *AmbiguousRootError) Error() string {
	quoted := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf("one root process required, found %d: [%s]", len(e.Candidates), strings.Join(quoted, ", "))
}

// Code returns the error code for this error type.
func (e *AmbiguousRootError) Code() Code { return ErrCodeAmbiguousRoot }
