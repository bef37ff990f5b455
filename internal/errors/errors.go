// Package errors provides the structured error type used across the scanner.
//
// Every failure the scanner tolerates (an unreadable directory, a manifest
// that does not parse) is reported as an *Error carrying a Code and the path
// it concerns, so callers can record it and keep going.
//
//	err := errors.Wrap(errors.ErrCodeParse, cause, "invalid package.json")
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // record and continue
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error category.
type Code string

const (
	// ErrCodeFileSystem covers unreadable directories and manifests.
	ErrCodeFileSystem Code = "FILESYSTEM"
	// ErrCodeParse covers manifests whose content violates the expected structure.
	ErrCodeParse Code = "PARSE"
	// ErrCodeUnsupported is returned when no parser handles a manifest.
	ErrCodeUnsupported Code = "UNSUPPORTED"
	// ErrCodeInvalidPath is returned for a scan root that cannot be used.
	ErrCodeInvalidPath Code = "INVALID_PATH"
)

// Error is a structured error with a code, the affected path and an optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Path    string // File or directory the error is attributed to
	Message string // Human-readable message
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

// Describe returns the message and cause without the code and path prefix.
func (e *Error) Describe() string {
	if e.Cause != nil {
		if e.Message == "" {
			return e.Cause.Error()
		}
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
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

// At returns a copy of e attributed to path.
func (e *Error) At(path string) *Error {
	c := *e
	c.Path = path
	return &c
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

// PathOf returns the path attached to err, or fallback when none is set.
func PathOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Path != "" {
		return e.Path
	}
	return fallback
}

// UserMessage returns the message of err without the code and path prefix.
// For errors that are not an *Error it returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Describe()
	}
	return err.Error()
}
