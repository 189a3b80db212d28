// Package errors provides structured error types for pywrangler.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the sync pipeline
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - CONFIG_*: wrangler configuration problems (pre-flight, fatal)
//   - MANIFEST_*: pyproject.toml problems (pre-flight, fatal)
//   - INSTALL_FAILED: an installer exited non-zero, recoverable by user action
//   - ENV_SETUP_FAILED: the sync environments could not be created
//   - COMMAND_NOT_FOUND: a required executable is missing from PATH
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeManifestNotFound, "no pyproject.toml found in %s or any parent directory", dir)
//	if errors.Is(err, errors.ErrCodeManifestNotFound) {
//	    // Handle missing manifest
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeConfigInvalid, origErr, "failed to parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Wrangler configuration errors
	ErrCodeConfigNotFound Code = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  Code = "CONFIG_INVALID"

	// pyproject.toml errors
	ErrCodeManifestNotFound   Code = "MANIFEST_NOT_FOUND"
	ErrCodeManifestInvalid    Code = "MANIFEST_INVALID"
	ErrCodeInvalidRequirement Code = "INVALID_REQUIREMENT"

	// Sync pipeline errors
	ErrCodeInstallFailed  Code = "INSTALL_FAILED"
	ErrCodeEnvSetupFailed Code = "ENV_SETUP_FAILED"

	// Process invocation errors
	ErrCodeCommandNotFound Code = "COMMAND_NOT_FOUND"

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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
