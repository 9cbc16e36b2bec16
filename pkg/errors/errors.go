// Package errors provides structured error types for the surge client.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the SDK and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - FILESYSTEM_*/ARCHIVE_*: Local publish pipeline failures
//   - NETWORK_*/API_*: Transport and server-side failures
//   - EVENT_*: Per-item decode failures in a progress stream
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDomain, "invalid domain: %s", domain)
//	if errors.Is(err, errors.ErrCodeInvalidDomain) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to reach %s", url)
//
// # Fatal vs per-item errors
//
// Filesystem, archive, network and API errors abort a publish call
// outright; no progress events are produced. [EventError] is different:
// it marks a single undecodable line in an otherwise live stream, and
// consumers are expected to log it and keep reading.
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDomain   Code = "INVALID_DOMAIN"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidEndpoint Code = "INVALID_ENDPOINT"

	// Local publish pipeline errors (abort before any upload)
	ErrCodeFilesystem    Code = "FILESYSTEM_ERROR"
	ErrCodeProjectEmpty  Code = "PROJECT_EMPTY"
	ErrCodeArchive       Code = "ARCHIVE_ERROR"
	ErrCodeEntryTooLarge Code = "ENTRY_TOO_LARGE"

	// Transport and server-side errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeAPI         Code = "API_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"
	ErrCodeNotFound    Code = "NOT_FOUND"

	// Authentication errors
	ErrCodeUnauthorized        Code = "UNAUTHORIZED"
	ErrCodeCredentialsNotFound Code = "CREDENTIALS_NOT_FOUND"

	// Progress stream errors (non-fatal, per item)
	ErrCodeEvent Code = "EVENT_ERROR"

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

// coder is implemented by error types that carry a fixed code, such as
// [APIError] and [EventError].
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
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
