package errors

import (
	"fmt"
	"strings"
)

// APIError is returned when the server rejects a request with a non-2xx
// status. Errors holds the structured messages from an `{"errors": [...]}`
// body when one was present; for unparsable bodies it carries the raw
// response text as a single entry.
type APIError struct {
	Status int      // HTTP status code
	Errors []string // Server-provided error messages
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("server returned %d: %s", e.Status, strings.Join(e.Errors, "; "))
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// Code returns the error code for this error type.
func (e *APIError) Code() Code {
	return ErrCodeAPI
}

// EventError marks a single progress line that could not be decoded.
// It is non-fatal: the stream that produced it keeps yielding later
// events, so callers typically log the bad line and continue.
type EventError struct {
	Line  string // The raw line that failed to decode
	Cause error  // Underlying decode error
}

// Error implements the error interface.
func (e *EventError) Error() string {
	return fmt.Sprintf("undecodable progress event %q: %v", e.Line, e.Cause)
}

// Unwrap returns the underlying decode error.
func (e *EventError) Unwrap() error {
	return e.Cause
}

// Code returns the error code for this error type.
func (e *EventError) Code() Code {
	return ErrCodeEvent
}

// RateLimitedError provides additional information for rate-limited responses.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
