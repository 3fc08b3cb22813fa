// Package errors provides shared error types for the Feedly client.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned when Feedly answers with a non-2xx status.
// The body is kept verbatim so callers can inspect Feedly's error payload.
type APIError struct {
	Operation  string // client operation, e.g. "get_entry_ids"
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("feedly %s: HTTP %d: %s", e.Operation, e.StatusCode, truncate(e.Body, 200))
	}
	return fmt.Sprintf("feedly %s: HTTP %d", e.Operation, e.StatusCode)
}

// NewAPIError creates an APIError for a completed request.
func NewAPIError(operation string, statusCode int, body []byte) *APIError {
	return &APIError{
		Operation:  operation,
		StatusCode: statusCode,
		Body:       string(body),
	}
}

// ValidationError indicates invalid input parameters or configuration.
type ValidationError struct {
	Field   string // field name that failed validation
	Value   string // the invalid value (may be empty for sensitive data)
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsAPIError returns true if err wraps an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsValidation returns true if err wraps a ValidationError.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether Feedly rejected the access token (401 or 403).
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
