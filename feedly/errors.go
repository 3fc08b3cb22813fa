package feedly

import apierrors "github.com/olgasafonova/feedly-go/internal/errors"

// APIError is returned for any non-2xx response
type APIError = apierrors.APIError

// ValidationError is returned for bad arguments or configuration
type ValidationError = apierrors.ValidationError

// IsAPIError reports whether err wraps an *APIError
func IsAPIError(err error) bool { return apierrors.IsAPIError(err) }

// IsValidation reports whether err wraps a *ValidationError
func IsValidation(err error) bool { return apierrors.IsValidation(err) }

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int { return apierrors.StatusCode(err) }

// IsUnauthorized reports whether err is a 401 or 403 from Feedly
func IsUnauthorized(err error) bool { return apierrors.IsUnauthorized(err) }
