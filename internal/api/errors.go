package api

import (
	"errors"
	"net/http"

	"github.com/ay0711/AI/internal/api/shared"
	"github.com/ay0711/AI/internal/generation"
	"github.com/ay0711/AI/internal/redact"
)

// Error titles returned in the "error" field of error responses.
const (
	TitleInvalidRequest     = "Invalid request"
	TitleBodyTooLarge       = "Request body too large"
	TitleAuth               = "Authentication failed"
	TitleRateLimited        = "Rate limit exceeded"
	TitleQuotaExceeded      = "API quota exceeded"
	TitleGenerationFailed   = "Content generation failed"
	TitleServiceUnavailable = "AI service not available"
	TitleInternal           = "Internal server error"
	TitleRouteNotFound      = "Route not found"
)

const (
	msgContentsRequired   = "Contents field is required and must be a non-empty string"
	msgMalformedJSON      = "Request body must be valid JSON"
	msgBodyTooLarge       = "Request body exceeds the 10MB limit"
	msgServiceUnavailable = "AI service failed to initialize. Check API key configuration."
	msgInternal           = "Something went wrong"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, generation.ErrInvalidRequest),
		errors.Is(err, shared.ErrMalformedJSON):
		return http.StatusBadRequest

	case errors.Is(err, shared.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, generation.ErrAuth):
		return http.StatusUnauthorized

	case errors.Is(err, generation.ErrRateLimited),
		errors.Is(err, generation.ErrQuotaExceeded):
		return http.StatusTooManyRequests

	// Generation failures, missing configuration and anything unclassified
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorTitle returns the short, stable title for err.
func GetErrorTitle(err error) string {
	switch {
	case errors.Is(err, generation.ErrInvalidRequest),
		errors.Is(err, shared.ErrMalformedJSON):
		return TitleInvalidRequest
	case errors.Is(err, shared.ErrBodyTooLarge):
		return TitleBodyTooLarge
	case errors.Is(err, generation.ErrAuth):
		return TitleAuth
	case errors.Is(err, generation.ErrRateLimited):
		return TitleRateLimited
	case errors.Is(err, generation.ErrQuotaExceeded):
		return TitleQuotaExceeded
	case errors.Is(err, generation.ErrGenerationFailed):
		return TitleGenerationFailed
	case errors.Is(err, generation.ErrMissingAPIKey):
		return TitleServiceUnavailable
	default:
		return TitleInternal
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Messages of classified generation errors are
// returned redacted. Unclassified errors are only described when
// exposeInternal is set (development mode).
func GetSafeErrorMessage(err error, exposeInternal bool) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	if ce, ok := generation.AsClassified(err); ok {
		return redact.String(ce.Message)
	}

	switch {
	case errors.Is(err, shared.ErrMalformedJSON):
		return msgMalformedJSON
	case errors.Is(err, shared.ErrBodyTooLarge):
		return msgBodyTooLarge
	case errors.Is(err, generation.ErrMissingAPIKey):
		return msgServiceUnavailable
	}

	if exposeInternal {
		return redact.Error(err)
	}
	return msgInternal
}

// errorResponseOptions returns the response options implied by err.
func errorResponseOptions(err error) []shared.ResponseOption {
	if ce, ok := generation.AsClassified(err); ok {
		if seconds, ok := ce.RetryAfter(); ok {
			return []shared.ResponseOption{shared.WithRetryAfter(seconds)}
		}
	}
	return nil
}
