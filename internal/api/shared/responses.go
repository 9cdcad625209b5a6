package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ay0711/AI/internal/platform/logger"
	"github.com/ay0711/AI/internal/redact"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	RetryAfter int    `json:"retryAfter,omitempty"`
	Code       int    `json:"-"` // Not serialized to JSON, used for logging
	TraceID    string `json:"trace_id,omitempty"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

// responseOptions holds configurable options for error responses.
type responseOptions struct {
	elevateLogLevel bool
	retryAfter      int
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level. Use for important operational issues like
// repeated auth failures.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// WithRetryAfter sets the retryAfter field and the Retry-After header.
// Non-positive values are ignored.
func WithRetryAfter(seconds int) ResponseOption {
	return func(opts *responseOptions) {
		if seconds > 0 {
			opts.retryAfter = seconds
		}
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// NewErrorResponse builds the error body for status, title and message,
// tagging it with the request's trace ID.
func NewErrorResponse(r *http.Request, status int, title, message string, opts ...ResponseOption) ErrorResponse {
	var o responseOptions
	for _, opt := range opts {
		opt(&o)
	}
	return ErrorResponse{
		Success:    false,
		Error:      title,
		Message:    message,
		RetryAfter: o.retryAfter,
		Code:       status,
		TraceID:    GetTraceID(r.Context()),
	}
}

// RespondWithError writes a JSON error response with the given status code,
// title and message. It also sets the TraceID from the request context if available.
func RespondWithError(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	title, message string,
	opts ...ResponseOption,
) {
	resp := NewErrorResponse(r, status, title, message, opts...)

	logger.FromContext(r.Context()).Debug("sending error response",
		"status_code", status,
		"error", title,
		"path", r.URL.Path,
		"method", r.Method)

	writeError(w, r, resp)
}

// RespondWithErrorAndLog writes a JSON error response and also logs the detailed error.
// This is useful for handling errors where you want to log the full error but only
// expose a sanitized version to the client.
//
// Log level strategy:
// - 5xx errors: Always logged at ERROR level
// - 4xx errors: By default logged at DEBUG level
// - 429 Too Many Requests: Logged at WARN level (operational concern)
//
// Use WithElevatedLogLevel() to raise other 4xx errors to WARN level.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	title, message string,
	err error,
	opts ...ResponseOption,
) {
	resp := NewErrorResponse(r, status, title, message, opts...)

	var responseOpts responseOptions
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logAttrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", title),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case status == http.StatusTooManyRequests:
		logLevel = slog.LevelWarn
	case responseOpts.elevateLogLevel && status >= http.StatusBadRequest:
		logLevel = slog.LevelWarn
	}

	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	writeError(w, r, resp)
}

func writeError(w http.ResponseWriter, r *http.Request, resp ErrorResponse) {
	if resp.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
	}
	RespondWithJSON(w, r, resp.Code, resp)
}
