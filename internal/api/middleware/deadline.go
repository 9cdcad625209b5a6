package middleware

import (
	"context"
	"net/http"
	"time"
)

// NewDeadlineMiddleware bounds each request context by timeout.
// It never writes to the response: when the deadline passes, the handler
// observes the expired context and answers with its own error body (a JSON
// error or a final stream event). A non-positive timeout disables it.
func NewDeadlineMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
