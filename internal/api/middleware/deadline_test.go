package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// headerCountingWriter records every WriteHeader call.
type headerCountingWriter struct {
	*httptest.ResponseRecorder
	statuses []int
}

func (w *headerCountingWriter) WriteHeader(code int) {
	w.statuses = append(w.statuses, code)
	w.ResponseRecorder.WriteHeader(code)
}

func TestDeadlineMiddleware(t *testing.T) {
	t.Run("handler owns the response after the deadline", func(t *testing.T) {
		var ctxErr error
		handler := NewDeadlineMiddleware(20*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
			ctxErr = r.Context().Err()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false}`))
		}))

		w := &headerCountingWriter{ResponseRecorder: httptest.NewRecorder()}
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/ai/generate", nil))

		assert.True(t, errors.Is(ctxErr, context.DeadlineExceeded))
		assert.Equal(t, []int{http.StatusInternalServerError}, w.statuses,
			"the middleware must not write a second status")
		assert.JSONEq(t, `{"success":false}`, w.Body.String())
	})

	t.Run("sets a deadline on the request context", func(t *testing.T) {
		var deadline time.Time
		var ok bool
		handler := NewDeadlineMiddleware(time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deadline, ok = r.Context().Deadline()
		}))

		start := time.Now()
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

		require.True(t, ok)
		assert.WithinDuration(t, start.Add(time.Minute), deadline, 5*time.Second)
	})

	t.Run("non-positive timeout leaves the context alone", func(t *testing.T) {
		var ok bool
		handler := NewDeadlineMiddleware(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok = r.Context().Deadline()
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.False(t, ok)
	})
}
