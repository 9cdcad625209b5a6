package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ay0711/AI/internal/generation"
	"github.com/ay0711/AI/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

// callerFunc adapts a function to generation.Caller and counts calls.
type callerFunc struct {
	mu    sync.Mutex
	calls int
	fn    func(attempt int, prompt, model string) (string, error)
}

func (c *callerFunc) Call(_ context.Context, prompt, model string) (string, error) {
	c.mu.Lock()
	c.calls++
	attempt := c.calls
	c.mu.Unlock()
	return c.fn(attempt, prompt, model)
}

func (c *callerFunc) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func replying(text string) *callerFunc {
	return &callerFunc{fn: func(int, string, string) (string, error) { return text, nil }}
}

func failing(f *generation.RawFailure) *callerFunc {
	return &callerFunc{fn: func(int, string, string) (string, error) { return "", f }}
}

var (
	rateLimitFailure = &generation.RawFailure{StatusCode: 429, Code: "RESOURCE_EXHAUSTED", Message: "Resource has been exhausted"}
	quotaFailure     = &generation.RawFailure{StatusCode: 400, Code: "FAILED_PRECONDITION", Message: "You exceeded your current quota"}
	authFailure      = &generation.RawFailure{StatusCode: 401, Code: "UNAUTHENTICATED", Message: "invalid credentials"}
	overloadFailure  = &generation.RawFailure{StatusCode: 503, Code: "UNAVAILABLE", Message: "The model is overloaded"}
)

var handlerTime = time.Date(2025, time.May, 4, 10, 30, 0, 0, time.UTC)

// newTestHandler builds a handler over a real pipeline that never sleeps.
func newTestHandler(t *testing.T, caller generation.Caller, opts ...HandlerOption) (*GenerationHandler, *logger.TestLogBuffer) {
	t.Helper()

	log, buf := logger.GetTestLogger(t)
	catalog, err := generation.NewModelCatalog("gemini-2.5-flash", []string{"gemini-2.5-flash", "gemini-1.5-pro"})
	require.NoError(t, err)

	pipeline, err := generation.NewPipeline(caller, catalog, log, generation.DefaultConfig(),
		generation.WithSleeper(func(context.Context, time.Duration) error { return nil }),
		generation.WithClock(func() time.Time { return handlerTime }))
	require.NoError(t, err)

	return NewGenerationHandler(pipeline, catalog, log, opts...), buf
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var raw []byte
	switch b := body.(type) {
	case string:
		raw = []byte(b)
	default:
		var err error
		raw, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}
