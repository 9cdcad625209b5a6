package generation

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// step is one scripted adapter outcome.
type step struct {
	text string
	err  error
}

// scriptedCaller replays steps in order; the last step repeats once exhausted.
type scriptedCaller struct {
	mu      sync.Mutex
	steps   []step
	calls   int
	prompts []string
	models  []string
}

func newScriptedCaller(steps ...step) *scriptedCaller {
	return &scriptedCaller{steps: steps}
}

func (c *scriptedCaller) Call(ctx context.Context, prompt string, model string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.calls
	if idx >= len(c.steps) {
		idx = len(c.steps) - 1
	}
	c.calls++
	c.prompts = append(c.prompts, prompt)
	c.models = append(c.models, model)

	s := c.steps[idx]
	return s.text, s.err
}

func (c *scriptedCaller) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// recordingSleeper records requested waits without sleeping.
type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	return nil
}

func (s *recordingSleeper) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

var fixedTime = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog(t *testing.T) *ModelCatalog {
	t.Helper()
	catalog, err := NewModelCatalog("model-a", []string{"model-a", "model-b"})
	require.NoError(t, err)
	return catalog
}

func newTestPipeline(t *testing.T, caller Caller, sleeper *recordingSleeper, opts ...Option) *Pipeline {
	t.Helper()
	opts = append([]Option{
		WithSleeper(sleeper.Sleep),
		WithClock(func() time.Time { return fixedTime }),
	}, opts...)

	p, err := NewPipeline(caller, testCatalog(t), discardLogger(), DefaultConfig(), opts...)
	require.NoError(t, err)
	return p
}

func rateLimited() step {
	return step{err: &RawFailure{StatusCode: 429, Code: "RESOURCE_EXHAUSTED", Message: "Resource has been exhausted (e.g. check quota)."}}
}

func unavailable() step {
	return step{err: &RawFailure{StatusCode: 503, Code: "UNAVAILABLE", Message: "The model is overloaded. Please try again later."}}
}

func requireKind(t *testing.T, err error, kind Kind) *ClassifiedError {
	t.Helper()
	require.Error(t, err)
	ce, ok := AsClassified(err)
	require.True(t, ok, "expected *ClassifiedError, got %T", err)
	require.Equal(t, kind, ce.Kind, "unexpected kind: %v", ce)
	return ce
}
