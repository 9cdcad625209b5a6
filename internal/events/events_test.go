package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRetryEvent(t *testing.T) {
	event := NewRetryEvent("gemini-2.5-flash", 1, 3, 2*time.Second, "rate_limited")

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, "gemini-2.5-flash", event.Model)
	assert.Equal(t, 1, event.Attempt)
	assert.Equal(t, 2, event.NextAttempt())
	assert.Equal(t, 3, event.MaxAttempts)
	assert.Equal(t, 2*time.Second, event.Wait)
	assert.Equal(t, 2.0, event.WaitSeconds)
	assert.Equal(t, "rate_limited", event.Reason)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)
}

func TestRetryEventJSON(t *testing.T) {
	event := NewRetryEvent("gemini-1.5-pro", 2, 3, 4*time.Second, "retryable")

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, float64(2), decoded["attempt"])
	assert.Equal(t, float64(3), decoded["max_attempts"])
	assert.Equal(t, 4.0, decoded["wait_seconds"])
	assert.Equal(t, "retryable", decoded["reason"])
	assert.NotContains(t, decoded, "Wait", "raw duration should not be serialized")
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *RetryEvent
	// Error to return from HandleEvent
	HandlerError error
	// Number of times HandleEvent was called
	HandledCount int
}

// HandleEvent implements EventHandler
func (m *MockEventHandler) HandleEvent(ctx context.Context, event *RetryEvent) error {
	m.LastEvent = event
	m.HandledCount++
	return m.HandlerError
}

func TestHandlerFunc(t *testing.T) {
	var got *RetryEvent
	h := HandlerFunc(func(ctx context.Context, event *RetryEvent) error {
		got = event
		return nil
	})

	event := NewRetryEvent("m", 1, 2, time.Second, "retryable")
	require.NoError(t, h.HandleEvent(context.Background(), event))
	assert.Same(t, event, got)
}
