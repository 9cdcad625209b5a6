package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RetryEvent describes a single retry decision made by the generation pipeline.
// It is emitted after a failed attempt and before the backoff sleep.
type RetryEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Model is the model being called
	Model string `json:"model"`

	// Attempt is the 1-based number of the attempt that just failed
	Attempt int `json:"attempt"`

	// MaxAttempts is the attempt budget of the call
	MaxAttempts int `json:"max_attempts"`

	// Wait is the delay before the next attempt
	Wait time.Duration `json:"-"`

	// WaitSeconds mirrors Wait for JSON consumers
	WaitSeconds float64 `json:"wait_seconds"`

	// Reason is the failure class of the attempt (e.g. "rate_limited")
	Reason string `json:"reason"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewRetryEvent creates a RetryEvent for the given attempt.
func NewRetryEvent(model string, attempt, maxAttempts int, wait time.Duration, reason string) *RetryEvent {
	return &RetryEvent{
		ID:          uuid.New(),
		Model:       model,
		Attempt:     attempt,
		MaxAttempts: maxAttempts,
		Wait:        wait,
		WaitSeconds: wait.Seconds(),
		Reason:      reason,
		CreatedAt:   time.Now(),
	}
}

// NextAttempt returns the number of the attempt that follows the wait.
func (e *RetryEvent) NextAttempt() int {
	return e.Attempt + 1
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *RetryEvent) error
}

// HandlerFunc adapts a function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *RetryEvent) error

// HandleEvent implements EventHandler.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *RetryEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows the pipeline to publish retries without knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *RetryEvent) error
}
