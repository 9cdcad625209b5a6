package generation

import (
	"context"
	"time"
)

// Caller performs a single upstream generation request.
// This interface is the boundary between the pipeline and the external
// LLM service, following the hexagonal architecture pattern.
type Caller interface {
	// Call sends prompt to model and returns the generated text exactly as
	// produced upstream. Implementations must not retry or classify: a
	// failure is reported as a *RawFailure (other error values are accepted
	// and converted with AsRawFailure).
	Call(ctx context.Context, prompt string, model string) (string, error)
}

// Generator is implemented by Pipeline and consumed by the API layer and CLI.
type Generator interface {
	// Generate produces text for prompt using model. An empty model selects
	// the catalog default. Failures are always *ClassifiedError values.
	Generate(ctx context.Context, prompt string, model string, opts ...CallOption) (*Result, error)
}

// Request is a validated generation request.
type Request struct {
	// Prompt is the trimmed, non-empty prompt text.
	Prompt string

	// Model is an identifier from the allow-list.
	Model string
}

// Result is a successful generation.
type Result struct {
	// Text is the trimmed generated text. It is never empty.
	Text string `json:"text"`

	// Model is the model that produced Text.
	Model string `json:"model"`

	// Attempt is the 1-based number of the attempt that succeeded.
	Attempt int `json:"attempt"`

	// Timestamp is the time of success.
	Timestamp time.Time `json:"timestamp"`
}
