package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/ay0711/AI/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, prompt, model string, opts ...generation.CallOption) (*generation.Result, error)

	// Default response values
	Result *generation.Result
	Err    error

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Prompts contains all prompts passed to Generate calls
		Prompts []string

		// Models contains all models passed to Generate calls
		Models []string
	}
}

var _ generation.Generator = (*MockGenerator)(nil)

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(
	ctx context.Context,
	prompt string,
	model string,
	opts ...generation.CallOption,
) (*generation.Result, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Prompts = append(m.GenerateCalls.Prompts, prompt)
	m.GenerateCalls.Models = append(m.GenerateCalls.Models, model)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, prompt, model, opts...)
	}

	return m.Result, m.Err
}

// CallCount returns the number of Generate calls so far.
func (m *MockGenerator) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// NewMockGeneratorWithText creates a MockGenerator that succeeds on the first attempt
func NewMockGeneratorWithText(text, model string) *MockGenerator {
	return &MockGenerator{
		Result: &generation.Result{
			Text:      text,
			Model:     model,
			Attempt:   1,
			Timestamp: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{
		Err: err,
	}
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	m.GenerateCalls.Count = 0
	m.GenerateCalls.Prompts = nil
	m.GenerateCalls.Models = nil
}
