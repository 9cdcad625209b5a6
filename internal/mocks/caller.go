package mocks

import (
	"context"
	"sync"

	"github.com/ay0711/AI/internal/generation"
)

// MockCaller implements generation.Caller for testing.
//
// Without CallFn, the n-th call returns Failures[n-1] when that entry is
// non-nil and Text otherwise. Calls past the end of Failures repeat its
// last entry.
type MockCaller struct {
	// CallFn allows test cases to mock the Call behavior
	CallFn func(ctx context.Context, prompt, model string) (string, error)

	// Scripted outcomes
	Failures []*generation.RawFailure
	Text     string

	mu      sync.Mutex
	prompts []string
	models  []string
}

var _ generation.Caller = (*MockCaller)(nil)

// Call implements the generation.Caller interface
func (m *MockCaller) Call(ctx context.Context, prompt, model string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.models = append(m.models, model)
	n := len(m.prompts)
	m.mu.Unlock()

	if m.CallFn != nil {
		return m.CallFn(ctx, prompt, model)
	}

	if len(m.Failures) > 0 {
		idx := min(n, len(m.Failures)) - 1
		if f := m.Failures[idx]; f != nil {
			return "", f
		}
	}
	return m.Text, nil
}

// Calls returns the number of calls so far.
func (m *MockCaller) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns the prompts received, in order.
func (m *MockCaller) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Models returns the models received, in order.
func (m *MockCaller) Models() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.models...)
}

// NewMockCallerWithText creates a MockCaller that always returns text
func NewMockCallerWithText(text string) *MockCaller {
	return &MockCaller{Text: text}
}

// NewMockCallerWithSequence creates a MockCaller whose calls fail with the
// given failures in order. A nil entry succeeds with Text.
func NewMockCallerWithSequence(failures ...*generation.RawFailure) *MockCaller {
	return &MockCaller{Failures: failures}
}

// NewMockCallerThatFails creates a MockCaller that always fails with f
func NewMockCallerThatFails(f *generation.RawFailure) *MockCaller {
	return &MockCaller{Failures: []*generation.RawFailure{f}}
}
