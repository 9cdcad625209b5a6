// Package mocks provides centralized mock implementations for testing.
//
// The mocks implement the generation.Caller and generation.Generator
// interfaces with function fields and call tracking, so tests in different
// packages can script upstream behavior the same way.
//
// Usage:
//
//	caller := mocks.NewMockCallerWithSequence(
//	    &generation.RawFailure{StatusCode: 503, Message: "overloaded"},
//	    nil,
//	)
//	caller.Text = "Hello"
//
//	// First call fails, second call returns "Hello"
package mocks
