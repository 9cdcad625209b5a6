package generation

import (
	"errors"
	"fmt"
)

// Configuration errors returned when the generator cannot be constructed.
var (
	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrMissingAPIKey is returned when no upstream credential is configured.
	// It is an initialization failure, never a per-request error.
	ErrMissingAPIKey = fmt.Errorf("%w: upstream API key is not configured", ErrInvalidConfig)
)

// Kind identifies the category of a terminal generation failure.
type Kind string

// The fixed taxonomy of terminal failures.
const (
	KindInvalidRequest   Kind = "INVALID_REQUEST"
	KindAuth             Kind = "AUTH_ERROR"
	KindRateLimited      Kind = "RATE_LIMIT_EXCEEDED"
	KindQuotaExceeded    Kind = "QUOTA_EXCEEDED"
	KindGenerationFailed Kind = "GENERATION_FAILED"
)

// Sentinels matching a *ClassifiedError of the corresponding Kind via errors.Is.
var (
	ErrInvalidRequest   = errors.New("invalid generation request")
	ErrAuth             = errors.New("upstream authentication failed")
	ErrRateLimited      = errors.New("upstream rate limit exceeded")
	ErrQuotaExceeded    = errors.New("upstream quota exceeded")
	ErrGenerationFailed = errors.New("content generation failed")
)

var kindSentinels = map[Kind]error{
	KindInvalidRequest:   ErrInvalidRequest,
	KindAuth:             ErrAuth,
	KindRateLimited:      ErrRateLimited,
	KindQuotaExceeded:    ErrQuotaExceeded,
	KindGenerationFailed: ErrGenerationFailed,
}

// ClassifiedError is the only error type returned by Pipeline.Generate.
// It is built once when a terminal condition is detected and never mutated.
type ClassifiedError struct {
	// Kind is the failure category.
	Kind Kind

	// Message is a human-readable description safe to show to end users.
	Message string

	// RetryAfterSeconds is a suggested wait before trying again.
	// It is only set for KindRateLimited.
	RetryAfterSeconds int

	// Err is the underlying cause (usually the last *RawFailure), if any.
	Err error
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's Kind.
func (e *ClassifiedError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// RetryAfter returns the suggested wait in seconds and whether one is present.
func (e *ClassifiedError) RetryAfter() (int, bool) {
	return e.RetryAfterSeconds, e.Kind == KindRateLimited && e.RetryAfterSeconds > 0
}

// Retryable reports whether showing a retry affordance to the end user makes sense.
func (e *ClassifiedError) Retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindGenerationFailed
}

func newClassifiedError(kind Kind, message string, cause error) *ClassifiedError {
	return &ClassifiedError{Kind: kind, Message: message, Err: cause}
}

// AsClassified extracts a *ClassifiedError from err, if there is one.
func AsClassified(err error) (*ClassifiedError, bool) {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
