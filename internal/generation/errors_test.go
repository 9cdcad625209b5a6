package generation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifiedErrorIs(t *testing.T) {
	sentinels := map[Kind]error{
		KindInvalidRequest:   ErrInvalidRequest,
		KindAuth:             ErrAuth,
		KindRateLimited:      ErrRateLimited,
		KindQuotaExceeded:    ErrQuotaExceeded,
		KindGenerationFailed: ErrGenerationFailed,
	}

	for kind, sentinel := range sentinels {
		t.Run(string(kind), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", newClassifiedError(kind, "msg", nil))
			assert.True(t, errors.Is(err, sentinel))

			for otherKind, other := range sentinels {
				if otherKind != kind {
					assert.False(t, errors.Is(err, other), "%s should not match %s", kind, otherKind)
				}
			}
		})
	}
}

func TestClassifiedErrorFormatting(t *testing.T) {
	cause := &RawFailure{StatusCode: 503, Message: "overloaded"}
	err := newClassifiedError(KindGenerationFailed, "Content generation failed after 3 attempts: overloaded", cause)

	assert.Equal(t, "GENERATION_FAILED: Content generation failed after 3 attempts: overloaded", err.Error())
	assert.Same(t, cause, errors.Unwrap(err))
	assert.True(t, err.Retryable())
}

func TestClassifiedErrorRetryAfter(t *testing.T) {
	limited := &ClassifiedError{Kind: KindRateLimited, RetryAfterSeconds: 120}
	seconds, ok := limited.RetryAfter()
	assert.True(t, ok)
	assert.Equal(t, 120, seconds)

	quota := &ClassifiedError{Kind: KindQuotaExceeded, RetryAfterSeconds: 120}
	_, ok = quota.RetryAfter()
	assert.False(t, ok, "only rate limiting carries a retry hint")
	assert.False(t, quota.Retryable())
}

func TestAsClassified(t *testing.T) {
	_, ok := AsClassified(errors.New("plain"))
	assert.False(t, ok)

	ce, ok := AsClassified(fmt.Errorf("x: %w", newClassifiedError(KindAuth, "bad key", nil)))
	assert.True(t, ok)
	assert.Equal(t, KindAuth, ce.Kind)
}

func TestErrMissingAPIKeyIsConfigError(t *testing.T) {
	assert.ErrorIs(t, ErrMissingAPIKey, ErrInvalidConfig)
}
