package generation

import (
	"net/http"
	"strings"
)

// FailureClass is the retry category of a single failed attempt.
type FailureClass int

const (
	// ClassPermanent failures stop the attempt loop.
	ClassPermanent FailureClass = iota
	// ClassRateLimited failures are retried, then surfaced as RATE_LIMIT_EXCEEDED.
	ClassRateLimited
	// ClassQuotaExceeded failures are surfaced immediately as QUOTA_EXCEEDED.
	ClassQuotaExceeded
	// ClassAuth failures are surfaced immediately as AUTH_ERROR.
	ClassAuth
	// ClassRetryable failures are retried, then surfaced as GENERATION_FAILED.
	ClassRetryable
)

func (c FailureClass) String() string {
	switch c {
	case ClassRateLimited:
		return "rate_limited"
	case ClassQuotaExceeded:
		return "quota_exceeded"
	case ClassAuth:
		return "auth"
	case ClassRetryable:
		return "retryable"
	default:
		return "permanent"
	}
}

// signals describes how a failure class is recognised.
type signals struct {
	class    FailureClass
	statuses []int
	// substrings are matched case-sensitively against the message and code.
	substrings []string
	// codes are matched exactly against RawFailure.Code.
	codes []string
}

// classification is evaluated top to bottom; the first match wins.
// An upstream 429 carrying RESOURCE_EXHAUSTED is therefore rate limited,
// not quota exceeded.
var classification = []signals{
	{
		class:      ClassRateLimited,
		statuses:   []int{http.StatusTooManyRequests},
		substrings: []string{"RATE_LIMIT_EXCEEDED", "429"},
	},
	{
		class:      ClassQuotaExceeded,
		substrings: []string{"RESOURCE_EXHAUSTED", "quota", "QUOTA_EXCEEDED"},
	},
	{
		class:      ClassAuth,
		statuses:   []int{http.StatusUnauthorized},
		substrings: []string{"API_KEY_INVALID", "401"},
	},
	{
		class: ClassRetryable,
		statuses: []int{
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
		substrings: []string{"INTERNAL", "UNAVAILABLE"},
		codes:      []string{CodeConnReset, CodeConnRefused, CodeTimeout, CodeNotFound, CodeEmptyResponse},
	},
}

// Classify maps a raw upstream failure to its FailureClass.
// A nil failure is permanent.
func Classify(f *RawFailure) FailureClass {
	if f == nil {
		return ClassPermanent
	}
	for _, s := range classification {
		if s.matches(f) {
			return s.class
		}
	}
	return ClassPermanent
}

func (s signals) matches(f *RawFailure) bool {
	for _, status := range s.statuses {
		if f.StatusCode == status {
			return true
		}
	}
	for _, code := range s.codes {
		if f.Code == code {
			return true
		}
	}
	for _, sub := range s.substrings {
		if strings.Contains(f.Message, sub) || strings.Contains(f.Code, sub) {
			return true
		}
	}
	return false
}
