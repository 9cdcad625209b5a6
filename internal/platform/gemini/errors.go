package gemini

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/ay0711/AI/internal/generation"
	"google.golang.org/genai"
)

// toRawFailure converts an error returned by the genai SDK into a
// *generation.RawFailure, preserving the upstream status and message.
func toRawFailure(err error) *generation.RawFailure {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = err.Error()
		}
		if reasons := detailReasons(apiErr); len(reasons) > 0 {
			message = fmt.Sprintf("%s [%s]", message, strings.Join(reasons, ", "))
		}
		return &generation.RawFailure{
			StatusCode: apiErr.Code,
			Code:       apiErr.Status,
			Message:    message,
			Err:        err,
		}
	}

	return &generation.RawFailure{
		Code:    transportCode(err),
		Message: err.Error(),
		Err:     err,
	}
}

// transportCode maps network failures onto the codes the pipeline recognises.
func transportCode(err error) string {
	var dnsErr *net.DNSError
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return generation.CodeTimeout
	case errors.As(err, &dnsErr):
		return generation.CodeNotFound
	case errors.Is(err, syscall.ECONNRESET):
		return generation.CodeConnReset
	case errors.Is(err, syscall.ECONNREFUSED):
		return generation.CodeConnRefused
	case errors.As(err, &netErr) && netErr.Timeout():
		return generation.CodeTimeout
	default:
		return ""
	}
}

// detailReasons collects the machine-readable reasons (e.g. API_KEY_INVALID)
// that Gemini reports in error details rather than in the message.
func detailReasons(apiErr genai.APIError) []string {
	var reasons []string
	for _, d := range apiErr.Details {
		if r, ok := d["reason"].(string); ok && r != "" {
			reasons = append(reasons, r)
		}
	}
	return reasons
}
