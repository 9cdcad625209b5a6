package generation

import (
	"context"
	"errors"
	"fmt"
)

// Transport-level codes carried in RawFailure.Code when the failure did not
// come from an upstream API response.
const (
	CodeConnReset     = "ECONNRESET"
	CodeConnRefused   = "ECONNREFUSED"
	CodeTimeout       = "ETIMEDOUT"
	CodeNotFound      = "ENOTFOUND"
	CodeEmptyResponse = "EMPTY_RESPONSE"
)

// RawFailure is an unclassified failure of a single upstream call.
type RawFailure struct {
	// StatusCode is the HTTP status returned upstream, or 0 for transport errors.
	StatusCode int

	// Code is the upstream status string (e.g. RESOURCE_EXHAUSTED) or a
	// transport code such as ECONNRESET.
	Code string

	// Message is the upstream or transport error message.
	Message string

	// Err is the original error, if any.
	Err error
}

func (f *RawFailure) Error() string {
	switch {
	case f.StatusCode != 0 && f.Code != "":
		return fmt.Sprintf("upstream error %d (%s): %s", f.StatusCode, f.Code, f.Message)
	case f.StatusCode != 0:
		return fmt.Sprintf("upstream error %d: %s", f.StatusCode, f.Message)
	case f.Code != "":
		return fmt.Sprintf("%s: %s", f.Code, f.Message)
	default:
		return f.Message
	}
}

// Unwrap returns the original error.
func (f *RawFailure) Unwrap() error {
	return f.Err
}

// AsRawFailure converts any error returned by a Caller into a *RawFailure.
func AsRawFailure(err error) *RawFailure {
	if err == nil {
		return nil
	}

	var raw *RawFailure
	if errors.As(err, &raw) {
		return raw
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &RawFailure{Code: CodeTimeout, Message: err.Error(), Err: err}
	}

	return &RawFailure{Message: err.Error(), Err: err}
}

func emptyResponseFailure() *RawFailure {
	return &RawFailure{Code: CodeEmptyResponse, Message: "empty response received from AI model"}
}
