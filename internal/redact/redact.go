// Package redact removes credentials and other sensitive fragments from
// strings before they are logged or returned in error responses. Upstream
// error messages and transport errors can echo request URLs, headers or
// keys; everything that leaves the process through a log line passes here.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; earlier, more specific rules win.
var rules = []rule{
	// Google API keys (Gemini, AI Studio)
	{regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`), RedactedKeyPlaceholder},
	// Key header echoed in transport errors
	{regexp.MustCompile(`(?i)(x-goog-api-key\s*[:=]\s*)\S+`), "${1}" + RedactedKeyPlaceholder},
	// Keys passed as query parameters
	{regexp.MustCompile(`(?i)([?&](?:key|api_key|access_token)=)[^&\s"']+`), "${1}" + RedactedKeyPlaceholder},
	// Authorization headers
	{regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9._\-~+/]+=*`), "${1}" + RedactedCredentialPlaceholder},
	// key=value and key: value assignments
	{
		regexp.MustCompile(`(?i)\b(api[_-]?key|token|secret|password)(\s*[:=]\s*['"]?)[^'"\s&,\[]{6,}`),
		"${1}${2}" + RedactedCredentialPlaceholder,
	},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmailPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
