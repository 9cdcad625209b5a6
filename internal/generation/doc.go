// Package generation implements the resilient request pipeline that turns a
// user prompt into text produced by an external LLM service (Gemini).
//
// The package is the boundary between the HTTP and CLI callers and the
// upstream adapter in internal/platform/gemini. It owns:
//
//  1. Validation: prompts must be non-empty after trimming and the model must
//     be part of the configured allow-list (ModelCatalog). Invalid requests
//     never reach the network.
//
//  2. Classification: Classify maps a RawFailure reported by the adapter to
//     one FailureClass in a fixed precedence order (rate limit, quota, auth,
//     retryable, permanent).
//
//  3. Retries: Pipeline.Generate drives up to MaxRetries attempts with
//     exponential backoff (2s, 4s, 8s, ...) for rate-limited and transient
//     failures and stops immediately on quota and auth failures.
//
//  4. Errors: every terminal failure is a *ClassifiedError whose Kind is one
//     of INVALID_REQUEST, AUTH_ERROR, RATE_LIMIT_EXCEEDED, QUOTA_EXCEEDED or
//     GENERATION_FAILED.
//
// Retry decisions are reported through events.RetryEvent values, either to a
// per-call progress callback (WithProgress) or to an application-wide
// events.EventEmitter.
package generation
