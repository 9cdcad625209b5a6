// Package shared holds the HTTP plumbing used by every handler: JSON
// responses in the service's error format, request decoding and validation,
// and request trace IDs.
package shared
