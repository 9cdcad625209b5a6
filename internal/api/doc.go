// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between HTTP clients and the
// generation pipeline, translating classified generation errors into stable
// status codes and JSON bodies.
package api
