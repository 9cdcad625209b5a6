// Package gemini provides the generation.Caller implementation backed by
// Google's Gemini API.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the generation pipeline to Google's external Gemini AI service.
// A Client performs exactly one GenerateContent request per call, bounded by
// a per-attempt timeout, and reports failures as *generation.RawFailure values
// carrying the upstream status code, status string and message. It never
// retries and never classifies: both belong to the pipeline.
//
// The package depends on google.golang.org/genai for authentication, request
// formatting and response decoding.
package gemini
