package api

import (
	"time"

	"github.com/ay0711/AI/internal/generation"
)

// GenerateRequest defines the payload for the generation endpoints.
type GenerateRequest struct {
	// Contents is the prompt text.
	Contents string `json:"contents" validate:"required"`

	// Model is optional; the configured default model is used when empty.
	Model string `json:"model" validate:"omitempty,max=128"`
}

// GenerateResponse defines the successful response of the generation endpoints.
type GenerateResponse struct {
	Success   bool      `json:"success"`
	Text      string    `json:"text"`
	Model     string    `json:"model"`
	Attempt   int       `json:"attempt"`
	Timestamp time.Time `json:"timestamp"`
}

func newGenerateResponse(result *generation.Result) GenerateResponse {
	return GenerateResponse{
		Success:   true,
		Text:      result.Text,
		Model:     result.Model,
		Attempt:   result.Attempt,
		Timestamp: result.Timestamp,
	}
}

// ModelInfo describes one allowed model.
type ModelInfo struct {
	Name    string `json:"name"`
	Default bool   `json:"default,omitempty"`
}

// ModelsResponse lists the model allow-list.
type ModelsResponse struct {
	Success      bool        `json:"success"`
	DefaultModel string      `json:"default_model"`
	Models       []ModelInfo `json:"models"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`

	// AIService is "available", or "unavailable" when the server runs without
	// a working upstream client.
	AIService string `json:"ai_service"`
}
