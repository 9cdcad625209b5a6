package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ay0711/AI/internal/config"
	"github.com/ay0711/AI/internal/generation"
	"google.golang.org/genai"
)

// contentGenerator is the subset of genai.Models used by Client.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Client implements generation.Caller using the Gemini API.
type Client struct {
	logger  *slog.Logger
	models  contentGenerator
	timeout time.Duration
}

var _ generation.Caller = (*Client)(nil)

// Option customizes a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
}

// WithHTTPClient sets the HTTP client used for upstream requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// NewClient creates a Gemini client from cfg.
//
// It returns generation.ErrMissingAPIKey when no key is configured, and an
// error wrapping generation.ErrInvalidConfig when the SDK client cannot be
// created.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	logger = logger.With("component", "gemini")

	if err := validateConfig(ctx, logger, &cfg); err != nil {
		return nil, err
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: o.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "Gemini client initialized",
		"attempt_timeout", cfg.AttemptTimeout,
		"custom_base_url", cfg.BaseURL != "")

	return newClient(logger, client.Models, cfg.AttemptTimeout), nil
}

func newClient(logger *slog.Logger, models contentGenerator, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}
	return &Client{logger: logger, models: models, timeout: timeout}
}

// Call sends prompt to model in a single request and returns the generated
// text. Failures are returned as *generation.RawFailure.
func (c *Client) Call(ctx context.Context, prompt string, model string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.models.GenerateContent(attemptCtx, model, genai.Text(prompt), nil)
	if err != nil {
		failure := toRawFailure(err)
		c.logger.DebugContext(ctx, "Gemini request failed",
			"model", model,
			"duration_ms", time.Since(start).Milliseconds(),
			"status_code", failure.StatusCode,
			"code", failure.Code)
		return "", failure
	}

	if resp == nil {
		return "", nil
	}

	c.logger.DebugContext(ctx, "Gemini request completed",
		"model", model,
		"duration_ms", time.Since(start).Milliseconds(),
		"candidates", len(resp.Candidates))

	return resp.Text(), nil
}
