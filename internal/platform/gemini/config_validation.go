package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/ay0711/AI/internal/config"
	"github.com/ay0711/AI/internal/generation"
)

// DefaultAttemptTimeout bounds a single upstream request when none is configured.
const DefaultAttemptTimeout = 20 * time.Second

// validateConfig checks the settings the adapter needs before a client is
// created. A missing API key yields generation.ErrMissingAPIKey so callers can
// start in degraded mode.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg *config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		logger.ErrorContext(ctx, "Gemini API key is not configured",
			"hint", "set AI_LLM_GEMINI_API_KEY or GOOGLE_AI_API_KEY")
		return generation.ErrMissingAPIKey
	}

	if cfg.BaseURL != "" {
		if u, err := url.Parse(cfg.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: invalid base URL %q", generation.ErrInvalidConfig, cfg.BaseURL)
		}
	}

	if cfg.AttemptTimeout <= 0 {
		logger.WarnContext(ctx, "Invalid attempt timeout value, using default",
			"value", cfg.AttemptTimeout,
			"default", DefaultAttemptTimeout)
		cfg.AttemptTimeout = DefaultAttemptTimeout
	}

	return nil
}
