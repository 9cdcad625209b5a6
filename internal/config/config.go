package config

import "time"

// ServiceName identifies this service in logs and health responses.
const ServiceName = "ai-backend"

// Version is the service version. It may be overridden at build time with
// -ldflags "-X github.com/ay0711/AI/internal/config.Version=...".
var Version = "1.0.0"

// Environments accepted by ServerConfig.Environment.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port"        validate:"required,gt=0,lt=65536"`
	LogLevel    string `mapstructure:"log_level"   validate:"required,oneof=debug info warn error"`
	LogFormat   string `mapstructure:"log_format"  validate:"required,oneof=json text"`
	Environment string `mapstructure:"environment" validate:"required,oneof=development production"`

	// RequestTimeout bounds a whole HTTP request, retries and backoff included.
	// It must be at least LLMConfig.RetryBudget.
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`

	// AllowedOrigins is the CORS allow-list used in production.
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,required"`
}

// IsProduction reports whether the server runs in production mode.
func (c ServerConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// GeminiAPIKey may be empty; the service then starts in degraded mode.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	DefaultModel string   `mapstructure:"default_model" validate:"required"`
	Models       []string `mapstructure:"models"        validate:"required,min=1,dive,required"`

	// MaxRetries is the total number of attempts per generation request.
	MaxRetries          int           `mapstructure:"max_retries"            validate:"gte=1,lte=10"`
	RetryBaseDelay      time.Duration `mapstructure:"retry_base_delay"       validate:"gt=0"`
	RateLimitRetryAfter int           `mapstructure:"rate_limit_retry_after" validate:"gt=0"`
	AttemptTimeout      time.Duration `mapstructure:"attempt_timeout"        validate:"gt=0"`

	// BaseURL overrides the Gemini endpoint (empty uses the SDK default).
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// RetryBudget is the longest a single generation may take: every attempt
// running into AttemptTimeout plus the backoff waits between attempts
// (RetryBaseDelay doubling after each failure, none after the last).
func (c LLMConfig) RetryBudget() time.Duration {
	if c.MaxRetries < 1 {
		return 0
	}
	attempts := time.Duration(c.MaxRetries) * c.AttemptTimeout
	backoff := c.RetryBaseDelay * time.Duration((1<<(c.MaxRetries-1))-1)
	return attempts + backoff
}
