package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "AI"

// legacyEnv maps config keys to the unprefixed variables used by earlier
// deployments. The prefixed variable takes precedence.
var legacyEnv = map[string]string{
	"server.port":        "PORT",
	"server.environment": "APP_ENV",
	"llm.gemini_api_key": "GOOGLE_AI_API_KEY",
}

// LoadOption customizes Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	configFile string
}

// WithConfigFile reads configuration from path instead of searching for
// config.yaml. A missing file is then an error.
func WithConfigFile(path string) LoadOption {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(opts ...LoadOption) (*Config, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	setDefaults(v)

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", o.configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags and cross-field rules.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	found := false
	for _, m := range cfg.LLM.Models {
		if strings.TrimSpace(m) == cfg.LLM.DefaultModel {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config validation failed: default model %q is not in llm.models",
			cfg.LLM.DefaultModel)
	}

	if budget := cfg.LLM.RetryBudget(); cfg.Server.RequestTimeout < budget {
		return fmt.Errorf("config validation failed: server.request_timeout %s is shorter than "+
			"the retry budget %s (llm.max_retries x llm.attempt_timeout plus backoff)",
			cfg.Server.RequestTimeout, budget)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("server.environment", EnvDevelopment)
	v.SetDefault("server.request_timeout", "90s")
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.default_model", "gemini-2.5-flash")
	v.SetDefault("llm.models", []string{"gemini-2.5-flash", "gemini-1.5-flash", "gemini-1.5-pro"})
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_base_delay", "2s")
	v.SetDefault("llm.rate_limit_retry_after", 120)
	v.SetDefault("llm.attempt_timeout", "20s")
	v.SetDefault("llm.base_url", "")
}
