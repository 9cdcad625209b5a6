package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ay0711/AI/internal/api"
	"github.com/ay0711/AI/internal/config"
	"github.com/ay0711/AI/internal/events"
	"github.com/ay0711/AI/internal/generation"
	"github.com/ay0711/AI/internal/platform/gemini"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Generation
	catalog      *generation.ModelCatalog
	generator    generation.Generator // nil when the upstream client is unavailable
	eventEmitter *events.InMemoryEventEmitter

	// HTTP handlers
	generationHandler *api.GenerationHandler
	healthHandler     *api.HealthHandler
}

// appOption customizes newApplication.
type appOption func(*appOptions)

type appOptions struct {
	caller  generation.Caller
	sleeper generation.Sleeper
}

// withCaller replaces the Gemini client (used by tests).
func withCaller(c generation.Caller) appOption {
	return func(o *appOptions) {
		o.caller = c
	}
}

// withSleeper replaces the pipeline backoff sleep (used by tests).
func withSleeper(s generation.Sleeper) appOption {
	return func(o *appOptions) {
		o.sleeper = s
	}
}

// newApplication creates a new application instance with all dependencies initialized.
// A missing API key is not fatal: the application starts in degraded mode and
// answers generation requests with "AI service not available".
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...appOption) (*application, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.catalog, err = generation.NewModelCatalog(cfg.LLM.DefaultModel, cfg.LLM.Models)
	if err != nil {
		return nil, fmt.Errorf("failed to build model catalog: %w", err)
	}

	// Every retry decision is logged through the event emitter
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLogHandler(logger.With("component", "retry_events")))

	caller := o.caller
	if caller == nil {
		client, err := gemini.NewClient(ctx, logger, cfg.LLM)
		switch {
		case errors.Is(err, generation.ErrMissingAPIKey):
			logger.Warn("AI service not available, starting in degraded mode", "error", err)
		case err != nil:
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		default:
			caller = client
		}
	}

	if caller != nil {
		pipelineOpts := []generation.Option{generation.WithEmitter(app.eventEmitter)}
		if o.sleeper != nil {
			pipelineOpts = append(pipelineOpts, generation.WithSleeper(o.sleeper))
		}

		pipeline, err := generation.NewPipeline(
			caller,
			app.catalog,
			logger.With("component", "generation_pipeline"),
			generation.Config{
				MaxRetries:          cfg.LLM.MaxRetries,
				BaseDelay:           cfg.LLM.RetryBaseDelay,
				RateLimitRetryAfter: cfg.LLM.RateLimitRetryAfter,
			},
			pipelineOpts...,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create generation pipeline: %w", err)
		}
		app.generator = pipeline
		logger.Info("Generation pipeline initialized",
			"default_model", app.catalog.Default(),
			"models", app.catalog.Models(),
			"max_retries", cfg.LLM.MaxRetries)
	}

	app.generationHandler = api.NewGenerationHandler(
		app.generator,
		app.catalog,
		logger,
		api.WithInternalErrors(!cfg.Server.IsProduction()),
	)
	app.healthHandler = api.NewHealthHandler(config.Version, app.generationHandler.Ready)

	logger.Info("Application initialized successfully", "degraded", app.generator == nil)
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup releases application resources after the server has stopped.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed")
}
