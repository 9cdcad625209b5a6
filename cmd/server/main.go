// Package main implements the entry point for the AI backend server, which
// exposes the resilient Gemini generation pipeline over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ay0711/AI/internal/config"
	"github.com/ay0711/AI/internal/platform/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ai-backend: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging, builds the application and
// serves until SIGINT or SIGTERM.
func run() error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"environment", cfg.Server.Environment,
		"default_model", cfg.LLM.DefaultModel,
		"api_key_present", cfg.LLM.GeminiAPIKey != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadDotEnv loads a .env file from the working directory if present.
// Variables already set in the environment are not overridden.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	slog.Debug(".env processed")
	return nil
}
