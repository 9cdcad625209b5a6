package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ay0711/AI/internal/config"
	"github.com/ay0711/AI/internal/generation"
	"github.com/ay0711/AI/internal/platform/gemini"
	"github.com/ay0711/AI/internal/platform/logger"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// cliEnv is everything a subcommand needs once configuration is loaded.
type cliEnv struct {
	config  *config.Config
	logger  *slog.Logger
	catalog *generation.ModelCatalog

	// newGenerator is called lazily so that commands not talking to the
	// upstream service work without an API key.
	newGenerator func(ctx context.Context) (generation.Generator, error)
}

// envBuilder loads configuration and builds the environment of a command.
type envBuilder func(opts globalOptions, logOutput io.Writer) (*cliEnv, error)

type globalOptions struct {
	configFile string
	verbose    bool
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
)

func newRootCmd(build envBuilder) *cobra.Command {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:   "promptctl",
		Short: "promptctl - run prompts through the resilient Gemini pipeline",
		Long: `promptctl sends prompts to Gemini with the same validation, retry and
error classification rules as the AI backend server.

Configuration is read from config.yaml, AI_* environment variables and a
.env file in the working directory. GOOGLE_AI_API_KEY or AI_LLM_GEMINI_API_KEY
must be set for the generate command.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to a config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log pipeline activity to stderr")

	envFor := func(cmd *cobra.Command) (*cliEnv, error) {
		return build(opts, cmd.ErrOrStderr())
	}

	rootCmd.AddCommand(newGenerateCmd(envFor))
	rootCmd.AddCommand(newModelsCmd(envFor))

	return rootCmd
}

// buildEnv is the production envBuilder.
func buildEnv(opts globalOptions, logOutput io.Writer) (*cliEnv, error) {
	var loadOpts []config.LoadOption
	if opts.configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(opts.configFile))
	}

	cfg, err := config.Load(loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logCfg := cfg.Server
	logCfg.LogFormat = "text"
	logCfg.LogLevel = "error"
	if opts.verbose {
		logCfg.LogLevel = "debug"
	}
	log := logger.New(logOutput, logCfg)

	catalog, err := generation.NewModelCatalog(cfg.LLM.DefaultModel, cfg.LLM.Models)
	if err != nil {
		return nil, fmt.Errorf("failed to build model catalog: %w", err)
	}

	return &cliEnv{
		config:  cfg,
		logger:  log,
		catalog: catalog,
		newGenerator: func(ctx context.Context) (generation.Generator, error) {
			client, err := gemini.NewClient(ctx, log, cfg.LLM)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
			}
			return generation.NewPipeline(client, catalog, log, generation.Config{
				MaxRetries:          cfg.LLM.MaxRetries,
				BaseDelay:           cfg.LLM.RetryBaseDelay,
				RateLimitRetryAfter: cfg.LLM.RateLimitRetryAfter,
			})
		},
	}, nil
}
