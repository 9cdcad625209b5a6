package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ay0711/AI/internal/events"
	"github.com/ay0711/AI/internal/generation"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	model      string
	maxRetries int
	jsonOutput bool
}

func newGenerateCmd(envFor func(*cobra.Command) (*cliEnv, error)) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Generate text for a prompt",
		Long: `Generate text for a prompt. Rate-limited and transient failures are
retried with exponential backoff; each retry is reported on stderr.

Examples:
  promptctl generate "Write a haiku about Go"
  promptctl generate "Summarize: ..." --model gemini-1.5-pro --max-retries 5
  promptctl generate "Say hello" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := envFor(cmd)
			if err != nil {
				return err
			}
			return runGenerate(cmd, env, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Model to use (defaults to the configured default model)")
	cmd.Flags().IntVar(&opts.maxRetries, "max-retries", 0, "Total attempts (defaults to the configured value)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the result as JSON")

	return cmd
}

func runGenerate(cmd *cobra.Command, env *cliEnv, prompt string, opts generateOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	generator, err := env.newGenerator(ctx)
	if err != nil {
		if errors.Is(err, generation.ErrMissingAPIKey) {
			return fmt.Errorf("%s AI service not available: set GOOGLE_AI_API_KEY", errorStyle.Render("Error:"))
		}
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	callOpts := []generation.CallOption{
		generation.WithProgress(func(event *events.RetryEvent) {
			fmt.Fprintln(errOut, warnStyle.Render(fmt.Sprintf(
				"↻ attempt %d/%d failed (%s), retrying in %s",
				event.Attempt, event.MaxAttempts, event.Reason, event.Wait)))
		}),
	}
	if opts.maxRetries > 0 {
		callOpts = append(callOpts, generation.WithMaxRetries(opts.maxRetries))
	}

	if !opts.jsonOutput {
		fmt.Fprintln(errOut, mutedStyle.Render(fmt.Sprintf("→ Generating with %s...", env.catalog.Resolve(opts.model))))
	}

	result, err := generator.Generate(ctx, prompt, opts.model, callOpts...)
	if err != nil {
		return describeFailure(err)
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(errOut, successStyle.Render(fmt.Sprintf("✓ %s answered on attempt %d", result.Model, result.Attempt)))
	fmt.Fprintln(out, result.Text)
	return nil
}

// describeFailure turns a generation failure into a one-line CLI error.
func describeFailure(err error) error {
	ce, ok := generation.AsClassified(err)
	if !ok {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	msg := fmt.Sprintf("%s %s (%s)", errorStyle.Render("Error:"), ce.Message, ce.Kind)
	if seconds, ok := ce.RetryAfter(); ok {
		msg += fmt.Sprintf("; try again in %d seconds", seconds)
	}
	return errors.New(msg)
}
