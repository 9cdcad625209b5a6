package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/ay0711/AI/internal/config"
	"github.com/ay0711/AI/internal/generation"
	"github.com/ay0711/AI/internal/mocks"
	"github.com/ay0711/AI/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBuilder returns an envBuilder backed by caller. A nil caller behaves
// like a missing API key.
func testBuilder(t *testing.T, caller generation.Caller) envBuilder {
	t.Helper()
	return func(_ globalOptions, _ io.Writer) (*cliEnv, error) {
		log, _ := logger.GetTestLogger(t)
		catalog, err := generation.NewModelCatalog("gemini-2.5-flash", []string{"gemini-2.5-flash", "gemini-1.5-pro"})
		require.NoError(t, err)

		return &cliEnv{
			config:  &config.Config{},
			logger:  log,
			catalog: catalog,
			newGenerator: func(context.Context) (generation.Generator, error) {
				if caller == nil {
					return nil, generation.ErrMissingAPIKey
				}
				return generation.NewPipeline(caller, catalog, log, generation.DefaultConfig(),
					generation.WithSleeper(func(context.Context, time.Duration) error { return nil }))
			},
		}, nil
	}
}

func execute(t *testing.T, build envBuilder, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(build)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerateCommand_PrintsText(t *testing.T) {
	caller := mocks.NewMockCallerWithText("  Go is fun.  ")

	stdout, stderr, err := execute(t, testBuilder(t, caller), "generate", "Write", "something")

	require.NoError(t, err)
	assert.Equal(t, "Go is fun.\n", stdout)
	assert.Contains(t, stderr, "gemini-2.5-flash answered on attempt 1")
	assert.Equal(t, []string{"Write something"}, caller.Prompts())
}

func TestGenerateCommand_ReportsRetries(t *testing.T) {
	caller := mocks.NewMockCallerWithSequence(
		&generation.RawFailure{StatusCode: 503, Code: "UNAVAILABLE", Message: "overloaded"}, nil)
	caller.Text = "done"

	stdout, stderr, err := execute(t, testBuilder(t, caller), "generate", "hi", "--model", "gemini-1.5-pro")

	require.NoError(t, err)
	assert.Equal(t, "done\n", stdout)
	assert.Contains(t, stderr, "attempt 1/3 failed (retryable), retrying in 2s")
	assert.Contains(t, stderr, "gemini-1.5-pro answered on attempt 2")
}

func TestGenerateCommand_JSONOutput(t *testing.T) {
	stdout, _, err := execute(t, testBuilder(t, mocks.NewMockCallerWithText("hello")), "generate", "hi", "--json")

	require.NoError(t, err)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "hello", result["text"])
	assert.Equal(t, "gemini-2.5-flash", result["model"])
	assert.Equal(t, float64(1), result["attempt"])
}

func TestGenerateCommand_Failures(t *testing.T) {
	testCases := []struct {
		name      string
		caller    generation.Caller
		args      []string
		wantErr   []string
		wantCalls int
	}{
		{
			name:    "missing api key",
			caller:  nil,
			args:    []string{"generate", "hi"},
			wantErr: []string{"AI service not available"},
		},
		{
			name:    "invalid model",
			caller:  mocks.NewMockCallerWithText("unused"),
			args:    []string{"generate", "hi", "--model", "gpt-4"},
			wantErr: []string{"Invalid model. Supported models: gemini-2.5-flash, gemini-1.5-pro", "INVALID_REQUEST"},
		},
		{
			name:      "rate limited with retry budget",
			caller:    mocks.NewMockCallerThatFails(&generation.RawFailure{StatusCode: 429, Message: "slow down"}),
			args:      []string{"generate", "hi", "--max-retries", "2"},
			wantErr:   []string{"RATE_LIMIT_EXCEEDED", "try again in 120 seconds"},
			wantCalls: 2,
		},
		{
			name:      "auth error",
			caller:    mocks.NewMockCallerThatFails(&generation.RawFailure{StatusCode: 401, Message: "bad key"}),
			args:      []string{"generate", "hi"},
			wantErr:   []string{"Invalid API key", "AUTH_ERROR"},
			wantCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := execute(t, testBuilder(t, tc.caller), tc.args...)

			require.Error(t, err)
			for _, want := range tc.wantErr {
				assert.Contains(t, err.Error(), want)
			}
			if mc, ok := tc.caller.(*mocks.MockCaller); ok && tc.wantCalls > 0 {
				assert.Equal(t, tc.wantCalls, mc.Calls())
			}
		})
	}
}

func TestGenerateCommand_RequiresPrompt(t *testing.T) {
	_, _, err := execute(t, testBuilder(t, mocks.NewMockCallerWithText("x")), "generate")

	require.Error(t, err)
}

func TestModelsCommand(t *testing.T) {
	stdout, _, err := execute(t, testBuilder(t, nil), "models")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Models:")
	assert.Contains(t, stdout, "gemini-2.5-flash (default)")
	assert.Contains(t, stdout, "gemini-1.5-pro\n")
}
