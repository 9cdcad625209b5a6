// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/ay0711/AI/internal/config"
	"github.com/ay0711/AI/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serverConfig(level, format string) config.ServerConfig {
	return config.ServerConfig{
		Port:        5000,
		LogLevel:    level,
		LogFormat:   format,
		Environment: config.EnvDevelopment,
	}
}

func TestNew_JSONIncludesMetadata(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	log := logger.New(buf, serverConfig("info", "json"))

	log.Info("server started", "port", 5000)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "server started", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, float64(5000), entry["port"])
	assert.Equal(t, config.ServiceName, entry["service"])
	assert.Equal(t, config.Version, entry["version"])
	assert.Equal(t, config.EnvDevelopment, entry["environment"])
}

func TestNew_LevelFiltering(t *testing.T) {
	testCases := []struct {
		level      string
		debugShown bool
		infoShown  bool
		warnShown  bool
	}{
		{level: "debug", debugShown: true, infoShown: true, warnShown: true},
		{level: "info", debugShown: false, infoShown: true, warnShown: true},
		{level: "warn", debugShown: false, infoShown: false, warnShown: true},
		{level: "error", debugShown: false, infoShown: false, warnShown: false},
		{level: "DEBUG", debugShown: true, infoShown: true, warnShown: true},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			buf := &logger.TestLogBuffer{}
			log := logger.New(buf, serverConfig(tc.level, "json"))

			log.Debug("debug message")
			log.Info("info message")
			log.Warn("warn message")

			out := buf.String()
			assert.Equal(t, tc.debugShown, strings.Contains(out, "debug message"))
			assert.Equal(t, tc.infoShown, strings.Contains(out, "info message"))
			assert.Equal(t, tc.warnShown, strings.Contains(out, "warn message"))
		})
	}
}

func TestNew_TextFormat(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	log := logger.New(buf, serverConfig("info", "text"))

	log.Info("hello console", "model", "gemini-2.5-flash")

	out := buf.String()
	assert.Contains(t, out, "hello console")
	assert.Contains(t, out, "model=gemini-2.5-flash")
	assert.Contains(t, out, "service="+config.ServiceName)
	assert.NotContains(t, out, "\x1b[", "colors are disabled when not writing to a terminal")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel(" Warn "))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("invalid-level"))
}

func TestSetup_SetsDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	log, err := logger.Setup(serverConfig("warn", "json"))
	require.NoError(t, err)
	require.NotNil(t, log)

	assert.Same(t, log, slog.Default())
	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
}
