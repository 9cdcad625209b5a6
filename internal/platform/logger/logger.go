package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ay0711/AI/internal/config"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured logger writing to stdout
// with the appropriate log level and sets it as the default logger for the
// application.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	logger := New(os.Stdout, cfg)
	slog.SetDefault(logger)
	return logger, nil
}

// New builds a logger writing to w. The JSON format is used unless
// cfg.LogFormat is "text", which selects a colored console handler.
// Every record carries the service, version and environment.
func New(w io.Writer, cfg config.ServerConfig) *slog.Logger {
	level := ParseLevel(cfg.LogLevel)

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(w),
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}

	return slog.New(NewMetadataHandler(handler, map[string]string{
		"service":     config.ServiceName,
		"version":     config.Version,
		"environment": cfg.Environment,
	}))
}

// ParseLevel maps a configured level name to a slog.Level (case-insensitive).
// Unknown names fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
