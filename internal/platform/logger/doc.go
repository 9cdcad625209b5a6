// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, a colored console format for local development, and
// context helpers for request-scoped loggers.
package logger
