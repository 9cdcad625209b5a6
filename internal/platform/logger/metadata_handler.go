package logger

import (
	"context"
	"log/slog"
	"sort"
)

// MetadataHandler is a slog.Handler that adds fixed service metadata to
// every log record before forwarding it to the wrapped handler.
type MetadataHandler struct {
	handler slog.Handler
	attrs   []slog.Attr
}

// NewMetadataHandler wraps handler, adding metadata to each record.
// Empty values are skipped.
func NewMetadataHandler(handler slog.Handler, metadata map[string]string) *MetadataHandler {
	keys := make([]string, 0, len(metadata))
	for k, v := range metadata {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.String(k, metadata[k]))
	}

	return &MetadataHandler{handler: handler, attrs: attrs}
}

// Enabled implements the slog.Handler interface.
func (h *MetadataHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *MetadataHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &MetadataHandler{handler: h.handler.WithAttrs(attrs), attrs: h.attrs}
}

// WithGroup implements the slog.Handler interface.
// Metadata stays at the top level, so it is bound before the group opens.
func (h *MetadataHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &MetadataHandler{handler: h.handler.WithAttrs(h.attrs).WithGroup(name)}
}

// Handle implements the slog.Handler interface.
func (h *MetadataHandler) Handle(ctx context.Context, record slog.Record) error {
	if len(h.attrs) == 0 {
		return h.handler.Handle(ctx, record)
	}
	enhanced := record.Clone()
	enhanced.AddAttrs(h.attrs...)
	return h.handler.Handle(ctx, enhanced)
}
