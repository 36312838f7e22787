// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

type dispatchKey struct{}

// Dispatch identifies the interaction a log record was written for.
type Dispatch struct {
	ID            string
	Kind          string
	InteractionID string
}

// ContextWithDispatch returns a context whose log records carry d.
func ContextWithDispatch(ctx context.Context, d Dispatch) context.Context {
	return context.WithValue(ctx, dispatchKey{}, d)
}

// DispatchFromContext returns the dispatch stored in ctx, if any.
func DispatchFromContext(ctx context.Context) (Dispatch, bool) {
	if ctx == nil {
		return Dispatch{}, false
	}
	d, ok := ctx.Value(dispatchKey{}).(Dispatch)
	return d, ok
}

// ConfigureSlog installs a global logger whose records are tagged with the
// current dispatch and span.
func ConfigureSlog(output io.Writer, level, format string) *slog.Logger {
	logger := slog.New(newDispatchHandler(output, level, format))
	slog.SetDefault(logger)
	return logger
}

func newDispatchHandler(output io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLogLevel(level)}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return &dispatchHandler{next: slog.NewJSONHandler(output, opts)}
	}
	return &dispatchHandler{next: slog.NewTextHandler(output, opts)}
}

// dispatchHandler copies the dispatch and span identifiers from the
// record's context into the record.
type dispatchHandler struct {
	next slog.Handler
}

func (h *dispatchHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *dispatchHandler) Handle(ctx context.Context, record slog.Record) error {
	if d, ok := DispatchFromContext(ctx); ok {
		record.AddAttrs(slog.String("dispatch_id", d.ID), slog.String("kind", d.Kind))
		if d.InteractionID != "" {
			record.AddAttrs(slog.String("interaction_id", d.InteractionID))
		}
	}
	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			record.AddAttrs(
				slog.String("trace_id", sc.TraceID().String()),
				slog.String("span_id", sc.SpanID().String()),
			)
		}
	}
	return h.next.Handle(ctx, record)
}

func (h *dispatchHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dispatchHandler{next: h.next.WithAttrs(attrs)}
}

func (h *dispatchHandler) WithGroup(name string) slog.Handler {
	return &dispatchHandler{next: h.next.WithGroup(name)}
}

// ParseLogLevel maps a level name to a slog level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
