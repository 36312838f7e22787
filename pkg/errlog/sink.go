// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

// Package errlog records failures that are caught at the interaction
// boundary so they never reach the gateway loop.
package errlog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	perrors "github.com/jllopis/rolepanel/pkg/errors"
	"github.com/jllopis/rolepanel/pkg/telemetry"
)

// TimestampLayout is the ISO-8601 UTC layout used for log lines.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Sink receives errors that were caught and swallowed.
type Sink interface {
	Record(ctx context.Context, err error)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, err error)

// Record implements Sink.
func (f SinkFunc) Record(ctx context.Context, err error) { f(ctx, err) }

// Discard drops every error.
var Discard Sink = SinkFunc(func(context.Context, error) {})

// FileSink appends one entry per error to a local file, creating the
// containing directory on first use.
type FileSink struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFileSink creates a sink writing to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path, now: time.Now}
}

// Path returns the log file path.
func (f *FileSink) Path() string { return f.path }

// Record implements Sink. Write failures are reported through slog since
// there is nowhere else to put them.
func (f *FileSink) Record(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if werr := f.Append(Format(err)); werr != nil {
		slog.Default().ErrorContext(ctx, "errlog.append.error",
			slog.String("path", f.path),
			slog.String("error", werr.Error()),
		)
	}
}

// Append writes "[timestamp] message" followed by a newline.
func (f *FileSink) Append(message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	line := fmt.Sprintf("[%s] %s\n", f.now().UTC().Format(TimestampLayout), message)
	if _, err := file.WriteString(line); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Format renders err for the log file. Errors carrying a goroutine stack
// (recovered panics) are followed by that stack.
func Format(err error) string {
	msg := err.Error()
	var pe *perrors.PanelError
	if errors.As(err, &pe) {
		if stack, ok := pe.Context["stack"].(string); ok && stack != "" {
			msg += "\n" + strings.TrimRight(stack, "\n")
		}
	}
	return msg
}

// Recorder fans an error out to the log file, the structured logger and
// the error metrics.
type Recorder struct {
	file    Sink
	logger  *slog.Logger
	metrics *telemetry.PanelMetrics
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *telemetry.PanelMetrics) RecorderOption {
	return func(r *Recorder) {
		r.metrics = m
	}
}

// NewRecorder creates a Recorder writing to file.
func NewRecorder(file Sink, opts ...RecorderOption) *Recorder {
	r := &Recorder{file: file, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	if r.file == nil {
		r.file = Discard
	}
	return r
}

// Record implements Sink.
func (r *Recorder) Record(ctx context.Context, err error) {
	if err == nil {
		return
	}
	code := perrors.CodeOf(err)
	r.logger.ErrorContext(ctx, "panel.error",
		slog.String("code", string(code)),
		slog.String("error", err.Error()),
	)
	r.metrics.RecordError(ctx, code)
	r.file.Record(ctx, err)
}
