package errlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	perrors "github.com/jllopis/rolepanel/pkg/errors"
)

var linePattern = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z\] `)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
}

func TestFileSinkCreatesDirectoryAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "log.txt")
	sink := NewFileSink(path)
	sink.now = func() time.Time { return time.Date(2026, 10, 15, 8, 30, 0, 123_000_000, time.FixedZone("CET", 3600)) }

	sink.Record(context.Background(), errors.New("first"))
	sink.Record(context.Background(), errors.New("second"))
	sink.Record(context.Background(), nil)

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "[2026-10-15T07:30:00.123Z] first" {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if lines[1] != "[2026-10-15T07:30:00.123Z] second" {
		t.Errorf("unexpected second line %q", lines[1])
	}
}

func TestFileSinkConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	sink := NewFileSink(path)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink.Record(context.Background(), errors.New("boom"))
		}()
	}
	wg.Wait()

	lines := readLines(t, path)
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !linePattern.MatchString(line) || !strings.HasSuffix(line, "] boom") {
			t.Errorf("malformed line %q", line)
		}
	}
}

func TestFormatIncludesStack(t *testing.T) {
	err := perrors.New(perrors.CodeInternal, "panic in handler", nil).
		WithContext("stack", "goroutine 1 [running]:\nmain.main()\n")
	got := Format(err)
	want := "[INTERNAL_ERROR] panic in handler\ngoroutine 1 [running]:\nmain.main()"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRecorderFansOut(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var recorded []error
	file := SinkFunc(func(_ context.Context, err error) { recorded = append(recorded, err) })
	r := NewRecorder(file, WithLogger(logger))

	r.Record(context.Background(), perrors.New(perrors.CodeDecodeFailure, "no state block", nil))
	r.Record(context.Background(), nil)

	if len(recorded) != 1 {
		t.Fatalf("expected 1 recorded error, got %d", len(recorded))
	}
	out := buf.String()
	if !strings.Contains(out, "msg=panel.error") || !strings.Contains(out, "code=DECODE_FAILURE") {
		t.Errorf("unexpected log output %q", out)
	}
}

func TestRecorderWithoutFile(t *testing.T) {
	r := NewRecorder(nil, WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	r.Record(context.Background(), errors.New("dropped"))
}
