// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	cause := errors.New("network timeout")
	pe := New(CodePlatformIO, "update message", cause)

	if pe.Code != CodePlatformIO {
		t.Errorf("expected CodePlatformIO, got %v", pe.Code)
	}
	if pe.Message != "update message" {
		t.Errorf("expected message 'update message', got %q", pe.Message)
	}
	if pe.Err != cause {
		t.Errorf("expected cause to be preserved")
	}
	if !errors.Is(pe, cause) {
		t.Errorf("expected errors.Is to work with wrapped error")
	}
}

func TestWithContext(t *testing.T) {
	pe := New(CodeLookupFailure, "member lookup", nil)
	pe.WithContext("guild_id", "g1").
		WithContext("user_id", "u1")

	if pe.Context["guild_id"] != "g1" {
		t.Errorf("expected context guild_id to be 'g1'")
	}
	if pe.Context["user_id"] != "u1" {
		t.Errorf("expected context user_id to be 'u1'")
	}
}

func TestWithRecoverable(t *testing.T) {
	pe := New(CodePlatformIO, "network error", nil)
	if pe.Recoverable {
		t.Errorf("expected recoverable to be false by default")
	}

	pe.WithRecoverable(true)
	if !pe.Recoverable {
		t.Errorf("expected recoverable to be true after WithRecoverable")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		pe       *PanelError
		expected string
	}{
		{
			name:     "with cause",
			pe:       New(CodeTimeout, "operation timed out", errors.New("deadline exceeded")),
			expected: "[TIMEOUT] operation timed out: deadline exceeded",
		},
		{
			name:     "without cause",
			pe:       New(CodeDecodeFailure, "no state block", nil),
			expected: "[DECODE_FAILURE] no state block",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pe.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorCode
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "panel error", err: New(CodeDecodeFailure, "bad", nil), expected: CodeDecodeFailure},
		{name: "wrapped panel error", err: fmt.Errorf("handler: %w", New(CodeLookupFailure, "bad", nil)), expected: CodeLookupFailure},
		{name: "generic error", err: errors.New("generic"), expected: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAsPanelErrorNil(t *testing.T) {
	if AsPanelError(nil) != nil {
		t.Errorf("expected nil for nil error")
	}
}

func TestFromPanic(t *testing.T) {
	pe := FromPanic("boom", []byte("goroutine 1 [running]:"))
	if pe.Code != CodeInternal {
		t.Errorf("expected CodeInternal, got %v", pe.Code)
	}
	if pe.Error() != "[INTERNAL_ERROR] panic recovered: boom" {
		t.Errorf("unexpected message %q", pe.Error())
	}
	if pe.Context["stack"] != "goroutine 1 [running]:" {
		t.Errorf("expected stack in context")
	}

	cause := errors.New("nil map write")
	if !errors.Is(FromPanic(cause, nil), cause) {
		t.Errorf("expected error panic values to be wrapped")
	}
}
