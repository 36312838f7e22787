// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

// Package errors provides typed error handling with rich context for rolepanel.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies rolepanel errors for logging and metrics.
type ErrorCode string

const (
	// CodeInternal indicates an internal error, including recovered panics.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeInvalidInput indicates the interaction payload was invalid.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeDecodeFailure indicates the panel state could not be decoded from a message.
	CodeDecodeFailure ErrorCode = "DECODE_FAILURE"

	// CodeLookupFailure indicates a guild member could not be resolved.
	CodeLookupFailure ErrorCode = "LOOKUP_FAILURE"

	// CodePlatformIO indicates a reply or message update call failed.
	CodePlatformIO ErrorCode = "PLATFORM_IO_FAILURE"

	// CodeTimeout indicates an operation exceeded its time limit.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeContextLost indicates the context was canceled while waiting.
	CodeContextLost ErrorCode = "CONTEXT_LOST"
)

// PanelError is a typed error with context for observability.
// It implements the error interface and can be unwrapped with errors.As().
type PanelError struct {
	Code        ErrorCode
	Message     string
	Err         error
	Context     map[string]any
	Recoverable bool
}

// Error implements the error interface.
func (e *PanelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements errors.Unwrap for error chain traversal.
func (e *PanelError) Unwrap() error {
	return e.Err
}

// New creates a new PanelError with the given code, message, and cause.
func New(code ErrorCode, msg string, cause error) *PanelError {
	return &PanelError{
		Code:    code,
		Message: msg,
		Err:     cause,
		Context: make(map[string]any),
	}
}

// WithContext adds a key-value pair to the error context.
// Returns the error for method chaining.
func (e *PanelError) WithContext(key string, value any) *PanelError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithRecoverable sets whether the error can be recovered from.
// Returns the error for method chaining.
func (e *PanelError) WithRecoverable(recoverable bool) *PanelError {
	e.Recoverable = recoverable
	return e
}

// AsPanelError finds a PanelError in err's chain, wrapping err as
// CodeInternal when there is none.
func AsPanelError(err error) *PanelError {
	if err == nil {
		return nil
	}
	var pe *PanelError
	if errors.As(err, &pe) {
		return pe
	}
	return New(CodeInternal, "unclassified error", err)
}

// CodeOf returns the code of the first PanelError in err's chain, or
// CodeInternal for any other non-nil error.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return AsPanelError(err).Code
}

// FromPanic converts a recovered panic value into a CodeInternal error
// carrying the goroutine stack under the "stack" context key.
func FromPanic(r any, stack []byte) *PanelError {
	cause, ok := r.(error)
	if !ok {
		cause = fmt.Errorf("%v", r)
	}
	return New(CodeInternal, "panic recovered", cause).
		WithContext("stack", string(stack))
}
