// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/jllopis/rolepanel/pkg/errors"
)

// TimeoutConfig controls timeout behavior.
type TimeoutConfig struct {
	// Duration is the maximum time allowed for the operation. Zero disables
	// the boundary.
	Duration time.Duration

	// OnLate, if set, receives the error fn returns after the deadline has
	// already been reported. It runs on fn's goroutine and is not called
	// when fn finishes cleanly.
	OnLate func(err error)
}

// WithTimeout runs fn with a context bounded by config.Duration and returns
// errors.CodeTimeout if the deadline passes first. fn keeps running in the
// background after a timeout; it must honor ctx to stop early, and its
// eventual error goes to config.OnLate. A panic in fn is returned as a
// CodeInternal error.
func WithTimeout(ctx context.Context, config TimeoutConfig, fn func(ctx context.Context) error) error {
	if config.Duration <= 0 {
		return fn(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, config.Duration)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- errors.FromPanic(r, debug.Stack())
			}
		}()
		done <- fn(ctx)
	}()

	select {
	case <-ctx.Done():
		if config.OnLate != nil {
			go func() {
				if err := <-done; err != nil {
					config.OnLate(err)
				}
			}()
		}
		return errors.New(errors.CodeTimeout, "operation exceeded timeout", ctx.Err()).
			WithContext("timeout", config.Duration.String())
	case err := <-done:
		return err
	}
}
