// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jllopis/rolepanel/pkg/errors"
)

// Outcome values recorded for each dispatched interaction.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomePanic   = "panic"
	OutcomeIgnored = "ignored"
)

// PanelMetrics tracks interaction traffic, decode failures and errors.
// All methods are safe to call on a nil receiver.
type PanelMetrics struct {
	interactions   metric.Int64Counter
	decodeFailures metric.Int64Counter
	errors         metric.Int64Counter
	duration       metric.Float64Histogram
}

// NewPanelMetrics creates the instruments on the global meter provider.
func NewPanelMetrics() (*PanelMetrics, error) {
	return NewPanelMetricsWithMeter(otel.Meter("rolepanel/panel"))
}

// NewPanelMetricsWithMeter creates the instruments on meter.
func NewPanelMetricsWithMeter(meter metric.Meter) (*PanelMetrics, error) {
	interactions, err := meter.Int64Counter(
		"rolepanel.interactions.total",
		metric.WithDescription("Dispatched interactions by kind and outcome"),
	)
	if err != nil {
		return nil, err
	}

	decodeFailures, err := meter.Int64Counter(
		"rolepanel.decode.failures.total",
		metric.WithDescription("Panel messages whose embedded state could not be decoded"),
	)
	if err != nil {
		return nil, err
	}

	errorCounter, err := meter.Int64Counter(
		"rolepanel.errors.total",
		metric.WithDescription("Caught errors by code"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"rolepanel.dispatch.duration",
		metric.WithDescription("Time spent handling one interaction"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &PanelMetrics{
		interactions:   interactions,
		decodeFailures: decodeFailures,
		errors:         errorCounter,
		duration:       duration,
	}, nil
}

// RecordInteraction counts one dispatched interaction and its duration.
func (m *PanelMetrics) RecordInteraction(ctx context.Context, kind, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrInteractionKind, kind),
		attribute.String(AttrOutcome, outcome),
	)
	m.interactions.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
}

// RecordError counts one caught error. Decode failures are also counted
// on their own instrument.
func (m *PanelMetrics) RecordError(ctx context.Context, code errors.ErrorCode) {
	if m == nil {
		return
	}
	if code == "" {
		code = errors.CodeInternal
	}
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrErrorCode, string(code)),
	))
	if code == errors.CodeDecodeFailure {
		m.decodeFailures.Add(ctx, 1)
	}
}
