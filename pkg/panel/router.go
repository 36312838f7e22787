// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package panel

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jllopis/rolepanel/pkg/errlog"
	"github.com/jllopis/rolepanel/pkg/errors"
	"github.com/jllopis/rolepanel/pkg/resilience"
	"github.com/jllopis/rolepanel/pkg/telemetry"
)

// DefaultTimeout keeps a dispatch inside the platform's three second
// acknowledgement window.
const DefaultTimeout = 2500 * time.Millisecond

// Router sends each event to its handler. It is the only place where
// handler failures are caught: every error or panic is recorded to the
// sink and swallowed, so nothing escapes into the gateway loop.
type Router struct {
	service *Service
	sink    errlog.Sink
	logger  *slog.Logger
	metrics *telemetry.PanelMetrics
	tracer  trace.Tracer
	timeout time.Duration
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithTimeout bounds each dispatch. Zero disables the bound.
func WithTimeout(d time.Duration) RouterOption {
	return func(r *Router) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the router logger.
func WithLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics sets the interaction metrics.
func WithMetrics(m *telemetry.PanelMetrics) RouterOption {
	return func(r *Router) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used for dispatch spans.
func WithTracer(tracer trace.Tracer) RouterOption {
	return func(r *Router) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// NewRouter creates a router over service, reporting failures to sink.
func NewRouter(service *Service, sink errlog.Sink, opts ...RouterOption) *Router {
	if sink == nil {
		sink = errlog.Discard
	}
	r := &Router{
		service: service,
		sink:    sink,
		logger:  slog.Default(),
		tracer:  otel.Tracer("rolepanel/panel"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dispatch handles one event to completion. It never panics and never
// returns an error; a failed interaction is logged and left unanswered.
func (r *Router) Dispatch(ctx context.Context, ev Event) {
	if ev == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.sink.Record(ctx, errors.FromPanic(rec, debug.Stack()))
		}
	}()
	b := ev.base()
	kind := string(ev.Kind())
	dispatchID := uuid.NewString()

	ctx, span := r.tracer.Start(ctx, "panel.Dispatch", trace.WithAttributes(
		telemetry.InteractionAttributes(kind, b.ID, dispatchID, b.GuildID, b.ChannelID, b.Actor.ID)...,
	))
	defer span.End()
	switch e := ev.(type) {
	case *PickRole:
		span.SetAttributes(attribute.String(telemetry.AttrRoleKey, e.RoleKey))
	case *PickPerson:
		span.SetAttributes(attribute.String(telemetry.AttrPersonID, e.PersonID))
	}

	ctx = telemetry.ContextWithDispatch(ctx, telemetry.Dispatch{ID: dispatchID, Kind: kind, InteractionID: b.ID})
	r.logger.DebugContext(ctx, "panel.dispatch.start",
		slog.String("guild_id", b.GuildID),
		slog.String("actor_id", b.Actor.ID),
	)

	start := time.Now()
	err := r.run(ctx, ev)
	elapsed := time.Since(start)

	outcome := telemetry.OutcomeOK
	if err != nil {
		pe := errors.AsPanelError(err).
			WithContext("dispatch_id", dispatchID).
			WithContext("kind", kind)
		outcome = telemetry.OutcomeError
		if _, ok := pe.Context["stack"]; ok {
			outcome = telemetry.OutcomePanic
		}
		span.RecordError(pe)
		span.SetStatus(codes.Error, string(pe.Code))
		r.logger.WarnContext(ctx, "panel.dispatch.error", slog.String("code", string(pe.Code)))
		r.sink.Record(ctx, pe)
	}

	r.metrics.RecordInteraction(ctx, kind, outcome, elapsed)
	r.logger.InfoContext(ctx, "panel.dispatch.complete",
		slog.String("outcome", outcome),
		slog.Int64("duration_ms", elapsed.Milliseconds()),
	)
}

func (r *Router) run(ctx context.Context, ev Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.FromPanic(rec, debug.Stack())
		}
	}()
	cfg := resilience.TimeoutConfig{
		Duration: r.timeout,
		OnLate: func(err error) {
			r.sink.Record(ctx, errors.AsPanelError(err).WithContext("late", true))
		},
	}
	return resilience.WithTimeout(ctx, cfg, func(ctx context.Context) error {
		return r.handle(ctx, ev)
	})
}

func (r *Router) handle(ctx context.Context, ev Event) error {
	switch e := ev.(type) {
	case *OpenPanel:
		return r.service.Open(ctx, e)
	case *PickRole:
		return r.service.PickRole(ctx, e)
	case *PickPerson:
		return r.service.PickPerson(ctx, e)
	default:
		return errors.New(errors.CodeInvalidInput, "unsupported interaction", nil).
			WithContext("kind", string(ev.Kind()))
	}
}
