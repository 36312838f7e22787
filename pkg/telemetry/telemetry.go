// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Resource attribute keys identifying the bot installation.
const (
	AttrAppID        = "discord.app.id"
	AttrCommandName  = "discord.command.name"
	AttrCommandGuild = "discord.command.guild_id"
)

// ShutdownFunc flushes and stops the installed providers.
type ShutdownFunc func(context.Context) error

// Config selects the exporter and names the bot installation that every
// span and metric is attributed to.
type Config struct {
	// Exporter is one of "none", "stdout" or "otlp".
	Exporter     string
	OTLPEndpoint string
	OTLPInsecure bool

	AppID       string
	GuildID     string // empty for a global command
	CommandName string
}

// InitWithConfig installs global tracer and meter providers. With "none"
// the no-op providers are left in place.
func InitWithConfig(serviceName, version string, cfg Config) (ShutdownFunc, error) {
	if cfg.Exporter == "" || cfg.Exporter == "none" {
		return func(context.Context) error { return nil }, nil
	}

	spans, readings, err := newExporters(cfg)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(botAttributes(serviceName, version, cfg)...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(spans, trace.WithBatchTimeout(time.Second)),
		trace.WithResource(res),
	)
	mp := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(readings, metric.WithInterval(time.Minute))),
		metric.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

func botAttributes(serviceName, version string, cfg Config) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(version),
	}
	if cfg.AppID != "" {
		attrs = append(attrs, attribute.String(AttrAppID, cfg.AppID))
	}
	if cfg.CommandName != "" {
		attrs = append(attrs, attribute.String(AttrCommandName, cfg.CommandName))
	}
	if cfg.GuildID != "" {
		attrs = append(attrs, attribute.String(AttrCommandGuild, cfg.GuildID))
	}
	return attrs
}

func newExporters(cfg Config) (trace.SpanExporter, metric.Exporter, error) {
	switch cfg.Exporter {
	case "stdout":
		spans, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		readings, err := stdoutmetric.New()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create metric exporter: %w", err)
		}
		return spans, readings, nil
	case "otlp":
		if cfg.OTLPEndpoint == "" {
			return nil, nil, fmt.Errorf("otlp endpoint is required")
		}
		traceOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
		metricOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.OTLPInsecure {
			traceOpts = append(traceOpts, otlptracegrpc.WithInsecure())
			metricOpts = append(metricOpts, otlpmetricgrpc.WithInsecure())
		}
		spans, err := otlptracegrpc.New(context.Background(), traceOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create otlp trace exporter: %w", err)
		}
		readings, err := otlpmetricgrpc.New(context.Background(), metricOpts...)
		if err != nil {
			_ = spans.Shutdown(context.Background())
			return nil, nil, fmt.Errorf("failed to create otlp metric exporter: %w", err)
		}
		return spans, readings, nil
	default:
		return nil, nil, fmt.Errorf("unknown telemetry exporter: %s", cfg.Exporter)
	}
}
