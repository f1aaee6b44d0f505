// Package tracing sets up OpenTelemetry export for pagination sessions
package tracing

import (
	"context"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Settings are read from the environment
type Settings struct {
	Endpoint string `env:"PAGERBOT_OTEL_ENDPOINT"`
	Enabled  string `env:"PAGERBOT_OTEL_ENABLED"`
}

// Active reports whether an exporter should be installed
func (s Settings) Active() bool {
	return s.Endpoint != "" && !strings.EqualFold(s.Enabled, "false")
}

// ShutdownFunc flushes pending spans
type ShutdownFunc func(context.Context) error

// Setup installs a global tracer provider exporting over OTLP/HTTP.
//
// Tracing is opt-in: without PAGERBOT_OTEL_ENDPOINT, or with
// PAGERBOT_OTEL_ENABLED=false, it returns a no-op shutdown and the
// global no-op provider stays in place.
func Setup(ctx context.Context, serviceName, version string) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }

	var s Settings
	if err := env.Parse(&s); err != nil {
		return noop, fmt.Errorf("parse env: %w", err)
	}
	if !s.Active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(s.Endpoint))
	if err != nil {
		return noop, fmt.Errorf("create exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return noop, fmt.Errorf("create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
