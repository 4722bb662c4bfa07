// Package tracing wires the OpenTelemetry tracer provider. Tracing is off by
// default; when enabled the exporter (OTLP over grpc or http) is selected by
// configuration.
package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

const ModuleTracing = "tracing"

// NewTracerProvider creates and globally registers the tracer provider.
// A disabled config yields a noop provider so span call sites never branch.
func NewTracerProvider(lc fx.Lifecycle, cfg *config.Config) (trace.TracerProvider, error) {
	tc := cfg.Tidecast.Tracing
	if !tc.Enabled {
		provider := noop.NewTracerProvider()
		otel.SetTracerProvider(provider)
		return provider, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var exporter *otlptrace.Exporter
	var err error
	switch tc.Exporter {
	case "grpc":
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(tc.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
	case "http":
		exporter, err = otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(tc.Endpoint),
			otlptracehttp.WithInsecure(),
		)
	default:
		return nil, exception.NewAppErrorf(ModuleTracing, exception.KindValidation, "unknown tracing exporter: %s", tc.Exporter)
	}
	if err != nil {
		return nil, exception.NewAppError(ModuleTracing, exception.KindUnhandled, "failed to create OTLP exporter", err, false)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "tidecast"),
		)),
	)
	otel.SetTracerProvider(provider)
	logger.Infof("tracing enabled: OTLP %s exporter at %s", tc.Exporter, tc.Endpoint)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
