package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/fx"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

const ModuleMetrics = "metrics"

// NewMeterProvider creates and globally registers the meter provider. When
// OTLP export is disabled the provider is a noop, so instrument call sites
// never branch.
func NewMeterProvider(lc fx.Lifecycle, cfg *config.Config) (otelmetric.MeterProvider, error) {
	mc := cfg.Tidecast.Metrics.OTLP
	if !mc.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var exporter sdkmetric.Exporter
	var err error
	switch mc.Exporter {
	case "grpc":
		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mc.Endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	case "http":
		exporter, err = otlpmetrichttp.New(ctx,
			otlpmetrichttp.WithEndpoint(mc.Endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	default:
		return nil, exception.NewAppErrorf(ModuleMetrics, exception.KindValidation, "unknown metric exporter: %s", mc.Exporter)
	}
	if err != nil {
		return nil, exception.NewAppError(ModuleMetrics, exception.KindUnhandled, "failed to create OTLP metric exporter", err, false)
	}

	interval := time.Duration(mc.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
		sdkmetric.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "tidecast"),
		)),
	)
	otel.SetMeterProvider(provider)
	logger.Infof("metric export enabled: OTLP %s exporter at %s", mc.Exporter, mc.Endpoint)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
