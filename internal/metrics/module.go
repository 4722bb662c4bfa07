package metrics

import "go.uber.org/fx"

// Module provides the meter provider and the metrics registry.
var Module = fx.Options(
	fx.Provide(NewMeterProvider),
	fx.Provide(NewExportedMetrics),
)
