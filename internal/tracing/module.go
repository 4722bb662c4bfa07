package tracing

import "go.uber.org/fx"

// Module provides the tracer provider.
var Module = fx.Options(
	fx.Provide(NewTracerProvider),
)
