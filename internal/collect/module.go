package collect

import "go.uber.org/fx"

// Module provides the upserter, the collectors, their registry and the runner.
var Module = fx.Options(
	fx.Provide(NewUpserter),
	fx.Provide(NewSeaObsCollector),
	fx.Provide(NewShortTermCollector),
	fx.Provide(NewMediumTermCollector),
	fx.Provide(NewOpenWeatherCollector),
	fx.Provide(NewWeatherAPICollector),
	fx.Provide(NewRegistry),
	fx.Provide(NewRunner),
	fx.Provide(NewTideImporter),
)
