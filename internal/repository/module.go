package repository

import "go.uber.org/fx"

// Module provides every repository implementation.
var Module = fx.Options(
	fx.Provide(
		NewLocationRepository,
		NewWeatherQueryRepository,
		NewCollectionLogRepository,
		NewRegionRepository,
		NewAdRepository,
		NewNoticeRepository,
		NewCleanupRepository,
	),
)
