package region

import "go.uber.org/fx"

// Module provides the region catalog.
var Module = fx.Options(
	fx.Provide(NewCatalog),
)
