package cleanup

import "go.uber.org/fx"

// Module provides the retention sweeper.
var Module = fx.Options(
	fx.Provide(NewSweeper),
)
