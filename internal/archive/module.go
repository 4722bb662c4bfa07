package archive

import "go.uber.org/fx"

// Module provides the parquet archiver.
var Module = fx.Options(
	fx.Provide(NewArchiver),
)
