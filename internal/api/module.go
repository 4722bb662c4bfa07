package api

import "go.uber.org/fx"

// Module provides the handlers, the router and the HTTP server.
var Module = fx.Options(
	fx.Provide(NewWeatherHandler),
	fx.Provide(NewNoticeHandler),
	fx.Provide(NewAdHandler),
	fx.Provide(NewCollectHandler),
	fx.Provide(NewRouter),
	fx.Provide(NewServer),
)
