// Package config provides the service configuration structures and loaders.
// This file defines the Fx providers for configuration-related components.
package config

import "go.uber.org/fx"

// Module provides configuration-related components to Fx.
var Module = fx.Options(
	fx.Provide(NewConfigProvider),
	fx.Provide(func(cfg *Config) *TidecastConfig { return &cfg.Tidecast }),
)
