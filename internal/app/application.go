// Package app assembles the service from its Fx modules and runs it.
package app

import (
	"embed"
	"net/http"

	"go.uber.org/fx"

	"github.com/mulgyeol/tidecast/internal/api"
	"github.com/mulgyeol/tidecast/internal/archive"
	"github.com/mulgyeol/tidecast/internal/cleanup"
	"github.com/mulgyeol/tidecast/internal/collect"
	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/internal/database"
	"github.com/mulgyeol/tidecast/internal/metrics"
	"github.com/mulgyeol/tidecast/internal/region"
	"github.com/mulgyeol/tidecast/internal/repository"
	"github.com/mulgyeol/tidecast/internal/tracing"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

// NewApplication builds the Fx application. Exposed separately from
// RunApplication so tests can validate the dependency graph.
func NewApplication(envFilePath string, embeddedConfig config.EmbeddedConfig, migrationsFS embed.FS) *fx.App {
	return fx.New(
		fx.Supply(
			embeddedConfig,
			fx.Annotate(envFilePath, fx.ResultTags(`name:"envFilePath"`)),
			fx.Annotate(migrationsFS, fx.ResultTags(`name:"migrationsFS"`)),
		),

		config.Module,
		database.Module,
		repository.Module,
		region.Module,
		metrics.Module,
		tracing.Module,
		archive.Module,
		collect.Module,
		cleanup.Module,
		api.Module,

		// The server is only constructed when something depends on it.
		fx.Invoke(func(*http.Server) {}),
	)
}

// RunApplication starts the service and blocks until shutdown.
func RunApplication(envFilePath string, embeddedConfig config.EmbeddedConfig, migrationsFS embed.FS) {
	app := NewApplication(envFilePath, embeddedConfig, migrationsFS)

	app.Run()

	if app.Err() != nil {
		logger.Fatalf("Application run failed: %v", app.Err())
	}
}
