package main

import (
	"embed"
	"os"

	"github.com/mulgyeol/tidecast/internal/app"
	"github.com/mulgyeol/tidecast/internal/config"
)

// embeddedConfig embeds the default YAML configuration. Environment variables
// override any value in it at startup.
//
//go:embed resources/application.yaml
var embeddedConfig []byte

// migrationsFS bundles the SQL migration scripts into the binary so the
// service can migrate its own schema on startup.
//
//go:embed all:resources/migrations
var migrationsFS embed.FS

// main is the entry point. Fx handles SIGINT/SIGTERM and drives the graceful
// shutdown of the HTTP server and the database connection.
func main() {
	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath == "" {
		envFilePath = ".env"
	}

	app.RunApplication(envFilePath, config.EmbeddedConfig(embeddedConfig), migrationsFS)
}
