package database

import (
	"context"
	"embed"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

// MigrationsParams carries the embedded migrations filesystem supplied by main.
type MigrationsParams struct {
	fx.In
	MigrationsFS embed.FS `name:"migrationsFS"`
}

// migrationsPath is the directory inside the embedded filesystem that holds
// the SQL migration files.
const migrationsPath = "resources/migrations"

// NewGormDB opens the service database connection, runs the embedded
// migrations, and registers a lifecycle hook that closes the connection on
// shutdown.
func NewGormDB(lc fx.Lifecycle, cfg *config.Config, params MigrationsParams) (*gorm.DB, error) {
	dbCfg := cfg.Tidecast.Database

	db, err := Open(dbCfg)
	if err != nil {
		return nil, err
	}

	if err := MigrateUp(db, dbCfg.Type, params.MigrationsFS, migrationsPath); err != nil {
		_ = Close(db)
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Infof("Closing DB connection.")
			return Close(db)
		},
	})

	return db, nil
}

// Module provides the database connection to Fx.
var Module = fx.Options(
	fx.Provide(NewGormDB),
)
