package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/repository"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

// newMockDB opens a GORM connection over a sqlmock driver.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)
	return db, mock
}

func TestExecuteUpsert(t *testing.T) {
	db, mock := newMockDB(t)

	rows := []entity.TideData{
		{LocationCode: "DT_0063", ObsDate: "2026-01-15"},
		{LocationCode: "DT_0063", ObsDate: "2026-01-16"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "tide_data" .+ ON CONFLICT \("location_code","obs_date"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	affected, err := repository.ExecuteUpsert(context.Background(), db, &rows, "tide_data",
		[]string{"location_code", "obs_date"}, []string{"lvl1", "lvl2"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteUpsertDoNothing(t *testing.T) {
	db, mock := newMockDB(t)

	rows := []entity.TideData{{LocationCode: "DT_0063", ObsDate: "2026-01-15"}}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "tide_data" .+ ON CONFLICT \("location_code","obs_date"\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	affected, err := repository.ExecuteUpsert(context.Background(), db, &rows, "tide_data",
		[]string{"location_code", "obs_date"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteUpsertFailure(t *testing.T) {
	db, mock := newMockDB(t)

	rows := []entity.TideData{{LocationCode: "DT_0063", ObsDate: "2026-01-15"}}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "tide_data"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repository.ExecuteUpsert(context.Background(), db, &rows, "tide_data",
		[]string{"location_code", "obs_date"}, []string{"lvl1"})
	assert.Error(t, err)
	assert.Equal(t, exception.KindPersistence, exception.KindOf(err))
}

func TestDeleteOlderThan(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCleanupRepository(db)

	mock.ExpectExec(`DELETE FROM weather_forecasts WHERE fcst_datetime < \$1`).
		WithArgs("202601010000").
		WillReturnResult(sqlmock.NewResult(0, 42))

	deleted, err := repo.DeleteOlderThan(context.Background(), "weather_forecasts", "fcst_datetime", "202601010000")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountOlderThan(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCleanupRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "tide_data" WHERE obs_date < \$1`).
		WithArgs("2026-01-01").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountOlderThan(context.Background(), "tide_data", "obs_date", "2026-01-01")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
