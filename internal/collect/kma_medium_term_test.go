package collect

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/region"
	"github.com/mulgyeol/tidecast/pkg/retry"
)

type stubRegionRepo struct {
	mappings map[string][]entity.RegionMapping
}

func (s *stubRegionRepo) ListByForecastType(_ context.Context, forecastType string) ([]entity.RegionMapping, error) {
	return s.mappings[forecastType], nil
}

func (s *stubRegionRepo) FindByLocationCode(_ context.Context, _ string) ([]entity.RegionMapping, error) {
	return nil, nil
}

func newCollectMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

// marineFeedBody renders a framed medium-term payload with n records for one
// region, each with a distinct TM_EF.
func marineFeedBody(n int) string {
	var b strings.Builder
	b.WriteString("#START7777\n")
	b.WriteString("# REG_ID TM_FC TM_EF MOD\n")
	for i := 0; i < n; i++ {
		b.WriteString(fmt.Sprintf("12B20000,202601150600,202601%02d%02d00,A02\n", 16+i/24, i%24))
	}
	b.WriteString("#7777END\n")
	return b.String()
}

const emptyFeedBody = "#START7777\n# REG_ID TM_FC TM_EF MOD\n#7777END\n"

func newMediumTermFixture(t *testing.T, handler http.Handler) (*MediumTermCollector, sqlmock.Sqlmock) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.NewConfig()
	cfg.Tidecast.Providers.KMA.AuthKey = "test-key"
	cfg.Tidecast.Providers.KMA.HubBaseURL = srv.URL
	cfg.Tidecast.Collect.ChunkDelayMs = 0

	db, mock := newCollectMockDB(t)
	catalog := region.NewCatalog(&stubRegionRepo{mappings: map[string][]entity.RegionMapping{
		entity.ForecastTypeMarine: {
			{RegID: "12B20000", ForecastType: entity.ForecastTypeMarine, LocationCode: "DT_0063", RegName: "남해동부"},
		},
	}})

	collector := NewMediumTermCollector(cfg, catalog, NewUpserter(db, cfg))
	collector.policy = retry.NewSchedulePolicy([]int{0})
	return collector, mock
}

// A feed whose trailing chunk fails after an earlier chunk committed still
// reports the committed rows and counts as partial, not fully failed.
func TestMediumTermCollectKeepsCommittedChunks(t *testing.T) {
	marineCalls := 0
	collector, mock := newMediumTermFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "fct_afs_wo.php"):
			marineCalls++
			if marineCalls == 1 {
				http.Error(w, "upstream hiccup", http.StatusInternalServerError)
				return
			}
			fmt.Fprint(w, marineFeedBody(51))
		case strings.Contains(r.URL.Path, "fct_afs_wc.php"):
			fmt.Fprint(w, emptyFeedBody)
		default:
			http.NotFound(w, r)
		}
	}))

	// 51 rows at chunk size 50: the first chunk lands, the second fails.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "medium_term_forecasts" .+ ON CONFLICT .+ DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 50))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "medium_term_forecasts"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	outcome, err := collector.Collect(context.Background(), Options{})
	assert.NoError(t, err)
	assert.Equal(t, int64(50), outcome.Records)
	assert.Equal(t, 1, outcome.Locations)
	assert.Equal(t, 1, outcome.Retried)
	assert.Empty(t, outcome.Failed)
	assert.Error(t, outcome.Errs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediumTermCollectAllFeedsFailed(t *testing.T) {
	collector, _ := newMediumTermFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))

	outcome, err := collector.Collect(context.Background(), Options{})
	assert.Error(t, err)
	assert.Equal(t, int64(0), outcome.Records)
	assert.Equal(t, []string{entity.ForecastTypeMarine, entity.ForecastTypeTemperature}, outcome.Failed)
}
