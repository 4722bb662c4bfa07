package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/region"
)

type stubLocationRepo struct {
	location *entity.Location
}

func (s *stubLocationRepo) ListAll(_ context.Context) ([]entity.Location, error) {
	return nil, nil
}

func (s *stubLocationRepo) ListWithCoordinates(_ context.Context) ([]entity.Location, error) {
	return nil, nil
}

func (s *stubLocationRepo) ListWithGrid(_ context.Context) ([]entity.Location, error) {
	return nil, nil
}

func (s *stubLocationRepo) FindByCode(_ context.Context, _ string) (*entity.Location, error) {
	return s.location, nil
}

type queryWindow struct {
	start, end string
}

// captureQueries records the window bounds each read query was called with.
type captureQueries struct {
	forecasts queryWindow
	tide      queryWindow
	medium    map[string]queryWindow
	hourly    queryWindow
	obsDays   []string
	obsLatest []queryWindow
}

func newCaptureQueries() *captureQueries {
	return &captureQueries{medium: map[string]queryWindow{}}
}

func (c *captureQueries) FindWeatherForecasts(_ context.Context, _, startKST, endKST string) ([]entity.WeatherForecast, error) {
	c.forecasts = queryWindow{startKST, endKST}
	return nil, nil
}

func (c *captureQueries) FindTideData(_ context.Context, _, startDate, endDate string) ([]entity.TideData, error) {
	c.tide = queryWindow{startDate, endDate}
	return nil, nil
}

func (c *captureQueries) FindMarineObservationsForDay(_ context.Context, stationID, datePrefix string) ([]entity.MarineObservation, error) {
	c.obsDays = append(c.obsDays, stationID+"/"+datePrefix)
	return nil, nil
}

func (c *captureQueries) FindLatestMarineObservationAt(_ context.Context, stationID, datePrefix, limit string) ([]entity.MarineObservation, error) {
	c.obsLatest = append(c.obsLatest, queryWindow{stationID + "/" + datePrefix, limit})
	return nil, nil
}

func (c *captureQueries) FindMediumTermForecasts(_ context.Context, _, forecastType, startKST, endKST string) ([]entity.MediumTermForecast, error) {
	c.medium[forecastType] = queryWindow{startKST, endKST}
	return nil, nil
}

func (c *captureQueries) FindWeatherAPIHourly(_ context.Context, _, startDate, endDate string) ([]entity.WeatherAPIData, error) {
	c.hourly = queryWindow{startDate, endDate}
	return nil, nil
}

type stubRegionRepo struct {
	rows []entity.RegionMapping
}

func (s *stubRegionRepo) ListByForecastType(_ context.Context, _ string) ([]entity.RegionMapping, error) {
	return s.rows, nil
}

func (s *stubRegionRepo) FindByLocationCode(_ context.Context, _ string) ([]entity.RegionMapping, error) {
	return s.rows, nil
}

func newWeatherFixture() (*WeatherHandler, *captureQueries) {
	stationA, stationB := "22101", "22102"
	queries := newCaptureQueries()
	handler := NewWeatherHandler(
		&stubLocationRepo{location: &entity.Location{Code: "DT_0063", StationIDA: &stationA, StationIDB: &stationB}},
		queries,
		region.NewCatalog(&stubRegionRepo{rows: []entity.RegionMapping{
			{RegID: "12B20000", ForecastType: entity.ForecastTypeMarine, LocationCode: "DT_0063"},
		}}),
	)
	return handler, queries
}

func TestWeatherTideQueryWindows(t *testing.T) {
	handler, queries := newWeatherFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/weather-tide?code=DT_0063&date=2026-01-15", nil)
	rec := httptest.NewRecorder()
	handler.WeatherTide(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Short-term forecasts cover three days, end exclusive.
	assert.Equal(t, queryWindow{"2026-01-15T00:00:00+09:00", "2026-01-18T00:00:00+09:00"}, queries.forecasts)
	// Tide covers two weeks, end inclusive.
	assert.Equal(t, queryWindow{"2026-01-15", "2026-01-28"}, queries.tide)
	// Medium-term rows cover D+3 through the end of D+10, both types.
	want := queryWindow{"2026-01-18T00:00:00+09:00", "2026-01-25T23:59:59+09:00"}
	assert.Equal(t, want, queries.medium[entity.ForecastTypeMarine])
	assert.Equal(t, want, queries.medium[entity.ForecastTypeTemperature])
	// Hourly rows share the tide window.
	assert.Equal(t, queryWindow{"2026-01-15", "2026-01-28"}, queries.hourly)
	// Both stations are queried for the requested day.
	assert.Equal(t, []string{"22101/20260115", "22102/20260115"}, queries.obsDays)
	assert.Empty(t, queries.obsLatest)
}

func TestWeatherTideTimeParamSelectsLatest(t *testing.T) {
	handler, queries := newWeatherFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/weather-tide?code=DT_0063&date=2026-01-15&time=0930", nil)
	rec := httptest.NewRecorder()
	handler.WeatherTide(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, queries.obsDays)
	assert.Equal(t, []queryWindow{
		{"22101/20260115", "202601150930"},
		{"22102/20260115", "202601150930"},
	}, queries.obsLatest)
}

func TestMediumWeatherQueryWindows(t *testing.T) {
	handler, queries := newWeatherFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/medium-weather?code=DT_0063&date=2026-01-15", nil)
	rec := httptest.NewRecorder()
	handler.MediumWeather(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, queryWindow{"2026-01-15T00:00:00+09:00", "2026-01-18T00:00:00+09:00"}, queries.forecasts)
	// Medium-term rows cover D+0 through the end of D+9.
	want := queryWindow{"2026-01-15T00:00:00+09:00", "2026-01-24T23:59:59+09:00"}
	assert.Equal(t, want, queries.medium[entity.ForecastTypeMarine])
	assert.Equal(t, want, queries.medium[entity.ForecastTypeTemperature])
}
