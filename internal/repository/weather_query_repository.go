package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

// WeatherQueryRepository serves the read APIs. Each method covers one table
// window; the handlers degrade individual failures to empty slices.
type WeatherQueryRepository interface {
	// FindWeatherForecasts returns short-term forecast rows for a location in
	// [startKST, endKST) on the fcst_datetime_kr column, ascending.
	FindWeatherForecasts(ctx context.Context, locationCode, startKST, endKST string) ([]entity.WeatherForecast, error)
	// FindTideData returns tide rows in [startDate, endDate] inclusive, ascending.
	FindTideData(ctx context.Context, locationCode, startDate, endDate string) ([]entity.TideData, error)
	// FindMarineObservationsForDay returns a station's observations for one day
	// (datePrefix is YYYYMMDD), ascending by observation time.
	FindMarineObservationsForDay(ctx context.Context, stationID, datePrefix string) ([]entity.MarineObservation, error)
	// FindLatestMarineObservationAt returns the latest observation at or before
	// the YYYYMMDDHHMM limit within the same day, or an empty slice.
	FindLatestMarineObservationAt(ctx context.Context, stationID, datePrefix, limit string) ([]entity.MarineObservation, error)
	// FindMediumTermForecasts returns medium-term rows of one forecast type in
	// [startKST, endKST] inclusive on the tm_ef_kr column, ascending by tm_ef.
	FindMediumTermForecasts(ctx context.Context, locationCode, forecastType, startKST, endKST string) ([]entity.MediumTermForecast, error)
	// FindWeatherAPIHourly returns hourly WeatherAPI forecast rows for the date
	// window [startDate, endDate], ordered by date then time.
	FindWeatherAPIHourly(ctx context.Context, locationCode, startDate, endDate string) ([]entity.WeatherAPIData, error)
}

type gormWeatherQueryRepository struct {
	db *gorm.DB
}

// NewWeatherQueryRepository creates a GORM-backed WeatherQueryRepository.
func NewWeatherQueryRepository(db *gorm.DB) WeatherQueryRepository {
	return &gormWeatherQueryRepository{db: db}
}

func (r *gormWeatherQueryRepository) FindWeatherForecasts(ctx context.Context, locationCode, startKST, endKST string) ([]entity.WeatherForecast, error) {
	var rows []entity.WeatherForecast
	err := r.db.WithContext(ctx).
		Where("location_code = ? AND fcst_datetime_kr >= ? AND fcst_datetime_kr < ?", locationCode, startKST, endKST).
		Order("fcst_datetime_kr ASC").
		Find(&rows).Error
	if err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to query weather forecasts", err, exception.IsTemporary(err))
	}
	return rows, nil
}

func (r *gormWeatherQueryRepository) FindTideData(ctx context.Context, locationCode, startDate, endDate string) ([]entity.TideData, error) {
	var rows []entity.TideData
	err := r.db.WithContext(ctx).
		Where("location_code = ? AND obs_date >= ? AND obs_date <= ?", locationCode, startDate, endDate).
		Order("obs_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to query tide data", err, exception.IsTemporary(err))
	}
	return rows, nil
}

func (r *gormWeatherQueryRepository) FindMarineObservationsForDay(ctx context.Context, stationID, datePrefix string) ([]entity.MarineObservation, error) {
	var rows []entity.MarineObservation
	err := r.db.WithContext(ctx).
		Where("station_id = ? AND observation_time_kst LIKE ?", stationID, datePrefix+"%").
		Order("observation_time_kst ASC").
		Find(&rows).Error
	if err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to query marine observations", err, exception.IsTemporary(err))
	}
	return rows, nil
}

func (r *gormWeatherQueryRepository) FindLatestMarineObservationAt(ctx context.Context, stationID, datePrefix, limit string) ([]entity.MarineObservation, error) {
	var rows []entity.MarineObservation
	err := r.db.WithContext(ctx).
		Where("station_id = ? AND observation_time_kst LIKE ? AND observation_time_kst <= ?", stationID, datePrefix+"%", limit).
		Order("observation_time_kst DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to query latest marine observation", err, exception.IsTemporary(err))
	}
	return rows, nil
}

func (r *gormWeatherQueryRepository) FindMediumTermForecasts(ctx context.Context, locationCode, forecastType, startKST, endKST string) ([]entity.MediumTermForecast, error) {
	var rows []entity.MediumTermForecast
	err := r.db.WithContext(ctx).
		Where("location_code = ? AND forecast_type = ? AND tm_ef_kr >= ? AND tm_ef_kr <= ?", locationCode, forecastType, startKST, endKST).
		Order("tm_ef ASC").
		Find(&rows).Error
	if err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to query medium-term forecasts", err, exception.IsTemporary(err))
	}
	return rows, nil
}

func (r *gormWeatherQueryRepository) FindWeatherAPIHourly(ctx context.Context, locationCode, startDate, endDate string) ([]entity.WeatherAPIData, error) {
	var rows []entity.WeatherAPIData
	err := r.db.WithContext(ctx).
		Where("code = ? AND data_type = ? AND forecast_time <> '' AND forecast_date >= ? AND forecast_date <= ?",
			locationCode, "forecast", startDate, endDate).
		Order("forecast_date ASC").
		Order("forecast_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to query weatherapi hourly rows", err, exception.IsTemporary(err))
	}
	return rows, nil
}
