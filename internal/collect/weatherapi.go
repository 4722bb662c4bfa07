package collect

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/provider/weatherapi"
	"github.com/mulgyeol/tidecast/internal/repository"
	"github.com/mulgyeol/tidecast/internal/transform"
	"github.com/mulgyeol/tidecast/pkg/retry"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

var weatherAPIUpdateColumns = []string{
	"code", "location_name", "location_region", "location_country",
	"latitude", "longitude", "timezone_id", "observation_time_local",
	"condition_text", "condition_icon", "condition_code",
	"temp_c", "temp_f", "feelslike_c", "feelslike_f",
	"maxtemp_c", "mintemp_c", "avgtemp_c",
	"wind_mph", "wind_kph", "wind_degree", "wind_direction", "gust_mph", "gust_kph",
	"pressure_mb", "humidity", "visibility_km", "cloud", "uv",
	"precip_mm", "totalprecip_mm", "chance_of_rain", "chance_of_snow",
	"is_day", "air_quality_pm2_5", "air_quality_pm10", "updated_at",
}

// WeatherAPICollector collects WeatherAPI.com current conditions plus the
// multi-day daily+hourly forecast per location. The provider query key is the
// "lat,lng" string, which is also the stored location_key.
type WeatherAPICollector struct {
	cfg       config.WeatherAPIConfig
	locations repository.LocationRepository
	upserter  *Upserter
	policy    retry.Policy
}

// NewWeatherAPICollector creates the WeatherAPI collector.
func NewWeatherAPICollector(cfg *config.Config, locations repository.LocationRepository, upserter *Upserter) *WeatherAPICollector {
	waCfg := cfg.Tidecast.Providers.WeatherAPI
	attempts := waCfg.MaxAttempts
	if attempts <= 0 {
		attempts = 2
	}
	return &WeatherAPICollector{
		cfg:       waCfg,
		locations: locations,
		upserter:  upserter,
		policy:    retry.NewLinearBackoffPolicy(attempts, 0, 1000),
	}
}

func (c *WeatherAPICollector) Name() string {
	return "weatherapi"
}

// LocationKey renders the "lat,lng" provider query for a location.
func LocationKey(lat, lng float64) string {
	return fmt.Sprintf("%g,%g", lat, lng)
}

func (c *WeatherAPICollector) Collect(ctx context.Context, opts Options) (*Outcome, error) {
	client, err := weatherapi.NewClient(c.cfg)
	if err != nil {
		return nil, err
	}

	locations, err := c.locations.ListWithCoordinates(ctx)
	if err != nil {
		return nil, err
	}
	locations = filterLocations(locations, opts.LocationCodes)
	if len(locations) == 0 {
		return nil, exception.NewAppErrorf(ModuleCollect, exception.KindValidation, "no locations with coordinates to collect")
	}

	batchSize := c.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}
	delay := time.Duration(c.cfg.BatchDelayMs) * time.Millisecond

	var mu sync.Mutex
	var rows []entity.WeatherAPIData
	retried := 0
	errs := forEachBatch(ctx, locations, batchSize, delay, func(ctx context.Context, _ int, loc entity.Location) error {
		key := LocationKey(*loc.Latitude, *loc.Longitude)
		attempts := 0
		err := retry.Do(ctx, c.policy, "weatherapi["+loc.Code+"]", func(ctx context.Context) error {
			attempts++
			current, err := client.FetchCurrent(ctx, key, c.cfg.IncludeAQI)
			if err != nil {
				return err
			}
			forecast, err := client.FetchForecast(ctx, key, c.cfg.ForecastDays, c.cfg.IncludeAQI)
			if err != nil {
				return err
			}

			locRows := []entity.WeatherAPIData{transform.CurrentRow(key, loc.Code, current)}
			locRows = append(locRows, transform.ForecastRows(key, loc.Code, forecast)...)
			mu.Lock()
			rows = append(rows, locRows...)
			mu.Unlock()
			return nil
		})
		if err == nil && attempts > 1 {
			mu.Lock()
			retried++
			mu.Unlock()
		}
		return err
	})

	var failed []string
	for i, err := range errs {
		if err != nil {
			failed = append(failed, locations[i].Code)
			logger.Warnf("weatherapi collection failed for %s: %v", locations[i].Code, err)
		}
	}

	written, upsertErrs := UpsertRows(ctx, c.upserter, rows, entity.WeatherAPIData{}.TableName(),
		[]string{"location_key", "observation_time_utc", "data_type", "forecast_date", "forecast_time"},
		weatherAPIUpdateColumns, 0,
		func(d entity.WeatherAPIData) string {
			return d.LocationKey + "|" + d.ObservationTimeUTC + "|" + d.DataType + "|" + d.ForecastDate + "|" + d.ForecastTime
		},
	)
	if len(failed) == len(locations) {
		return &Outcome{Records: written, Locations: len(locations), Retried: retried, Failed: failed, Errs: upsertErrs},
			exception.NewAppErrorf(ModuleCollect, exception.KindUpstreamFetch, "every location fetch failed")
	}
	return &Outcome{
		Records:   written,
		Locations: len(locations),
		Retried:   retried,
		Failed:    failed,
		Errs:      upsertErrs,
	}, nil
}
