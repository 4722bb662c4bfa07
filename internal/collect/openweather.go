package collect

import (
	"context"
	"sync"
	"time"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/provider/openweather"
	"github.com/mulgyeol/tidecast/internal/repository"
	"github.com/mulgyeol/tidecast/internal/transform"
	"github.com/mulgyeol/tidecast/pkg/retry"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

var openWeatherUpdateColumns = []string{
	"observation_time_local", "latitude", "longitude",
	"temp", "feels_like", "temp_min", "temp_max", "pressure", "humidity",
	"dew_point", "uvi", "clouds", "visibility", "wind_speed", "wind_deg", "wind_gust",
	"pop", "rain_3h", "snow_3h",
	"weather_main", "weather_description", "weather_icon",
}

// OpenWeatherCollector collects the One Call current+daily payload and the
// 5-day/3-hour forecast for every location with coordinates.
type OpenWeatherCollector struct {
	cfg       config.OpenWeatherConfig
	locations repository.LocationRepository
	upserter  *Upserter
	policy    retry.Policy
}

// NewOpenWeatherCollector creates the OpenWeatherMap collector.
func NewOpenWeatherCollector(cfg *config.Config, locations repository.LocationRepository, upserter *Upserter) *OpenWeatherCollector {
	owCfg := cfg.Tidecast.Providers.OpenWeather
	attempts := owCfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	return &OpenWeatherCollector{
		cfg:       owCfg,
		locations: locations,
		upserter:  upserter,
		policy:    retry.NewLinearBackoffPolicy(attempts, 0, 1000),
	}
}

func (c *OpenWeatherCollector) Name() string {
	return "openweather"
}

func (c *OpenWeatherCollector) Collect(ctx context.Context, opts Options) (*Outcome, error) {
	client, err := openweather.NewClient(c.cfg)
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
		batchSize = 5
	}
	delay := time.Duration(c.cfg.BatchDelayMs) * time.Millisecond

	var mu sync.Mutex
	var rows []entity.OpenWeatherData
	retried := 0
	errs := forEachBatch(ctx, locations, batchSize, delay, func(ctx context.Context, _ int, loc entity.Location) error {
		attempts := 0
		err := retry.Do(ctx, c.policy, "openweather["+loc.Code+"]", func(ctx context.Context) error {
			attempts++
			oneCall, err := client.FetchOneCall(ctx, *loc.Latitude, *loc.Longitude)
			if err != nil {
				return err
			}
			fiveDay, err := client.FetchFiveDayForecast(ctx, *loc.Latitude, *loc.Longitude)
			if err != nil {
				return err
			}

			locRows := transform.OneCallRows(loc.Code, oneCall)
			locRows = append(locRows, transform.FiveDayRows(loc.Code, fiveDay)...)
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
			logger.Warnf("openweather collection failed for %s: %v", locations[i].Code, err)
		}
	}

	written, upsertErrs := UpsertRows(ctx, c.upserter, rows, entity.OpenWeatherData{}.TableName(),
		[]string{"location_code", "observation_time_utc", "data_type", "forecast_date", "forecast_time"},
		openWeatherUpdateColumns, 0,
		func(d entity.OpenWeatherData) string {
			return d.LocationCode + "|" + d.ObservationTimeUTC + "|" + d.DataType + "|" + d.ForecastDate + "|" + d.ForecastTime
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
