package collect

import (
	"context"
	"time"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/provider/kma"
	"github.com/mulgyeol/tidecast/internal/transform"
	"github.com/mulgyeol/tidecast/pkg/retry"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

var marineObservationUpdateColumns = []string{
	"observation_type", "station_name", "longitude", "latitude",
	"significant_wave_height", "wind_direction", "wind_speed", "gust_wind_speed",
	"water_temperature", "air_temperature", "pressure", "humidity",
}

// SeaObsCollector collects the KMA sea observation feed. One request returns
// every station, so there is no per-location fan-out; the request time is the
// current KST half-hour.
type SeaObsCollector struct {
	cfg      config.KMAConfig
	upserter *Upserter
	policy   retry.Policy
	now      func() time.Time
}

// NewSeaObsCollector creates the sea observation collector.
func NewSeaObsCollector(cfg *config.Config, upserter *Upserter) *SeaObsCollector {
	return &SeaObsCollector{
		cfg:      cfg.Tidecast.Providers.KMA,
		upserter: upserter,
		policy:   retry.NewLinearBackoffPolicy(3, 0, 1000),
		now:      time.Now,
	}
}

func (c *SeaObsCollector) Name() string {
	return "kma-sea-obs"
}

func (c *SeaObsCollector) Collect(ctx context.Context, _ Options) (*Outcome, error) {
	client, err := kma.NewClient(c.cfg)
	if err != nil {
		return nil, err
	}

	tm := kma.RequestTime(c.now())
	attempts := 0
	records, err := retry.DoValue(ctx, c.policy, "sea_obs", func(ctx context.Context) ([]kma.SeaObsRecord, error) {
		attempts++
		return client.FetchSeaObservations(ctx, tm)
	})
	if err != nil {
		return nil, err
	}

	observations := transform.SeaObservations(records)
	logger.Infof("sea_obs tm=%s: %d raw rows, %d after sentinel filtering", tm, len(records), len(observations))

	written, errs := UpsertRows(ctx, c.upserter, observations, entity.MarineObservation{}.TableName(),
		[]string{"station_id", "observation_time_kst"}, marineObservationUpdateColumns, 0,
		func(o entity.MarineObservation) string { return o.StationID + "|" + o.ObservationTimeKST },
	)
	retried := 0
	if attempts > 1 {
		retried = 1
	}
	return &Outcome{
		Records:   written,
		Locations: len(observations),
		Retried:   retried,
		Errs:      errs,
	}, nil
}
