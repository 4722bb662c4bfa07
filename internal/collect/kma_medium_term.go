package collect

import (
	"context"

	"github.com/hashicorp/go-multierror"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/provider/kma"
	"github.com/mulgyeol/tidecast/internal/region"
	"github.com/mulgyeol/tidecast/internal/transform"
	"github.com/mulgyeol/tidecast/pkg/retry"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

// mediumTermChunkSize is deliberately small: medium-term rows are wide and
// region fan-out multiplies them.
const mediumTermChunkSize = 50

var mediumTermUpdateColumns = []string{
	"reg_sp", "reg_name", "tm_fc", "tm_fc_kr", "tm_fc_utc", "tm_ef_kr", "tm_ef_utc",
	"c", "sky", "pre", "conf", "wf", "rn_st",
	"min_temp", "max_temp", "min_temp_l", "min_temp_h", "max_temp_l", "max_temp_h",
	"wh_a", "wh_b",
}

// MediumTermCollector collects both KMA medium-term feeds: marine first, then
// temperature. Each feed is one request covering every region; failures of
// one feed leave the other's data intact.
type MediumTermCollector struct {
	cfg      config.KMAConfig
	regions  *region.Catalog
	upserter *Upserter
	policy   retry.Policy
}

// NewMediumTermCollector creates the medium-term forecast collector.
func NewMediumTermCollector(cfg *config.Config, regions *region.Catalog, upserter *Upserter) *MediumTermCollector {
	return &MediumTermCollector{
		cfg:      cfg.Tidecast.Providers.KMA,
		regions:  regions,
		upserter: upserter,
		policy:   retry.NewSchedulePolicy([]int{2000, 5000, 10000}),
	}
}

func (c *MediumTermCollector) Name() string {
	return "kma-medium-term"
}

func (c *MediumTermCollector) Collect(ctx context.Context, _ Options) (*Outcome, error) {
	client, err := kma.NewClient(c.cfg)
	if err != nil {
		return nil, err
	}

	feeds := []struct {
		kind         string
		forecastType string
	}{
		{kind: kma.MediumTermMarine, forecastType: entity.ForecastTypeMarine},
		{kind: kma.MediumTermTemperature, forecastType: entity.ForecastTypeTemperature},
	}

	outcome := &Outcome{}
	var errs *multierror.Error
	for _, feed := range feeds {
		result, err := c.collectFeed(ctx, client, feed.kind, feed.forecastType)
		outcome.Records += result.written
		outcome.Locations += result.locations
		if result.retried {
			outcome.Retried++
		}
		if err != nil {
			logger.Errorf("medium-term %s feed failed: %v", feed.forecastType, err)
			errs = multierror.Append(errs, err)
			// Chunk failures after earlier chunks committed still count the
			// written rows; the feed is fully failed only when nothing landed.
			if result.written == 0 {
				outcome.Failed = append(outcome.Failed, feed.forecastType)
			}
		}
	}

	outcome.Errs = errs.ErrorOrNil()
	if outcome.Records == 0 && outcome.Errs != nil {
		return outcome, outcome.Errs
	}
	return outcome, nil
}

// feedResult is what one medium-term feed contributed to the run.
type feedResult struct {
	written   int64
	locations int
	retried   bool
}

func (c *MediumTermCollector) collectFeed(ctx context.Context, client *kma.Client, kind, forecastType string) (feedResult, error) {
	mappings, err := c.regions.MappingsFor(ctx, forecastType)
	if err != nil {
		return feedResult{}, err
	}

	attempts := 0
	records, err := retry.DoValue(ctx, c.policy, "medium_term_"+forecastType, func(ctx context.Context) ([]kma.MediumTermRecord, error) {
		attempts++
		return client.FetchMediumTermForecast(ctx, kind)
	})
	if err != nil {
		return feedResult{}, err
	}

	rows := transform.MediumTermForecasts(records, forecastType, mappings)
	logger.Infof("medium-term %s: %d feed records fanned out to %d rows", forecastType, len(records), len(rows))

	written, errs := UpsertRows(ctx, c.upserter, rows, entity.MediumTermForecast{}.TableName(),
		[]string{"reg_id", "tm_ef", "mod", "forecast_type", "location_code"}, mediumTermUpdateColumns,
		mediumTermChunkSize,
		func(f entity.MediumTermForecast) string {
			return f.RegID + "|" + f.TmEf + "|" + f.Mod + "|" + f.ForecastType + "|" + f.LocationCode
		},
	)
	return feedResult{written: written, locations: countLocations(rows), retried: attempts > 1}, errs
}

func countLocations(rows []entity.MediumTermForecast) int {
	seen := make(map[string]struct{})
	for _, row := range rows {
		seen[row.LocationCode] = struct{}{}
	}
	return len(seen)
}
