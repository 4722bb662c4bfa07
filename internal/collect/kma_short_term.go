package collect

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/provider/kma"
	"github.com/mulgyeol/tidecast/internal/repository"
	"github.com/mulgyeol/tidecast/internal/transform"
	"github.com/mulgyeol/tidecast/pkg/retry"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

var weatherForecastUpdateColumns = []string{
	"fcst_datetime_kr", "base_date", "base_time", "grid_nx", "grid_ny",
	"tmp", "tmn", "tmx", "uuu", "vvv", "vec", "wsd",
	"sky", "pty", "pop", "wav", "pcp", "reh", "sno", "updated_at",
}

// gridCell is one unique (nx, ny) forecast cell and the location codes it
// serves. Fetching per cell instead of per location avoids duplicate requests
// for co-located spots.
type gridCell struct {
	nx, ny int
	codes  []string
}

// ShortTermCollector collects the KMA short-term grid forecast, one request
// per unique grid cell, fanned out in concurrency batches.
type ShortTermCollector struct {
	cfg       config.KMAConfig
	batchSize int
	locations repository.LocationRepository
	upserter  *Upserter
	policy    retry.Policy
	now       func() time.Time
}

// NewShortTermCollector creates the short-term forecast collector.
func NewShortTermCollector(cfg *config.Config, locations repository.LocationRepository, upserter *Upserter) *ShortTermCollector {
	batch := cfg.Tidecast.Collect.GridBatchSize
	if batch <= 0 {
		batch = 20
	}
	return &ShortTermCollector{
		cfg:       cfg.Tidecast.Providers.KMA,
		batchSize: batch,
		locations: locations,
		upserter:  upserter,
		policy:    retry.NewLinearBackoffPolicy(3, 1000, 500),
		now:       time.Now,
	}
}

func (c *ShortTermCollector) Name() string {
	return "kma-short-term"
}

func (c *ShortTermCollector) Collect(ctx context.Context, opts Options) (*Outcome, error) {
	client, err := kma.NewClient(c.cfg)
	if err != nil {
		return nil, err
	}

	locations, err := c.locations.ListWithGrid(ctx)
	if err != nil {
		return nil, err
	}
	locations = filterLocations(locations, opts.LocationCodes)
	cells := groupByGridCell(locations)
	if len(cells) == 0 {
		return nil, exception.NewAppErrorf(ModuleCollect, exception.KindValidation, "no locations with grid cells to collect")
	}

	baseDate, baseTime := kma.LatestBaseDateTime(c.now())
	logger.Infof("short-term forecast base %s %s: %d grid cells for %d locations", baseDate, baseTime, len(cells), len(locations))

	var mu sync.Mutex
	var rows []entity.WeatherForecast
	retried := 0
	errs := forEachBatch(ctx, cells, c.batchSize, 0, func(ctx context.Context, index int, cell gridCell) error {
		// Stagger requests inside a batch so the upstream never sees the
		// whole batch land in the same instant.
		stagger := time.Duration(index%c.batchSize) * 150 * time.Millisecond
		if stagger > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(stagger):
			}
		}

		name := fmt.Sprintf("vilage_fcst[%d,%d]", cell.nx, cell.ny)
		attempts := 0
		items, err := retry.DoValue(ctx, c.policy, name, func(ctx context.Context) ([]kma.ShortTermItem, error) {
			attempts++
			return client.FetchShortTermForecast(ctx, baseDate, baseTime, cell.nx, cell.ny)
		})
		if err != nil {
			return err
		}

		cellRows := transform.ShortTermForecasts(items, cell.codes)
		mu.Lock()
		rows = append(rows, cellRows...)
		if attempts > 1 {
			retried++
		}
		mu.Unlock()
		return nil
	})

	var failed []string
	for i, err := range errs {
		if err != nil {
			failed = append(failed, cells[i].codes...)
		}
	}

	written, upsertErrs := UpsertRows(ctx, c.upserter, rows, entity.WeatherForecast{}.TableName(),
		[]string{"fcst_datetime", "location_code"}, weatherForecastUpdateColumns, 0,
		func(f entity.WeatherForecast) string { return f.FcstDatetime + "|" + f.LocationCode },
	)
	if len(failed) == len(locations) && len(locations) > 0 {
		return &Outcome{Records: written, Locations: len(locations), Retried: retried, Failed: failed, Errs: upsertErrs},
			exception.NewAppErrorf(ModuleCollect, exception.KindUpstreamFetch, "every grid cell fetch failed")
	}
	return &Outcome{
		Records:   written,
		Locations: len(locations),
		Retried:   retried,
		Failed:    failed,
		Errs:      upsertErrs,
	}, nil
}

func groupByGridCell(locations []entity.Location) []gridCell {
	byCell := make(map[[2]int][]string)
	for _, loc := range locations {
		if loc.GridNX == nil || loc.GridNY == nil {
			continue
		}
		key := [2]int{*loc.GridNX, *loc.GridNY}
		byCell[key] = append(byCell[key], loc.Code)
	}

	cells := make([]gridCell, 0, len(byCell))
	for key, codes := range byCell {
		sort.Strings(codes)
		cells = append(cells, gridCell{nx: key[0], ny: key[1], codes: codes})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].nx != cells[j].nx {
			return cells[i].nx < cells[j].nx
		}
		return cells[i].ny < cells[j].ny
	})
	return cells
}

// filterLocations keeps only the given codes; an empty filter keeps everything.
func filterLocations(locations []entity.Location, codes []string) []entity.Location {
	if len(codes) == 0 {
		return locations
	}
	wanted := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		wanted[code] = struct{}{}
	}
	filtered := locations[:0:0]
	for _, loc := range locations {
		if _, ok := wanted[loc.Code]; ok {
			filtered = append(filtered, loc)
		}
	}
	return filtered
}
