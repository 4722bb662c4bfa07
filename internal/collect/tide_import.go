package collect

import (
	"context"
	"regexp"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

var tideDateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var tideDataUpdateColumns = []string{
	"lvl1", "lvl2", "lvl3", "lvl4",
	"date_sun", "date_moon", "mool_normal", "mool7", "mool8",
}

// TideImporter upserts externally prepared tide-table rows. Imports arrive in
// bulk a year at a time, so the endpoint validates synchronously and runs the
// upsert in the background.
type TideImporter struct {
	upserter *Upserter
}

// NewTideImporter creates a TideImporter.
func NewTideImporter(upserter *Upserter) *TideImporter {
	return &TideImporter{upserter: upserter}
}

// Validate rejects rows missing their identity or carrying a malformed date.
func (t *TideImporter) Validate(rows []entity.TideData) error {
	if len(rows) == 0 {
		return exception.NewAppErrorf(ModuleCollect, exception.KindValidation, "no tide rows to import")
	}
	for i, row := range rows {
		if row.LocationCode == "" {
			return exception.NewAppErrorf(ModuleCollect, exception.KindValidation, "tide row %d has no location code", i)
		}
		if !tideDateFormat.MatchString(row.ObsDate) {
			return exception.NewAppErrorf(ModuleCollect, exception.KindValidation, "tide row %d has invalid obs_date %q", i, row.ObsDate)
		}
	}
	return nil
}

// Import upserts the rows, conflict-keyed on (location_code, obs_date).
func (t *TideImporter) Import(ctx context.Context, rows []entity.TideData) (int64, error) {
	written, err := UpsertRows(ctx, t.upserter, rows, entity.TideData{}.TableName(),
		[]string{"location_code", "obs_date"}, tideDataUpdateColumns, 0,
		func(d entity.TideData) string { return d.LocationCode + "|" + d.ObsDate },
	)
	if err != nil {
		logger.Errorf("tide import wrote %d rows with errors: %v", written, err)
		return written, err
	}
	logger.Infof("tide import wrote %d rows", written)
	return written, nil
}
