// Package cleanup implements the retention sweep: per-table deletion of rows
// older than the retention window, with optional parquet archival first.
package cleanup

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/mulgyeol/tidecast/internal/archive"
	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/internal/repository"
	"github.com/mulgyeol/tidecast/internal/transform"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

const ModuleCleanup = "cleanup"

// CutoffFormat selects how the retention cutoff instant is rendered for a
// table's date column. Columns are strings, so the cutoff must be rendered in
// the exact encoding the column uses for the < comparison to sort correctly.
type CutoffFormat int

const (
	// FormatISO renders the cutoff as a UTC ISO instant.
	FormatISO CutoffFormat = iota
	// FormatCompactKST renders the cutoff as a YYYYMMDDHHMM KST wire time.
	FormatCompactKST
	// FormatDate renders the cutoff as a YYYY-MM-DD date.
	FormatDate
)

// TableRule describes one swept table.
type TableRule struct {
	Table      string
	DateColumn string
	Format     CutoffFormat
	// Archive marks the table for parquet archival before deletion.
	Archive bool
}

// defaultRules lists every swept table. marine_observations is the only
// archived table; forecasts are reproducible from the providers.
var defaultRules = []TableRule{
	{Table: "marine_observations", DateColumn: "observation_time_kst", Format: FormatCompactKST, Archive: true},
	{Table: "weather_forecasts", DateColumn: "fcst_datetime", Format: FormatCompactKST},
	{Table: "medium_term_forecasts", DateColumn: "tm_ef", Format: FormatCompactKST},
	{Table: "openweather_data", DateColumn: "observation_time_utc", Format: FormatISO},
	{Table: "weatherapi_data", DateColumn: "observation_time_utc", Format: FormatISO},
	{Table: "tide_data", DateColumn: "obs_date", Format: FormatDate},
	{Table: "collection_logs", DateColumn: "started_at", Format: FormatISO},
}

// TableResult is the per-table outcome of one sweep.
type TableResult struct {
	Table    string `json:"table"`
	Deleted  int64  `json:"deleted"`
	Archived int    `json:"archived,omitempty"`
	Object   string `json:"archive_object,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Summary is the sweep response envelope.
type Summary struct {
	TotalDeleted  int64         `json:"totalDeleted"`
	SuccessCount  int           `json:"successCount"`
	FailureCount  int           `json:"failureCount"`
	TotalTables   int           `json:"totalTables"`
	RetentionDays int           `json:"retentionDays"`
	Details       []TableResult `json:"details"`
}

// Sweeper runs the retention sweep across every configured table.
type Sweeper struct {
	retentionDays int
	repo          repository.CleanupRepository
	archiver      *archive.Archiver
	rules         []TableRule
	now           func() time.Time
}

// NewSweeper creates a Sweeper with the default table rules.
func NewSweeper(cfg *config.Config, repo repository.CleanupRepository, archiver *archive.Archiver) *Sweeper {
	retention := cfg.Tidecast.Cleanup.RetentionDays
	if retention <= 0 {
		retention = 20
	}
	return &Sweeper{
		retentionDays: retention,
		repo:          repo,
		archiver:      archiver,
		rules:         defaultRules,
		now:           time.Now,
	}
}

// Run sweeps every table. A failing table is recorded and skipped; the rest
// are still swept. retentionDays 0 uses the configured default.
func (s *Sweeper) Run(ctx context.Context, retentionDays int) (*Summary, error) {
	if retentionDays <= 0 {
		retentionDays = s.retentionDays
	}
	cutoffInstant := s.now().UTC().AddDate(0, 0, -retentionDays)

	summary := &Summary{
		TotalTables:   len(s.rules),
		RetentionDays: retentionDays,
	}
	var errs *multierror.Error
	for _, rule := range s.rules {
		result := s.sweepTable(ctx, rule, cutoffInstant)
		summary.Details = append(summary.Details, result)
		if result.Error != "" {
			summary.FailureCount++
			errs = multierror.Append(errs, exception.NewAppErrorf(ModuleCleanup, exception.KindPersistence, "%s: %s", rule.Table, result.Error))
			continue
		}
		summary.SuccessCount++
		summary.TotalDeleted += result.Deleted
	}

	logger.Infof("retention sweep done: %d rows deleted across %d/%d tables (retention %dd)",
		summary.TotalDeleted, summary.SuccessCount, summary.TotalTables, retentionDays)
	return summary, errs.ErrorOrNil()
}

func (s *Sweeper) sweepTable(ctx context.Context, rule TableRule, cutoffInstant time.Time) TableResult {
	result := TableResult{Table: rule.Table}
	cutoff := renderCutoff(cutoffInstant, rule.Format)

	if rule.Archive && s.archiver.Enabled() {
		rows, err := s.repo.FetchMarineObservationsOlderThan(ctx, cutoff)
		if err != nil {
			result.Error = exception.ExtractErrorMessage(err)
			return result
		}
		object, err := s.archiver.ArchiveMarineObservations(ctx, rows)
		if err != nil {
			// Do not delete what could not be archived.
			result.Error = exception.ExtractErrorMessage(err)
			return result
		}
		result.Archived = len(rows)
		result.Object = object
	} else if rule.Archive {
		logger.Warnf("archive disabled; %s rows will be deleted without archival", rule.Table)
	}

	deleted, err := s.repo.DeleteOlderThan(ctx, rule.Table, rule.DateColumn, cutoff)
	if err != nil {
		result.Error = exception.ExtractErrorMessage(err)
		return result
	}
	result.Deleted = deleted
	logger.Debugf("swept %s: %d rows older than %s", rule.Table, deleted, cutoff)
	return result
}

func renderCutoff(t time.Time, format CutoffFormat) string {
	switch format {
	case FormatCompactKST:
		return t.In(transform.KST).Format("200601021504")
	case FormatDate:
		return t.UTC().Format("2006-01-02")
	default:
		return t.UTC().Format("2006-01-02T15:04:05Z")
	}
}
