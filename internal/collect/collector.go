// Package collect contains the collection pipelines: one collector per
// upstream feed, a chunked upserter, and the runner that wraps every run with
// an audit log row, metrics and a trace span.
package collect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/metrics"
	"github.com/mulgyeol/tidecast/internal/repository"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

const ModuleCollect = "collect"

// Options carries per-run overrides from the trigger endpoint.
type Options struct {
	// LocationCodes limits the run to these codes. Empty means every location.
	LocationCodes []string
}

// Outcome is what a collector reports back after a run that at least got off
// the ground. Errs aggregates per-location or per-chunk failures that did not
// abort the run. Retried counts the fetch units (locations, grid cells or
// feeds) that succeeded only after at least one retry.
type Outcome struct {
	Records   int64
	Locations int
	Retried   int
	Failed    []string
	Errs      error
}

// Collector is one collection pipeline.
type Collector interface {
	// Name is the job name used in trigger routes and collection logs.
	Name() string
	// Collect runs the pipeline. A non-nil error means the run failed as a
	// whole; partial failures travel in the Outcome instead.
	Collect(ctx context.Context, opts Options) (*Outcome, error)
}

// Summary is the result handed to the trigger endpoint.
type Summary struct {
	RunID     string   `json:"run_id"`
	Job       string   `json:"job"`
	Status    string   `json:"status"`
	Records   int64    `json:"records_collected"`
	Locations int      `json:"locations_processed"`
	Retried   int      `json:"locations_retried,omitempty"`
	Failed    []string `json:"failed_locations,omitempty"`
	Error     string   `json:"error,omitempty"`
	Duration  string   `json:"duration"`
}

// Registry maps trigger job names to collectors.
type Registry map[string]Collector

// NewRegistry indexes the collectors by name.
func NewRegistry(seaObs *SeaObsCollector, shortTerm *ShortTermCollector, mediumTerm *MediumTermCollector, openWeather *OpenWeatherCollector, weatherAPI *WeatherAPICollector) Registry {
	registry := Registry{}
	for _, c := range []Collector{seaObs, shortTerm, mediumTerm, openWeather, weatherAPI} {
		registry[c.Name()] = c
	}
	return registry
}

// Runner executes collectors, writing exactly one collection log row per run
// and recording run metrics and a span.
type Runner struct {
	logs      repository.CollectionLogRepository
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	failedCap int
}

// NewRunner creates a Runner.
func NewRunner(cfg *config.Config, logs repository.CollectionLogRepository, m *metrics.Metrics, tp trace.TracerProvider) *Runner {
	logCap := cfg.Tidecast.Collect.FailedLocationLogCap
	if logCap <= 0 {
		logCap = 10
	}
	return &Runner{
		logs:      logs,
		metrics:   m,
		tracer:    tp.Tracer("tidecast/collect"),
		failedCap: logCap,
	}
}

// Run executes one collector and always returns a summary, even on failure.
func (r *Runner) Run(ctx context.Context, collector Collector, opts Options) *Summary {
	runID := uuid.NewString()
	started := time.Now().UTC()

	ctx, span := r.tracer.Start(ctx, "collect."+collector.Name(),
		trace.WithAttributes(attribute.String("run.id", runID)))
	defer span.End()

	logger.Infof("collection run %s (%s) started", runID, collector.Name())
	outcome, err := collector.Collect(ctx, opts)
	finished := time.Now().UTC()
	if outcome == nil {
		outcome = &Outcome{}
	}

	status := runStatus(outcome, err)
	summary := &Summary{
		RunID:     runID,
		Job:       collector.Name(),
		Status:    status,
		Records:   outcome.Records,
		Locations: outcome.Locations,
		Retried:   outcome.Retried,
		Failed:    outcome.Failed,
		Error:     runErrorMessage(outcome, err),
		Duration:  finished.Sub(started).String(),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, exception.ExtractErrorMessage(err))
	}
	span.SetAttributes(
		attribute.String("run.status", status),
		attribute.Int64("run.records", outcome.Records),
	)
	r.metrics.ObserveCollection(collector.Name(), status, outcome.Records, finished.Sub(started))

	r.writeLog(ctx, runID, collector.Name(), started, finished, summary)
	logger.Infof("collection run %s (%s) finished: status=%s records=%d locations=%d retried=%d",
		runID, collector.Name(), status, outcome.Records, outcome.Locations, outcome.Retried)
	return summary
}

// writeLog inserts the audit row. The run's own cancellation must not lose
// the row, so the insert runs on a detached context.
func (r *Runner) writeLog(ctx context.Context, runID, job string, started, finished time.Time, summary *Summary) {
	row := &entity.CollectionLog{
		ID:                 runID,
		FunctionName:       job,
		StartedAt:          started,
		FinishedAt:         finished,
		Status:             summary.Status,
		RecordsCollected:   int(summary.Records),
		LocationsProcessed: summary.Locations,
		LocationsRetried:   summary.Retried,
	}
	if msg := r.logMessage(summary); msg != "" {
		row.ErrorMessage = &msg
	}
	if err := r.logs.Insert(context.WithoutCancel(ctx), row); err != nil {
		logger.Errorf("failed to write collection log for run %s: %v", runID, err)
	}
}

func (r *Runner) logMessage(summary *Summary) string {
	var parts []string
	if summary.Error != "" {
		parts = append(parts, summary.Error)
	}
	if len(summary.Failed) > 0 {
		failed := summary.Failed
		suffix := ""
		if len(failed) > r.failedCap {
			suffix = fmt.Sprintf(" (+%d more)", len(failed)-r.failedCap)
			failed = failed[:r.failedCap]
		}
		parts = append(parts, "failed: "+strings.Join(failed, ", ")+suffix)
	}
	return strings.Join(parts, "; ")
}

func runStatus(outcome *Outcome, err error) string {
	switch {
	case err != nil:
		return entity.CollectionStatusError
	case len(outcome.Failed) > 0 || outcome.Errs != nil:
		return entity.CollectionStatusPartial
	default:
		return entity.CollectionStatusSuccess
	}
}

func runErrorMessage(outcome *Outcome, err error) string {
	if err != nil {
		return exception.ExtractErrorMessage(err)
	}
	if outcome.Errs != nil {
		return exception.ExtractErrorMessage(outcome.Errs)
	}
	return ""
}
