package collect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/metrics"
)

type stubLogRepo struct {
	row *entity.CollectionLog
}

func (s *stubLogRepo) Insert(_ context.Context, row *entity.CollectionLog) error {
	s.row = row
	return nil
}

type staticCollector struct {
	outcome *Outcome
	err     error
}

func (c *staticCollector) Name() string { return "static" }

func (c *staticCollector) Collect(_ context.Context, _ Options) (*Outcome, error) {
	return c.outcome, c.err
}

func TestRunnerWritesAuditRow(t *testing.T) {
	logs := &stubLogRepo{}
	runner := NewRunner(config.NewConfig(), logs, metrics.NewMetrics(), noop.NewTracerProvider())

	summary := runner.Run(context.Background(), &staticCollector{outcome: &Outcome{
		Records:   120,
		Locations: 8,
		Retried:   2,
		Failed:    []string{"DT_0001"},
	}}, Options{})

	assert.Equal(t, entity.CollectionStatusPartial, summary.Status)
	assert.Equal(t, int64(120), summary.Records)
	assert.Equal(t, 2, summary.Retried)
	assert.NotEmpty(t, summary.RunID)

	if assert.NotNil(t, logs.row) {
		assert.Equal(t, summary.RunID, logs.row.ID)
		assert.Equal(t, "static", logs.row.FunctionName)
		assert.Equal(t, entity.CollectionStatusPartial, logs.row.Status)
		assert.Equal(t, 120, logs.row.RecordsCollected)
		assert.Equal(t, 8, logs.row.LocationsProcessed)
		assert.Equal(t, 2, logs.row.LocationsRetried)
		if assert.NotNil(t, logs.row.ErrorMessage) {
			assert.Contains(t, *logs.row.ErrorMessage, "DT_0001")
		}
	}
}

func TestRunnerSuccessStatus(t *testing.T) {
	logs := &stubLogRepo{}
	runner := NewRunner(config.NewConfig(), logs, metrics.NewMetrics(), noop.NewTracerProvider())

	summary := runner.Run(context.Background(), &staticCollector{outcome: &Outcome{Records: 5, Locations: 1}}, Options{})
	assert.Equal(t, entity.CollectionStatusSuccess, summary.Status)
	assert.Equal(t, 0, summary.Retried)
}
