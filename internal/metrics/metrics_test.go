package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

func TestNewMeterProviderDisabled(t *testing.T) {
	mp, err := NewMeterProvider(nil, config.NewConfig())
	assert.NoError(t, err)
	assert.NotNil(t, mp)

	m := NewExportedMetrics(mp)
	m.ObserveCollection("kma-sea-obs", "success", 10, time.Second)
	m.ObserveHTTP("/api/weather-tide", "GET", 200, time.Millisecond)
}

func TestNewMeterProviderRejectsUnknownExporter(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Tidecast.Metrics.OTLP.Enabled = true
	cfg.Tidecast.Metrics.OTLP.Exporter = "udp"

	_, err := NewMeterProvider(nil, cfg)
	assert.Equal(t, exception.KindValidation, exception.KindOf(err))
}
