package cleanup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderCutoff(t *testing.T) {
	instant := time.Date(2026, 1, 15, 5, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-01-15T05:30:00Z", renderCutoff(instant, FormatISO))
	// 05:30 UTC is 14:30 KST.
	assert.Equal(t, "202601151430", renderCutoff(instant, FormatCompactKST))
	assert.Equal(t, "2026-01-15", renderCutoff(instant, FormatDate))
}

func TestDefaultRulesCoverEverySweptTable(t *testing.T) {
	tables := make([]string, 0, len(defaultRules))
	archived := 0
	for _, rule := range defaultRules {
		tables = append(tables, rule.Table)
		if rule.Archive {
			archived++
		}
	}

	assert.ElementsMatch(t, []string{
		"marine_observations",
		"weather_forecasts",
		"medium_term_forecasts",
		"openweather_data",
		"weatherapi_data",
		"tide_data",
		"collection_logs",
	}, tables)

	// Only raw observations are archived; forecasts are reproducible.
	assert.Equal(t, 1, archived)
	assert.Equal(t, "marine_observations", defaultRules[0].Table)
	assert.True(t, defaultRules[0].Archive)
}
