package transform_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mulgyeol/tidecast/internal/provider/weatherapi"
	"github.com/mulgyeol/tidecast/internal/transform"
)

func TestCurrentRow(t *testing.T) {
	epoch := time.Date(2026, 1, 15, 3, 0, 0, 0, time.UTC).Unix()

	resp := &weatherapi.CurrentResponse{
		Location: weatherapi.LocationInfo{
			Name:      "Busan",
			Region:    "",
			Country:   "South Korea",
			Lat:       35.18,
			Lon:       129.2,
			TzID:      "Asia/Seoul",
			Localtime: "2026-01-15 12:00",
		},
		Current: weatherapi.CurrentWeather{
			LastUpdatedEpoch: epoch,
			TempC:            5.0,
			IsDay:            1,
			Condition:        weatherapi.Condition{Text: "Sunny", Icon: "//cdn/icon.png", Code: 1000},
			Humidity:         55,
			AirQuality:       &weatherapi.AirQuality{PM25: 12.5, PM10: 30.1},
		},
	}

	row := transform.CurrentRow("35.18,129.2", "DT_0063", resp)
	assert.Equal(t, "35.18,129.2", row.LocationKey)
	assert.Equal(t, "DT_0063", row.Code)
	assert.Equal(t, "current", row.DataType)
	assert.Equal(t, "2026-01-15T03:00:00Z", row.ObservationTimeUTC)
	// The conflict-key members stay empty strings for current rows.
	assert.Equal(t, "", row.ForecastDate)
	assert.Equal(t, "", row.ForecastTime)
	assert.Equal(t, "2026-01-15 12:00", row.ObservationTimeLocal)
	assert.Equal(t, "Sunny", *row.ConditionText)
	assert.Equal(t, 5.0, *row.TempC)
	assert.True(t, *row.IsDay)
	assert.Equal(t, "Asia/Seoul", row.TimezoneID)
	assert.Equal(t, 12.5, *row.AirQualityPm25)
	assert.Equal(t, 30.1, *row.AirQualityPm10)
}

func TestCurrentRowWithoutAirQuality(t *testing.T) {
	resp := &weatherapi.CurrentResponse{}
	resp.Current.IsDay = 0

	row := transform.CurrentRow("0,0", "DT_0063", resp)
	assert.Nil(t, row.AirQualityPm25)
	assert.Nil(t, row.AirQualityPm10)
	assert.False(t, *row.IsDay)
}

func TestForecastRows(t *testing.T) {
	dayEpoch := time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC).Unix()
	hourEpoch := time.Date(2026, 1, 16, 4, 0, 0, 0, time.UTC).Unix()

	resp := &weatherapi.ForecastResponse{
		Location: weatherapi.LocationInfo{Name: "Busan", TzID: "Asia/Seoul", Lat: 35.18, Lon: 129.2},
	}
	resp.Forecast.Forecastday = []weatherapi.ForecastDay{{
		Date:      "2026-01-16",
		DateEpoch: dayEpoch,
		Day: weatherapi.DaySummary{
			MaxtempC:          9.0,
			MintempC:          2.0,
			MaxwindKph:        22.0,
			AvgvisKm:          10.0,
			Avghumidity:       61,
			DailyChanceOfRain: 40,
			Condition:         weatherapi.Condition{Text: "Cloudy", Code: 1006},
		},
		Hour: []weatherapi.HourForecast{{
			TimeEpoch: hourEpoch,
			Time:      "2026-01-16 13:00",
			TempC:     6.5,
			IsDay:     1,
			Condition: weatherapi.Condition{Text: "Partly cloudy", Code: 1003},
		}},
	}}

	rows := transform.ForecastRows("35.18,129.2", "DT_0063", resp)
	assert.Len(t, rows, 2)

	daily := rows[0]
	assert.Equal(t, "forecast", daily.DataType)
	assert.Equal(t, "2026-01-16", daily.ForecastDate)
	assert.Equal(t, "", daily.ForecastTime)
	assert.Equal(t, "2026-01-16", daily.ObservationTimeLocal)
	assert.Equal(t, 9.0, *daily.MaxtempC)
	// Day aggregates land in the shared wind/visibility/humidity columns.
	assert.Equal(t, 22.0, *daily.WindKph)
	assert.Equal(t, 10.0, *daily.VisibilityKm)
	assert.Equal(t, 61.0, *daily.Humidity)
	assert.Equal(t, 40.0, *daily.ChanceOfRain)
	assert.Nil(t, daily.IsDay)

	hourly := rows[1]
	assert.Equal(t, "2026-01-16", hourly.ForecastDate)
	assert.Equal(t, "13:00", hourly.ForecastTime)
	assert.Equal(t, "2026-01-16 13:00", hourly.ObservationTimeLocal)
	assert.Equal(t, 6.5, *hourly.TempC)
	assert.True(t, *hourly.IsDay)
	assert.Equal(t, "Busan", hourly.LocationName)
}
