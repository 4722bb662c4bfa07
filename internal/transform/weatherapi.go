package transform

import (
	"strings"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/provider/weatherapi"
)

// CurrentRow converts a current.json payload into one current row. The
// forecast date/time members of the conflict key stay empty strings for
// current observations.
func CurrentRow(locationKey, code string, resp *weatherapi.CurrentResponse) entity.WeatherAPIData {
	row := entity.WeatherAPIData{
		LocationKey:          locationKey,
		ObservationTimeUTC:   UTCFromEpoch(resp.Current.LastUpdatedEpoch),
		DataType:             "current",
		ForecastDate:         "",
		ForecastTime:         "",
		Code:                 code,
		ObservationTimeLocal: resp.Location.Localtime,
		ConditionText:        StringPtr(resp.Current.Condition.Text),
		ConditionIcon:        StringPtr(resp.Current.Condition.Icon),
		ConditionCode:        FloatPtr(float64(resp.Current.Condition.Code)),
		TempC:                FloatPtr(resp.Current.TempC),
		TempF:                FloatPtr(resp.Current.TempF),
		FeelslikeC:           FloatPtr(resp.Current.FeelslikeC),
		FeelslikeF:           FloatPtr(resp.Current.FeelslikeF),
		WindMph:              FloatPtr(resp.Current.WindMph),
		WindKph:              FloatPtr(resp.Current.WindKph),
		WindDegree:           FloatPtr(resp.Current.WindDegree),
		WindDirection:        StringPtr(resp.Current.WindDir),
		GustMph:              FloatPtr(resp.Current.GustMph),
		GustKph:              FloatPtr(resp.Current.GustKph),
		PressureMb:           FloatPtr(resp.Current.PressureMb),
		Humidity:             FloatPtr(resp.Current.Humidity),
		VisibilityKm:         FloatPtr(resp.Current.VisKm),
		Cloud:                FloatPtr(resp.Current.Cloud),
		UV:                   FloatPtr(resp.Current.UV),
		PrecipMm:             FloatPtr(resp.Current.PrecipMm),
		IsDay:                BoolPtr(resp.Current.IsDay == 1),
	}
	applyLocation(&row, resp.Location)
	if aq := resp.Current.AirQuality; aq != nil {
		row.AirQualityPm25 = FloatPtr(aq.PM25)
		row.AirQualityPm10 = FloatPtr(aq.PM10)
	}
	return row
}

// ForecastRows converts a forecast.json payload into one daily row per
// forecast day plus one hourly row per hour. Daily rows leave forecast_time
// empty; hourly rows carry the HH:MM part of the provider's local hour.
func ForecastRows(locationKey, code string, resp *weatherapi.ForecastResponse) []entity.WeatherAPIData {
	var rows []entity.WeatherAPIData
	for _, day := range resp.Forecast.Forecastday {
		daily := entity.WeatherAPIData{
			LocationKey:          locationKey,
			ObservationTimeUTC:   UTCFromEpoch(day.DateEpoch),
			DataType:             "forecast",
			ForecastDate:         day.Date,
			ForecastTime:         "",
			Code:                 code,
			ObservationTimeLocal: day.Date,
			ConditionText:        StringPtr(day.Day.Condition.Text),
			ConditionIcon:        StringPtr(day.Day.Condition.Icon),
			ConditionCode:        FloatPtr(float64(day.Day.Condition.Code)),
			MaxtempC:             FloatPtr(day.Day.MaxtempC),
			MintempC:             FloatPtr(day.Day.MintempC),
			AvgtempC:             FloatPtr(day.Day.AvgtempC),
			WindMph:              FloatPtr(day.Day.MaxwindMph),
			WindKph:              FloatPtr(day.Day.MaxwindKph),
			VisibilityKm:         FloatPtr(day.Day.AvgvisKm),
			Humidity:             FloatPtr(day.Day.Avghumidity),
			UV:                   FloatPtr(day.Day.UV),
			TotalprecipMm:        FloatPtr(day.Day.TotalprecipMm),
			ChanceOfRain:         FloatPtr(day.Day.DailyChanceOfRain),
			ChanceOfSnow:         FloatPtr(day.Day.DailyChanceOfSnow),
		}
		applyLocation(&daily, resp.Location)
		rows = append(rows, daily)

		for _, hour := range day.Hour {
			hourly := entity.WeatherAPIData{
				LocationKey:          locationKey,
				ObservationTimeUTC:   UTCFromEpoch(hour.TimeEpoch),
				DataType:             "forecast",
				ForecastDate:         day.Date,
				ForecastTime:         hourOfDay(hour.Time),
				Code:                 code,
				ObservationTimeLocal: hour.Time,
				ConditionText:        StringPtr(hour.Condition.Text),
				ConditionIcon:        StringPtr(hour.Condition.Icon),
				ConditionCode:        FloatPtr(float64(hour.Condition.Code)),
				TempC:                FloatPtr(hour.TempC),
				TempF:                FloatPtr(hour.TempF),
				FeelslikeC:           FloatPtr(hour.FeelslikeC),
				FeelslikeF:           FloatPtr(hour.FeelslikeF),
				WindMph:              FloatPtr(hour.WindMph),
				WindKph:              FloatPtr(hour.WindKph),
				WindDegree:           FloatPtr(hour.WindDegree),
				WindDirection:        StringPtr(hour.WindDir),
				GustMph:              FloatPtr(hour.GustMph),
				GustKph:              FloatPtr(hour.GustKph),
				PressureMb:           FloatPtr(hour.PressureMb),
				Humidity:             FloatPtr(hour.Humidity),
				VisibilityKm:         FloatPtr(hour.VisKm),
				Cloud:                FloatPtr(hour.Cloud),
				UV:                   FloatPtr(hour.UV),
				PrecipMm:             FloatPtr(hour.PrecipMm),
				ChanceOfRain:         FloatPtr(hour.ChanceOfRain),
				ChanceOfSnow:         FloatPtr(hour.ChanceOfSnow),
				IsDay:                BoolPtr(hour.IsDay == 1),
			}
			applyLocation(&hourly, resp.Location)
			rows = append(rows, hourly)
		}
	}
	return rows
}

func applyLocation(row *entity.WeatherAPIData, loc weatherapi.LocationInfo) {
	row.LocationName = loc.Name
	row.LocationRegion = loc.Region
	row.LocationCountry = loc.Country
	row.Latitude = FloatPtr(loc.Lat)
	row.Longitude = FloatPtr(loc.Lon)
	row.TimezoneID = loc.TzID
}

// hourOfDay extracts the HH:MM part of a "YYYY-MM-DD HH:MM" local time.
func hourOfDay(localTime string) string {
	if idx := strings.IndexByte(localTime, ' '); idx >= 0 {
		return localTime[idx+1:]
	}
	return localTime
}
