package transform

import (
	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/provider/openweather"
)

// Rows with a fixed forecast time keep the conflict key NULL-free: current
// observations use 00:00:00 and daily forecasts noon.
const (
	currentForecastTime = "00:00:00"
	dailyForecastTime   = "12:00:00"
)

// OneCallRows converts a One Call payload into one current row plus one row
// per daily forecast. Daily pop is scaled from 0..1 to percent; the day rain
// total lands in rain_3h for lack of a finer bucket on the wire.
func OneCallRows(locationCode string, resp *openweather.OneCallResponse) []entity.OpenWeatherData {
	rows := make([]entity.OpenWeatherData, 0, len(resp.Daily)+1)

	current := entity.OpenWeatherData{
		LocationCode:         locationCode,
		ObservationTimeUTC:   UTCFromEpoch(resp.Current.Dt),
		DataType:             "current",
		ForecastDate:         UTCDateFromEpoch(resp.Current.Dt),
		ForecastTime:         currentForecastTime,
		ObservationTimeLocal: LocalWithOffset(resp.Current.Dt, resp.TimezoneOffset),
		Latitude:             FloatPtr(resp.Lat),
		Longitude:            FloatPtr(resp.Lon),
		Temp:                 FloatPtr(resp.Current.Temp),
		FeelsLike:            FloatPtr(resp.Current.FeelsLike),
		Pressure:             FloatPtr(resp.Current.Pressure),
		Humidity:             FloatPtr(resp.Current.Humidity),
		DewPoint:             FloatPtr(resp.Current.DewPoint),
		UVI:                  FloatPtr(resp.Current.UVI),
		Clouds:               FloatPtr(resp.Current.Clouds),
		Visibility:           FloatPtr(resp.Current.Visibility),
		WindSpeed:            FloatPtr(resp.Current.WindSpeed),
		WindDeg:              FloatPtr(resp.Current.WindDeg),
		WindGust:             resp.Current.WindGust,
	}
	applyCondition(&current, resp.Current.Weather)
	rows = append(rows, current)

	for _, day := range resp.Daily {
		row := entity.OpenWeatherData{
			LocationCode:         locationCode,
			ObservationTimeUTC:   UTCFromEpoch(day.Dt),
			DataType:             "forecast",
			ForecastDate:         UTCDateFromEpoch(day.Dt),
			ForecastTime:         dailyForecastTime,
			ObservationTimeLocal: LocalWithOffset(day.Dt, resp.TimezoneOffset),
			Latitude:             FloatPtr(resp.Lat),
			Longitude:            FloatPtr(resp.Lon),
			Temp:                 FloatPtr(day.Temp.Day),
			FeelsLike:            FloatPtr(day.FeelsLike.Day),
			TempMin:              FloatPtr(day.Temp.Min),
			TempMax:              FloatPtr(day.Temp.Max),
			Pressure:             FloatPtr(day.Pressure),
			Humidity:             FloatPtr(day.Humidity),
			DewPoint:             FloatPtr(day.DewPoint),
			UVI:                  FloatPtr(day.UVI),
			Clouds:               FloatPtr(day.Clouds),
			WindSpeed:            FloatPtr(day.WindSpeed),
			WindDeg:              FloatPtr(day.WindDeg),
			WindGust:             day.WindGust,
			POP:                  FloatPtr(day.POP * 100),
			Rain3h:               day.Rain,
			Snow3h:               day.Snow,
		}
		applyCondition(&row, day.Weather)
		rows = append(rows, row)
	}
	return rows
}

// FiveDayRows converts a 5-day/3-hour forecast payload into forecast rows
// keyed by UTC date and time of day.
func FiveDayRows(locationCode string, resp *openweather.ForecastResponse) []entity.OpenWeatherData {
	rows := make([]entity.OpenWeatherData, 0, len(resp.List))
	for _, item := range resp.List {
		row := entity.OpenWeatherData{
			LocationCode:         locationCode,
			ObservationTimeUTC:   UTCFromEpoch(item.Dt),
			DataType:             "forecast",
			ForecastDate:         UTCDateFromEpoch(item.Dt),
			ForecastTime:         UTCTimeFromEpoch(item.Dt),
			ObservationTimeLocal: LocalWithOffset(item.Dt, resp.City.Timezone),
			Latitude:             FloatPtr(resp.City.Coord.Lat),
			Longitude:            FloatPtr(resp.City.Coord.Lon),
			Temp:                 FloatPtr(item.Main.Temp),
			FeelsLike:            FloatPtr(item.Main.FeelsLike),
			TempMin:              FloatPtr(item.Main.TempMin),
			TempMax:              FloatPtr(item.Main.TempMax),
			Pressure:             FloatPtr(item.Main.Pressure),
			Humidity:             FloatPtr(item.Main.Humidity),
			Clouds:               FloatPtr(item.Clouds.All),
			Visibility:           FloatPtr(item.Visibility),
			WindSpeed:            FloatPtr(item.Wind.Speed),
			WindDeg:              FloatPtr(item.Wind.Deg),
			WindGust:             item.Wind.Gust,
			POP:                  FloatPtr(item.POP * 100),
		}
		if item.Rain != nil {
			row.Rain3h = item.Rain.ThreeH
		}
		if item.Snow != nil {
			row.Snow3h = item.Snow.ThreeH
		}
		applyCondition(&row, item.Weather)
		rows = append(rows, row)
	}
	return rows
}

func applyCondition(row *entity.OpenWeatherData, weather []openweather.WeatherCondition) {
	if len(weather) == 0 {
		return
	}
	row.WeatherMain = StringPtr(weather[0].Main)
	row.WeatherDescription = StringPtr(weather[0].Description)
	row.WeatherIcon = StringPtr(weather[0].Icon)
}
