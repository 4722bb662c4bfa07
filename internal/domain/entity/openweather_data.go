package entity

import "time"

// OpenWeatherData is one normalized OpenWeatherMap row. DataType is "current"
// or "forecast". ObservationTimeUTC is an ISO UTC instant;
// ObservationTimeLocal carries the provider timezone offset suffix.
// ForecastDate/ForecastTime are always populated so the conflict key has no
// NULL members: current rows use forecast_time 00:00:00 and daily rows
// 12:00:00.
type OpenWeatherData struct {
	LocationCode         string    `gorm:"column:location_code;primaryKey"`
	ObservationTimeUTC   string    `gorm:"column:observation_time_utc;primaryKey"`
	DataType             string    `gorm:"column:data_type;primaryKey"`
	ForecastDate         string    `gorm:"column:forecast_date;primaryKey"`
	ForecastTime         string    `gorm:"column:forecast_time;primaryKey"`
	ObservationTimeLocal string    `gorm:"column:observation_time_local"`
	Latitude             *float64  `gorm:"column:latitude"`
	Longitude            *float64  `gorm:"column:longitude"`
	Temp                 *float64  `gorm:"column:temp"`
	FeelsLike            *float64  `gorm:"column:feels_like"`
	TempMin              *float64  `gorm:"column:temp_min"`
	TempMax              *float64  `gorm:"column:temp_max"`
	Pressure             *float64  `gorm:"column:pressure"`
	Humidity             *float64  `gorm:"column:humidity"`
	DewPoint             *float64  `gorm:"column:dew_point"`
	UVI                  *float64  `gorm:"column:uvi"`
	Clouds               *float64  `gorm:"column:clouds"`
	Visibility           *float64  `gorm:"column:visibility"`
	WindSpeed            *float64  `gorm:"column:wind_speed"`
	WindDeg              *float64  `gorm:"column:wind_deg"`
	WindGust             *float64  `gorm:"column:wind_gust"`
	POP                  *float64  `gorm:"column:pop"`
	Rain3h               *float64  `gorm:"column:rain_3h"`
	Snow3h               *float64  `gorm:"column:snow_3h"`
	WeatherMain          *string   `gorm:"column:weather_main"`
	WeatherDescription   *string   `gorm:"column:weather_description"`
	WeatherIcon          *string   `gorm:"column:weather_icon"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for OpenWeatherData.
func (OpenWeatherData) TableName() string {
	return "openweather_data"
}
