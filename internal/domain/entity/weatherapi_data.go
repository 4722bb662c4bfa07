package entity

import "time"

// WeatherAPIData is one normalized WeatherAPI.com row. LocationKey is the
// "lat,lng" query key sent to the provider; Code is the internal location
// code. DataType is "current" or "forecast"; hourly forecast rows carry a
// ForecastTime, daily rows leave it empty. The conflict-key members are
// stored as empty strings rather than NULLs.
type WeatherAPIData struct {
	LocationKey          string    `gorm:"column:location_key;primaryKey"`
	ObservationTimeUTC   string    `gorm:"column:observation_time_utc;primaryKey"`
	DataType             string    `gorm:"column:data_type;primaryKey"`
	ForecastDate         string    `gorm:"column:forecast_date;primaryKey"`
	ForecastTime         string    `gorm:"column:forecast_time;primaryKey"`
	Code                 string    `gorm:"column:code"`
	LocationName         string    `gorm:"column:location_name"`
	LocationRegion       string    `gorm:"column:location_region"`
	LocationCountry      string    `gorm:"column:location_country"`
	Latitude             *float64  `gorm:"column:latitude"`
	Longitude            *float64  `gorm:"column:longitude"`
	TimezoneID           string    `gorm:"column:timezone_id"`
	ObservationTimeLocal string    `gorm:"column:observation_time_local"`
	ConditionText        *string   `gorm:"column:condition_text"`
	ConditionIcon        *string   `gorm:"column:condition_icon"`
	ConditionCode        *float64  `gorm:"column:condition_code"`
	TempC                *float64  `gorm:"column:temp_c"`
	TempF                *float64  `gorm:"column:temp_f"`
	FeelslikeC           *float64  `gorm:"column:feelslike_c"`
	FeelslikeF           *float64  `gorm:"column:feelslike_f"`
	MaxtempC             *float64  `gorm:"column:maxtemp_c"`
	MintempC             *float64  `gorm:"column:mintemp_c"`
	AvgtempC             *float64  `gorm:"column:avgtemp_c"`
	WindMph              *float64  `gorm:"column:wind_mph"`
	WindKph              *float64  `gorm:"column:wind_kph"`
	WindDegree           *float64  `gorm:"column:wind_degree"`
	WindDirection        *string   `gorm:"column:wind_direction"`
	GustMph              *float64  `gorm:"column:gust_mph"`
	GustKph              *float64  `gorm:"column:gust_kph"`
	PressureMb           *float64  `gorm:"column:pressure_mb"`
	Humidity             *float64  `gorm:"column:humidity"`
	VisibilityKm         *float64  `gorm:"column:visibility_km"`
	Cloud                *float64  `gorm:"column:cloud"`
	UV                   *float64  `gorm:"column:uv"`
	PrecipMm             *float64  `gorm:"column:precip_mm"`
	TotalprecipMm        *float64  `gorm:"column:totalprecip_mm"`
	ChanceOfRain         *float64  `gorm:"column:chance_of_rain"`
	ChanceOfSnow         *float64  `gorm:"column:chance_of_snow"`
	IsDay                *bool     `gorm:"column:is_day"`
	AirQualityPm25       *float64  `gorm:"column:air_quality_pm2_5"`
	AirQualityPm10       *float64  `gorm:"column:air_quality_pm10"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for WeatherAPIData.
func (WeatherAPIData) TableName() string {
	return "weatherapi_data"
}
