package entity

import "time"

// WeatherForecast is one pivoted row of the KMA short-term grid forecast:
// every category value for a single forecast datetime and location.
// FcstDatetime is YYYYMMDDHHMM; FcstDatetimeKR carries the +09:00 suffix.
// PCP and SNO stay strings because KMA publishes ranges ("1.0~29.0mm") and
// category text ("강수없음") in those fields.
type WeatherForecast struct {
	FcstDatetime   string    `gorm:"column:fcst_datetime;primaryKey"`
	LocationCode   string    `gorm:"column:location_code;primaryKey"`
	FcstDatetimeKR string    `gorm:"column:fcst_datetime_kr"`
	BaseDate       string    `gorm:"column:base_date"`
	BaseTime       string    `gorm:"column:base_time"`
	GridNX         int       `gorm:"column:grid_nx"`
	GridNY         int       `gorm:"column:grid_ny"`
	TMP            *float64  `gorm:"column:tmp"`
	TMN            *float64  `gorm:"column:tmn"`
	TMX            *float64  `gorm:"column:tmx"`
	UUU            *float64  `gorm:"column:uuu"`
	VVV            *float64  `gorm:"column:vvv"`
	VEC            *float64  `gorm:"column:vec"`
	WSD            *float64  `gorm:"column:wsd"`
	SKY            *float64  `gorm:"column:sky"`
	PTY            *float64  `gorm:"column:pty"`
	POP            *float64  `gorm:"column:pop"`
	WAV            *float64  `gorm:"column:wav"`
	PCP            *string   `gorm:"column:pcp"`
	REH            *float64  `gorm:"column:reh"`
	SNO            *string   `gorm:"column:sno"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for WeatherForecast.
func (WeatherForecast) TableName() string {
	return "weather_forecasts"
}
