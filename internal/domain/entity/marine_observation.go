package entity

import "time"

// MarineObservation is one row of the KMA sea observation feed. Measurement
// fields are nullable; sentinel values (-99, -99.0, empty) are stored as NULL.
// ObservationTimeKST is the KMA wire time (YYYYMMDDHHMM).
type MarineObservation struct {
	StationID          string    `gorm:"column:station_id;primaryKey"`
	ObservationTimeKST string    `gorm:"column:observation_time_kst;primaryKey"`
	ObservationType    string    `gorm:"column:observation_type"`
	StationName        string    `gorm:"column:station_name"`
	Longitude          *float64  `gorm:"column:longitude"`
	Latitude           *float64  `gorm:"column:latitude"`
	WaveHeight         *float64  `gorm:"column:significant_wave_height"`
	WindDirection      *float64  `gorm:"column:wind_direction"`
	WindSpeed          *float64  `gorm:"column:wind_speed"`
	GustWindSpeed      *float64  `gorm:"column:gust_wind_speed"`
	WaterTemperature   *float64  `gorm:"column:water_temperature"`
	AirTemperature     *float64  `gorm:"column:air_temperature"`
	Pressure           *float64  `gorm:"column:pressure"`
	Humidity           *float64  `gorm:"column:humidity"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for MarineObservation.
func (MarineObservation) TableName() string {
	return "marine_observations"
}

// MarineObservationArchive is the parquet projection of MarineObservation
// used by the retention archiver.
type MarineObservationArchive struct {
	StationID          string  `gorm:"column:station_id" parquet:"name=station_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	ObservationTimeKST string  `gorm:"column:observation_time_kst" parquet:"name=observation_time_kst,type=BYTE_ARRAY,convertedtype=UTF8"`
	WaveHeight         float64 `gorm:"column:significant_wave_height" parquet:"name=significant_wave_height,type=DOUBLE"`
	WindDirection      float64 `gorm:"column:wind_direction" parquet:"name=wind_direction,type=DOUBLE"`
	WindSpeed          float64 `gorm:"column:wind_speed" parquet:"name=wind_speed,type=DOUBLE"`
	WaterTemperature   float64 `gorm:"column:water_temperature" parquet:"name=water_temperature,type=DOUBLE"`
	AirTemperature     float64 `gorm:"column:air_temperature" parquet:"name=air_temperature,type=DOUBLE"`
	Pressure           float64 `gorm:"column:pressure" parquet:"name=pressure,type=DOUBLE"`
	Humidity           float64 `gorm:"column:humidity" parquet:"name=humidity,type=DOUBLE"`
	CreatedAt          int64   `gorm:"column:created_at" parquet:"name=created_at,type=INT64,convertedtype=TIMESTAMP_MILLIS"`
}
