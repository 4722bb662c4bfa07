package entity

import "time"

// TideData is one imported tide-table row for a location and date. The lvl
// columns hold the day's tide extremes as "HH:MM(level)" strings as published
// by the tide tables; mool columns hold the lunar tidal-cycle labels.
type TideData struct {
	LocationCode string    `gorm:"column:location_code;primaryKey"`
	ObsDate      string    `gorm:"column:obs_date;primaryKey"`
	Lvl1         *string   `gorm:"column:lvl1"`
	Lvl2         *string   `gorm:"column:lvl2"`
	Lvl3         *string   `gorm:"column:lvl3"`
	Lvl4         *string   `gorm:"column:lvl4"`
	DateSun      *string   `gorm:"column:date_sun"`
	DateMoon     *string   `gorm:"column:date_moon"`
	MoolNormal   *string   `gorm:"column:mool_normal"`
	Mool7        *string   `gorm:"column:mool7"`
	Mool8        *string   `gorm:"column:mool8"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for TideData.
func (TideData) TableName() string {
	return "tide_data"
}
