package entity

import "time"

// MediumTermForecast is one KMA medium-term forecast row, duplicated per
// mapped location code. ForecastType distinguishes the marine feed
// (fct_afs_wo) from the temperature feed (fct_afs_wc). TmFc/TmEf are the KMA
// wire times (YYYYMMDDHHMM); the *KR columns carry the +09:00 suffix and the
// *UTC columns the ISO UTC instant.
type MediumTermForecast struct {
	RegID        string    `gorm:"column:reg_id;primaryKey"`
	TmEf         string    `gorm:"column:tm_ef;primaryKey"`
	Mod          string    `gorm:"column:mod;primaryKey"`
	ForecastType string    `gorm:"column:forecast_type;primaryKey"`
	LocationCode string    `gorm:"column:location_code;primaryKey"`
	RegSp        string    `gorm:"column:reg_sp"`
	RegName      string    `gorm:"column:reg_name"`
	TmFc         string    `gorm:"column:tm_fc"`
	TmFcKR       string    `gorm:"column:tm_fc_kr"`
	TmFcUTC      string    `gorm:"column:tm_fc_utc"`
	TmEfKR       string    `gorm:"column:tm_ef_kr"`
	TmEfUTC      string    `gorm:"column:tm_ef_utc"`
	C            *float64  `gorm:"column:c"`
	SKY          *string   `gorm:"column:sky"`
	PRE          *string   `gorm:"column:pre"`
	Conf         *string   `gorm:"column:conf"`
	WF           *string   `gorm:"column:wf"`
	RnSt         *float64  `gorm:"column:rn_st"`
	MinTemp      *float64  `gorm:"column:min_temp"`
	MaxTemp      *float64  `gorm:"column:max_temp"`
	MinTempL     *float64  `gorm:"column:min_temp_l"`
	MinTempH     *float64  `gorm:"column:min_temp_h"`
	MaxTempL     *float64  `gorm:"column:max_temp_l"`
	MaxTempH     *float64  `gorm:"column:max_temp_h"`
	WhA          *float64  `gorm:"column:wh_a"`
	WhB          *float64  `gorm:"column:wh_b"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for MediumTermForecast.
func (MediumTermForecast) TableName() string {
	return "medium_term_forecasts"
}
