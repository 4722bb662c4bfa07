package entity

// RegionMapping maps one provider administrative region identifier to one
// internal location code. A region mapped to N codes has N rows; a region
// with no rows has its forecast data dropped at transform time.
// ForecastType is "marine" or "temperature".
type RegionMapping struct {
	RegID        string `gorm:"column:reg_id;primaryKey"`
	ForecastType string `gorm:"column:forecast_type;primaryKey"`
	LocationCode string `gorm:"column:location_code;primaryKey"`
	RegSp        string `gorm:"column:reg_sp"`
	RegName      string `gorm:"column:reg_name"`
}

// TableName specifies the table name for RegionMapping.
func (RegionMapping) TableName() string {
	return "region_mappings"
}

// Medium-term forecast types.
const (
	ForecastTypeMarine      = "marine"
	ForecastTypeTemperature = "temperature"
)
