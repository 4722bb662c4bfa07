// Package entity defines the GORM entities persisted by tidecast.
// Timestamp columns follow the source conventions: UTC instants are stored as
// ISO-8601 strings, KST-local values as strings with an explicit +09:00
// suffix, and KMA wire times as fixed-width YYYYMMDDHHMM strings.
package entity

// Location is reference data identifying a place for which external data is
// collected. StationIDA/StationIDB are the KMA marine observation stations
// serving the location; GridNX/GridNY are the KMA short-term forecast grid
// cell.
type Location struct {
	Code       string   `gorm:"column:code;primaryKey"`
	Name       string   `gorm:"column:name"`
	Latitude   *float64 `gorm:"column:latitude"`
	Longitude  *float64 `gorm:"column:longitude"`
	StationIDA *string  `gorm:"column:station_id_a"`
	StationIDB *string  `gorm:"column:station_id_b"`
	GridNX     *int     `gorm:"column:grid_nx"`
	GridNY     *int     `gorm:"column:grid_ny"`
}

// TableName specifies the table name for Location.
func (Location) TableName() string {
	return "locations"
}
