package entity

import "time"

// CollectionLog is the append-only audit row written once per collection run.
// Status is one of "success", "partial", "error".
type CollectionLog struct {
	ID                 string    `gorm:"column:id;primaryKey"`
	FunctionName       string    `gorm:"column:function_name"`
	StartedAt          time.Time `gorm:"column:started_at"`
	FinishedAt         time.Time `gorm:"column:finished_at"`
	Status             string    `gorm:"column:status"`
	RecordsCollected   int       `gorm:"column:records_collected"`
	LocationsProcessed int       `gorm:"column:locations_processed"`
	LocationsRetried   int       `gorm:"column:locations_retried"`
	ErrorMessage       *string   `gorm:"column:error_message"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for CollectionLog.
func (CollectionLog) TableName() string {
	return "collection_logs"
}

// Collection run statuses.
const (
	CollectionStatusSuccess = "success"
	CollectionStatusPartial = "partial"
	CollectionStatusError   = "error"
)
