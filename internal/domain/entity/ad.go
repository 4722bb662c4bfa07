package entity

import "time"

// AdCampaign is an advertising campaign managed through the admin CRUD API.
// MatchedStationIDs is a JSON-encoded string array.
type AdCampaign struct {
	ID                string    `gorm:"column:id;primaryKey"`
	PartnerID         string    `gorm:"column:partner_id"`
	CampaignName      string    `gorm:"column:campaign_name"`
	MatchedStationIDs []string  `gorm:"column:matched_station_ids;serializer:json"`
	MatchedArea       *string   `gorm:"column:matched_area"`
	AdTypeA           *string   `gorm:"column:ad_type_a"`
	AdTypeB           *string   `gorm:"column:ad_type_b"`
	ImageAURL         *string   `gorm:"column:image_a_url"`
	ImageBURL         *string   `gorm:"column:image_b_url"`
	LandingURL        *string   `gorm:"column:landing_url"`
	DisplayStartDate  string    `gorm:"column:display_start_date"`
	DisplayEndDate    string    `gorm:"column:display_end_date"`
	IsActive          bool      `gorm:"column:is_active"`
	Priority          int       `gorm:"column:priority"`
	Description       *string   `gorm:"column:description"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for AdCampaign.
func (AdCampaign) TableName() string {
	return "ad_campaigns"
}

// AdEvent is one recorded impression or click for an ad campaign.
// AdditionalData holds the caller's free-form JSON payload verbatim.
type AdEvent struct {
	ID             string    `gorm:"column:id;primaryKey"`
	AdCampaignID   string    `gorm:"column:ad_campaign_id"`
	EventType      string    `gorm:"column:event_type"`
	StationID      *string   `gorm:"column:station_id"`
	UserAgent      *string   `gorm:"column:user_agent"`
	IPAddress      *string   `gorm:"column:ip_address"`
	AdditionalData *string   `gorm:"column:additional_data"`
	EventTimestamp time.Time `gorm:"column:event_timestamp;autoCreateTime"`
}

// TableName specifies the table name for AdEvent.
func (AdEvent) TableName() string {
	return "ad_events"
}

// Ad event types accepted by the tracking endpoint.
const (
	AdEventImpression = "impression"
	AdEventClick      = "click"
)
