package entity

import "time"

// NoticePost is a client-facing notice. Pinned posts sort before unpinned
// ones, then by newest first.
type NoticePost struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Title     string    `gorm:"column:title"`
	Content   string    `gorm:"column:content"`
	IsPinned  bool      `gorm:"column:is_pinned"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for NoticePost.
func (NoticePost) TableName() string {
	return "notice_posts"
}
