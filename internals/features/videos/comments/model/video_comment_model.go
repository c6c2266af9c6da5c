package model

import (
	"time"

	"github.com/google/uuid"
)

// VideoComment is append-only.
type VideoComment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	VideoID   int64     `gorm:"not null;index:idx_video_comments_video_created,priority:1" json:"video_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_video_comments_video_created,priority:2" json:"created_at"`
}

func (VideoComment) TableName() string {
	return "video_comments"
}
