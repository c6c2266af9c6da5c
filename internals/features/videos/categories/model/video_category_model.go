package model

import (
	"time"

	"github.com/google/uuid"
)

// VideoCategory groups videos under a short identifier: a letter on bernie,
// a sequence number on bigwater. The counters mirror category_videos.
type VideoCategory struct {
	ID                  int64      `gorm:"primaryKey" json:"id"`
	Identifier          string     `gorm:"type:text;not null;uniqueIndex:uq_video_categories_identifier" json:"identifier"`
	Title               string     `gorm:"type:text;not null" json:"title"`
	UserID              *uuid.UUID `gorm:"type:uuid" json:"user_id"`
	FinishedCount       int        `gorm:"not null;default:0" json:"finished_count"`
	PendingCount        int        `gorm:"not null;default:0" json:"pending_count"`
	ReadyToPublishCount int        `gorm:"not null;default:0" json:"ready_to_publish_count"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	LastUpdated         time.Time  `gorm:"not null;default:now()" json:"last_updated"`
}

func (VideoCategory) TableName() string {
	return "video_categories"
}
