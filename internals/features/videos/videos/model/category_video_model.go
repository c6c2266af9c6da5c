package model

import (
	"time"

	detailModel "studiotrack_backend/internals/features/videos/details/model"
	"studiotrack_backend/internals/features/workflow"
)

// CategoryVideo is one unit of production work. Identifier is a sequence
// number unique within the category only.
type CategoryVideo struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	CategoryID       int64     `gorm:"not null;uniqueIndex:uq_category_videos_identifier,priority:1" json:"category_id"`
	Title            string    `gorm:"type:text;not null" json:"title"`
	ProductionStatus string    `gorm:"type:text;not null" json:"production_status"`
	Identifier       int       `gorm:"not null;uniqueIndex:uq_category_videos_identifier,priority:2" json:"identifier"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Details *detailModel.VideoDetail `gorm:"foreignKey:CategoryVideoID" json:"video_details,omitempty"`
}

func (CategoryVideo) TableName() string {
	return "category_videos"
}

func (v CategoryVideo) Snapshot() workflow.VideoSnapshot {
	return workflow.VideoSnapshot{
		ID:               v.ID,
		CategoryID:       v.CategoryID,
		Title:            v.Title,
		ProductionStatus: v.ProductionStatus,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}
