package model

import "time"

// VideoDetail is the 1:1 extension of a category video. Title and
// production_status are copies of the parent's and follow its updates.
type VideoDetail struct {
	ID                    int64     `gorm:"primaryKey" json:"id"`
	CategoryVideoID       int64     `gorm:"not null;uniqueIndex:uq_video_details_video" json:"category_video_id"`
	Title                 string    `gorm:"type:text;not null;default:''" json:"title"`
	Description           *string   `gorm:"type:text" json:"description"`
	ProductionStatus      string    `gorm:"type:text;not null;default:''" json:"production_status"`
	RushLink              *string   `gorm:"type:text" json:"rush_link"`
	VideoLink             *string   `gorm:"type:text" json:"video_link"`
	MiniatureLink         *string   `gorm:"type:text" json:"miniature_link"`
	InstructionsMiniature *string   `gorm:"type:text" json:"instructions_miniature"`
	EditNotes             *string   `gorm:"type:text" json:"edit_notes"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	InstructionsHTML string `gorm:"-" json:"instructions_html,omitempty"`
}

func (VideoDetail) TableName() string {
	return "video_details"
}
