package model

import (
	"time"

	"github.com/google/uuid"
)

// UserActivity is append-only: rows are inserted or deleted, never updated.
type UserActivity struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	ActionType string    `gorm:"column:action_type;type:text;not null" json:"action_type"`
	Details    string    `gorm:"type:text;not null;default:''" json:"details"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UserActivity) TableName() string {
	return "user_activity"
}
