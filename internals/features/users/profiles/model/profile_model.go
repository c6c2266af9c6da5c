package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile shares its id with auth_users and is removed with it (CASCADE).
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"type:text;not null" json:"email"`
	Name      *string   `gorm:"type:text" json:"name"`
	Role      string    `gorm:"type:text;not null;default:'user'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p Profile) IsAdmin() bool { return p.Role == "admin" }
