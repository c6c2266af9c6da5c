package model

import (
	"time"

	"github.com/google/uuid"
)

// RevokedToken marks a logged-out JWT by its HMAC digest. Rows are useless
// past ExpiresAt and get purged by the cleanup job.
type RevokedToken struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	Digest    string     `gorm:"type:char(64);not null;uniqueIndex" json:"-"`
	UserID    *uuid.UUID `gorm:"type:uuid" json:"user_id"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
	RevokedAt time.Time  `gorm:"autoCreateTime" json:"revoked_at"`
}

func (RevokedToken) TableName() string { return "revoked_tokens" }
