package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateUserActivityRequest struct {
	// defaults to the caller; only admins may write for someone else
	UserID     *uuid.UUID `json:"user_id"`
	ActionType string     `json:"action_type" validate:"required,max=100"`
	Details    string     `json:"details" validate:"max=5000"`
}

// ListFilter mirrors the userId/actionType/fromDate/toDate query string.
type ListFilter struct {
	UserID     *uuid.UUID
	ActionType string
	From       *time.Time
	To         *time.Time
}
