package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studiotrack_backend/internals/features/users/activity/dto"
	"studiotrack_backend/internals/features/users/activity/model"
)

// Append writes one activity row on tx, usually inside the caller's transaction.
func Append(tx *gorm.DB, userID uuid.UUID, actionType, details string) error {
	return tx.Create(&model.UserActivity{
		UserID:     userID,
		ActionType: actionType,
		Details:    details,
	}).Error
}

// List returns matching rows, newest first.
func List(db *gorm.DB, f dto.ListFilter) ([]model.UserActivity, error) {
	q := db.Model(&model.UserActivity{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.ActionType != "" {
		q = q.Where("action_type = ?", f.ActionType)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	rows := make([]model.UserActivity, 0)
	if err := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
