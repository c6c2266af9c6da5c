package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	DefaultTemplateID   = 1
	DefaultTemplateName = "Rapport Performances Mensuelles"
)

// CasinoReport is one dated reporting sheet. Data holds the template's
// free-form figures as a JSON object.
type CasinoReport struct {
	ID           int64          `gorm:"primaryKey" json:"id"`
	UserID       *uuid.UUID     `gorm:"type:uuid;index:idx_casino_reports_user_date,priority:1" json:"user_id"`
	TemplateID   int            `gorm:"not null;default:1" json:"template_id"`
	TemplateName string         `gorm:"type:text;not null" json:"template_name"`
	Day          int            `gorm:"not null" json:"day"`
	Month        string         `gorm:"type:text;not null" json:"month"`
	Year         int            `gorm:"not null" json:"year"`
	Date         datatypes.Date `gorm:"type:date;not null;index:idx_casino_reports_user_date,priority:2" json:"date"`
	Data         datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"data"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (CasinoReport) TableName() string {
	return "casino_reports"
}
