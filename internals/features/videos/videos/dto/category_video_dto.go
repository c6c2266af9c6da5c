package dto

import (
	"strings"

	detailDTO "studiotrack_backend/internals/features/videos/details/dto"
)

type CreateVideoRequest struct {
	CategoryID       int64  `json:"category_id" validate:"required,gt=0"`
	Title            string `json:"title" validate:"required,max=255"`
	ProductionStatus string `json:"production_status" validate:"omitempty,max=64"`

	// only read by POST /api/videos; flat fields as the dashboard sends them
	detailDTO.DetailFields
}

func (r *CreateVideoRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.ProductionStatus = strings.TrimSpace(r.ProductionStatus)
	r.DetailFields.Normalize()
}

type UpdateVideoRequest struct {
	CategoryID       *int64  `json:"category_id" validate:"omitempty,gt=0"`
	Title            *string `json:"title" validate:"omitempty,min=1,max=255"`
	ProductionStatus *string `json:"production_status" validate:"omitempty,max=64"`

	detailDTO.DetailFields
}

func (r *UpdateVideoRequest) Normalize() {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
	if r.ProductionStatus != nil {
		s := strings.TrimSpace(*r.ProductionStatus)
		r.ProductionStatus = &s
	}
	r.DetailFields.Normalize()
}

func (r UpdateVideoRequest) Empty() bool {
	return r.CategoryID == nil && r.Title == nil && r.ProductionStatus == nil && r.DetailFields.Empty()
}

// ListFilter: query ?categoryId=&status=
type ListFilter struct {
	CategoryID *int64
	Status     string
}
