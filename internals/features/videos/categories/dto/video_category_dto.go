package dto

import "strings"

type CreateCategoryRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

func (r *CreateCategoryRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

type UpdateCategoryRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

func (r *UpdateCategoryRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}
