package dto

import (
	"strings"

	"github.com/google/uuid"
)

// CreateUserRequest backs POST /api/profiles and POST /api/auth/register.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

func (r *CreateUserRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.TrimSpace(r.Role)
	if r.Role == "" {
		r.Role = "user"
	}
}

// UpdateUserRequest is a partial update: nil fields are left alone.
type UpdateUserRequest struct {
	ID       uuid.UUID `json:"id"`
	Email    *string   `json:"email" validate:"omitempty,email,max=254"`
	Name     *string   `json:"name" validate:"omitempty,min=1,max=120"`
	Role     *string   `json:"role" validate:"omitempty,oneof=user admin"`
	Password *string   `json:"password" validate:"omitempty,min=8,max=128"`
}

func (r *UpdateUserRequest) Normalize() {
	trim := func(p **string, lower bool) {
		if *p == nil {
			return
		}
		v := strings.TrimSpace(**p)
		if lower {
			v = strings.ToLower(v)
		}
		if v == "" {
			*p = nil
			return
		}
		*p = &v
	}
	trim(&r.Email, true)
	trim(&r.Name, false)
	trim(&r.Role, false)
	if r.Password != nil && *r.Password == "" {
		r.Password = nil
	}
}

func (r UpdateUserRequest) Empty() bool {
	return r.Email == nil && r.Name == nil && r.Role == nil && r.Password == nil
}
