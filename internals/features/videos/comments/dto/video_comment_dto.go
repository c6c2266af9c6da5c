package dto

import (
	"strings"

	"studiotrack_backend/internals/features/videos/comments/model"
)

type CreateCommentRequest struct {
	Comment string `json:"comment" validate:"required,max=5000"`
}

func (r *CreateCommentRequest) Normalize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

// CommentResponse is a comment with its author as shown in the thread.
type CommentResponse struct {
	model.VideoComment
	UserName  *string `json:"user_name"`
	UserEmail *string `json:"user_email"`
}
