package dto

import (
	"strings"

	"studiotrack_backend/internals/features/videos/details/model"
)

// DetailFields are the editable detail columns. nil leaves a column as is;
// an empty string clears it.
type DetailFields struct {
	Description           *string `json:"description" validate:"omitempty,max=5000"`
	RushLink              *string `json:"rush_link" validate:"omitempty,url,max=2048"`
	VideoLink             *string `json:"video_link" validate:"omitempty,url,max=2048"`
	MiniatureLink         *string `json:"miniature_link" validate:"omitempty,url,max=2048"`
	InstructionsMiniature *string `json:"instructions_miniature" validate:"omitempty,max=20000"`
	EditNotes             *string `json:"edit_notes" validate:"omitempty,max=20000"`
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func (f *DetailFields) Normalize() {
	f.Description = trimPtr(f.Description)
	f.RushLink = trimPtr(f.RushLink)
	f.VideoLink = trimPtr(f.VideoLink)
	f.MiniatureLink = trimPtr(f.MiniatureLink)
	f.InstructionsMiniature = trimPtr(f.InstructionsMiniature)
	f.EditNotes = trimPtr(f.EditNotes)
}

func nullable(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

// Apply copies the set fields onto m and returns the column map for Updates.
func (f DetailFields) Apply(m *model.VideoDetail) map[string]any {
	cols := map[string]any{}
	set := func(col string, src *string, dst **string) {
		if src == nil {
			return
		}
		*dst = nullable(src)
		cols[col] = *dst
	}
	set("description", f.Description, &m.Description)
	set("rush_link", f.RushLink, &m.RushLink)
	set("video_link", f.VideoLink, &m.VideoLink)
	set("miniature_link", f.MiniatureLink, &m.MiniatureLink)
	set("instructions_miniature", f.InstructionsMiniature, &m.InstructionsMiniature)
	set("edit_notes", f.EditNotes, &m.EditNotes)
	return cols
}

func (f DetailFields) Empty() bool {
	return f.Description == nil && f.RushLink == nil && f.VideoLink == nil &&
		f.MiniatureLink == nil && f.InstructionsMiniature == nil && f.EditNotes == nil
}

type CreateVideoDetailRequest struct {
	CategoryVideoID int64 `json:"category_video_id" validate:"required,gt=0"`
	DetailFields
}

type UpdateVideoDetailRequest struct {
	Title            *string `json:"title" validate:"omitempty,min=1,max=255"`
	ProductionStatus *string `json:"production_status" validate:"omitempty,max=64"`
	DetailFields
}

func (r *UpdateVideoDetailRequest) Normalize() {
	r.Title = trimPtr(r.Title)
	r.ProductionStatus = trimPtr(r.ProductionStatus)
	r.DetailFields.Normalize()
}
