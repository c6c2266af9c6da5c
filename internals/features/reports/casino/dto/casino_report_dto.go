package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"studiotrack_backend/internals/features/reports/casino/model"
	helper "studiotrack_backend/internals/helpers"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

func MonthName(m time.Month) string { return frenchMonths[m-1] }

type CasinoReportRequest struct {
	TemplateID   *int            `json:"template_id" validate:"omitempty,gt=0"`
	TemplateName *string         `json:"template_name" validate:"omitempty,max=255"`
	Date         *string         `json:"date"`
	Day          *int            `json:"day" validate:"omitempty,min=1,max=31"`
	Month        *string         `json:"month" validate:"omitempty,max=32"`
	Year         *int            `json:"year" validate:"omitempty,min=2000,max=2100"`
	Data         json.RawMessage `json:"data"`
}

func parseData(raw json.RawMessage) (datatypes.JSON, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return datatypes.JSON("{}"), nil
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "data doit être un objet JSON")
	}
	return datatypes.JSON(trimmed), nil
}

func parseDate(raw string) (time.Time, error) {
	t, err := helper.ParseTime(raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Date invalide: date")
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ToModel builds a new report. date is required; day, month and year
// default to the parts of date.
func (r CasinoReportRequest) ToModel() (*model.CasinoReport, error) {
	if r.Date == nil || strings.TrimSpace(*r.Date) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "La date est requise")
	}
	d, err := parseDate(*r.Date)
	if err != nil {
		return nil, err
	}
	data, err := parseData(r.Data)
	if err != nil {
		return nil, err
	}
	m := &model.CasinoReport{
		TemplateID:   model.DefaultTemplateID,
		TemplateName: model.DefaultTemplateName,
		Date:         datatypes.Date(d),
		Day:          d.Day(),
		Month:        MonthName(d.Month()),
		Year:         d.Year(),
		Data:         data,
	}
	if r.TemplateID != nil {
		m.TemplateID = *r.TemplateID
	}
	if r.TemplateName != nil && strings.TrimSpace(*r.TemplateName) != "" {
		m.TemplateName = strings.TrimSpace(*r.TemplateName)
	}
	if r.Day != nil {
		m.Day = *r.Day
	}
	if r.Month != nil && strings.TrimSpace(*r.Month) != "" {
		m.Month = strings.TrimSpace(*r.Month)
	}
	if r.Year != nil {
		m.Year = *r.Year
	}
	return m, nil
}

// Changes maps the set fields to columns for a partial update. A new date
// without explicit parts also moves day, month and year.
func (r CasinoReportRequest) Changes() (map[string]any, error) {
	cols := map[string]any{}
	if r.Date != nil {
		d, err := parseDate(*r.Date)
		if err != nil {
			return nil, err
		}
		cols["date"] = datatypes.Date(d)
		cols["day"] = d.Day()
		cols["month"] = MonthName(d.Month())
		cols["year"] = d.Year()
	}
	if r.TemplateID != nil {
		cols["template_id"] = *r.TemplateID
	}
	if r.TemplateName != nil && strings.TrimSpace(*r.TemplateName) != "" {
		cols["template_name"] = strings.TrimSpace(*r.TemplateName)
	}
	if r.Day != nil {
		cols["day"] = *r.Day
	}
	if r.Month != nil && strings.TrimSpace(*r.Month) != "" {
		cols["month"] = strings.TrimSpace(*r.Month)
	}
	if r.Year != nil {
		cols["year"] = *r.Year
	}
	if len(r.Data) > 0 {
		data, err := parseData(r.Data)
		if err != nil {
			return nil, err
		}
		cols["data"] = data
	}
	if len(cols) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Aucun champ à mettre à jour")
	}
	return cols, nil
}
