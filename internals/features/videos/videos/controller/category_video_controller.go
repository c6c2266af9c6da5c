package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"studiotrack_backend/internals/features/videos/videos/dto"
	"studiotrack_backend/internals/features/videos/videos/service"
	helper "studiotrack_backend/internals/helpers"
	"studiotrack_backend/internals/logger"
)

// CategoryVideoController serves two surfaces over the same rows:
// /api/category-videos (bare rows) and /api/videos (rows with video_details).
type CategoryVideoController struct {
	Svc         *service.VideoService
	WithDetails bool
	IDParam     string
}

func NewCategoryVideoController(svc *service.VideoService) *CategoryVideoController {
	return &CategoryVideoController{Svc: svc, IDParam: "id"}
}

func NewVideoController(svc *service.VideoService) *CategoryVideoController {
	return &CategoryVideoController{Svc: svc, WithDetails: true, IDParam: "videoId"}
}

// GET ?categoryId=&status=
func (ctl *CategoryVideoController) List(c *fiber.Ctx) error {
	var f dto.ListFilter
	if id, ok, err := helper.QueryInt64(c, "categoryId"); err != nil {
		return helper.FromFiberError(c, err)
	} else if ok {
		f.CategoryID = &id
	}
	f.Status = strings.TrimSpace(c.Query("status"))

	rows, err := ctl.Svc.List(c.UserContext(), f, ctl.WithDetails)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, rows)
}

func (ctl *CategoryVideoController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, ctl.IDParam)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctl.Svc.Get(c.UserContext(), id, ctl.WithDetails)
	if err != nil {
		return helper.StorageError(c, err, "Vidéo introuvable")
	}
	return helper.JsonOK(c, row)
}

func (ctl *CategoryVideoController) Create(c *fiber.Ctx) error {
	var req dto.CreateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctl.Svc.Create(c.UserContext(), req, ctl.WithDetails)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	logger.LogCRUD(c, "create", "category_video", row.ID)
	return helper.JsonCreated(c, row)
}

func (ctl *CategoryVideoController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, ctl.IDParam)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !ctl.WithDetails {
		row.Details = nil
	}
	logger.LogCRUD(c, "update", "category_video", id)
	return helper.JsonUpdated(c, row)
}

func (ctl *CategoryVideoController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, ctl.IDParam)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	logger.LogCRUD(c, "delete", "category_video", id)
	return helper.JsonDeleted(c)
}

// GET /api/status/:status
func (ctl *CategoryVideoController) ByStatus(c *fiber.Ctx) error {
	status, err := unescapeParam(c.Params("status"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Statut invalide")
	}
	rows, err := ctl.Svc.ByStatus(c.UserContext(), status)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, rows)
}
