package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studiotrack_backend/internals/features/videos/categories/dto"
	"studiotrack_backend/internals/features/videos/categories/service"
	"studiotrack_backend/internals/features/workflow"
	helper "studiotrack_backend/internals/helpers"
	"studiotrack_backend/internals/logger"
)

type VideoCategoryController struct {
	DB    *gorm.DB
	Alloc workflow.IdentifierAllocator
}

func NewVideoCategoryController(db *gorm.DB, alloc workflow.IdentifierAllocator) *VideoCategoryController {
	return &VideoCategoryController{DB: db, Alloc: alloc}
}

// GET /api/categories
func (ctl *VideoCategoryController) List(c *fiber.Ctx) error {
	rows, err := service.List(ctl.DB.WithContext(c.UserContext()))
	if err != nil {
		return helper.StorageError(c, err)
	}
	return helper.JsonList(c, rows)
}

// GET /api/video-categories/:id
func (ctl *VideoCategoryController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := service.Get(ctl.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return helper.StorageError(c, err, "Catégorie introuvable")
	}
	return helper.JsonOK(c, row)
}

// POST /api/categories
func (ctl *VideoCategoryController) Create(c *fiber.Ctx) error {
	owner, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := service.Create(c.UserContext(), ctl.DB, ctl.Alloc, owner, req.Title)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	logger.LogCRUD(c, "create", "video_category", row.ID)
	return helper.JsonCreated(c, row)
}

// PUT /api/video-categories/:id
func (ctl *VideoCategoryController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := service.UpdateTitle(ctl.DB.WithContext(c.UserContext()), id, req.Title)
	if err != nil {
		return helper.StorageError(c, err, "Catégorie introuvable")
	}
	logger.LogCRUD(c, "update", "video_category", id)
	return helper.JsonUpdated(c, row)
}

// DELETE /api/video-categories/:id
func (ctl *VideoCategoryController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.Delete(ctl.DB.WithContext(c.UserContext()), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	logger.LogCRUD(c, "delete", "video_category", id)
	return helper.JsonDeleted(c)
}
