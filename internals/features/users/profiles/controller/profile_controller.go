package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studiotrack_backend/internals/features/users/profiles/dto"
	"studiotrack_backend/internals/features/users/profiles/service"
	helper "studiotrack_backend/internals/helpers"
	"studiotrack_backend/internals/logger"
)

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

// GET /api/profiles?role=
func (ctl *ProfileController) List(c *fiber.Ctx) error {
	rows, err := service.List(ctl.DB.WithContext(c.UserContext()), strings.TrimSpace(c.Query("role")))
	if err != nil {
		return helper.StorageError(c, err)
	}
	return helper.JsonList(c, rows)
}

// GET /api/profiles/:id
func (ctl *ProfileController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := service.Get(ctl.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return helper.StorageError(c, err, "Profil introuvable")
	}
	return helper.JsonOK(c, p)
}

// POST /api/profiles and POST /api/auth/register
func (ctl *ProfileController) Create(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	p, err := service.CreateUser(ctl.DB.WithContext(c.UserContext()), actor, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	logger.LogCRUD(c, "create", "profile", p.ID)
	return helper.JsonCreated(c, p)
}

// PUT /api/profiles/:id
func (ctl *ProfileController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	req.ID = id
	return ctl.update(c, req)
}

// PUT /api/auth/update-user, id in the body
func (ctl *ProfileController) UpdateUser(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	return ctl.update(c, req)
}

func (ctl *ProfileController) update(c *fiber.Ctx, req dto.UpdateUserRequest) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	p, err := service.UpdateUser(ctl.DB.WithContext(c.UserContext()), actor, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	logger.LogCRUD(c, "update", "profile", p.ID)
	return helper.JsonUpdated(c, p)
}

// DELETE /api/profiles/:id
func (ctl *ProfileController) Delete(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.DeleteUser(ctl.DB.WithContext(c.UserContext()), actor, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	logger.LogCRUD(c, "delete", "profile", id)
	return helper.JsonDeleted(c)
}
