package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studiotrack_backend/internals/constants"
	"studiotrack_backend/internals/features/users/activity/dto"
	"studiotrack_backend/internals/features/users/activity/model"
	"studiotrack_backend/internals/features/users/activity/service"
	helper "studiotrack_backend/internals/helpers"
)

type UserActivityController struct {
	DB *gorm.DB
}

func NewUserActivityController(db *gorm.DB) *UserActivityController {
	return &UserActivityController{DB: db}
}

// GET /api/user-activity?userId=&actionType=&fromDate=&toDate=
func (ctl *UserActivityController) List(c *fiber.Ctx) error {
	var f dto.ListFilter
	if raw := strings.TrimSpace(c.Query("userId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "userId invalide")
		}
		f.UserID = &id
	}
	f.ActionType = strings.TrimSpace(c.Query("actionType"))

	from, ok, err := helper.QueryTime(c, "fromDate")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if ok {
		f.From = &from
	}
	to, ok, err := helper.QueryTime(c, "toDate")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if ok {
		f.To = &to
	}

	rows, err := service.List(ctl.DB.WithContext(c.UserContext()), f)
	if err != nil {
		return helper.StorageError(c, err)
	}
	return helper.JsonList(c, rows)
}

// POST /api/user-activity
func (ctl *UserActivityController) Create(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateUserActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	req.ActionType = strings.TrimSpace(req.ActionType)
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	owner := caller
	if req.UserID != nil && *req.UserID != caller {
		if helper.GetUserRole(c) != constants.RoleAdmin {
			return helper.JsonError(c, fiber.StatusForbidden, "Impossible d'écrire l'activité d'un autre utilisateur")
		}
		owner = *req.UserID
	}

	row := model.UserActivity{UserID: owner, ActionType: req.ActionType, Details: req.Details}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return helper.StorageError(c, err)
	}
	return helper.JsonCreated(c, row)
}

// GET /api/user-activity/:id
func (ctl *UserActivityController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var row model.UserActivity
	if err := ctl.DB.WithContext(c.UserContext()).First(&row, id).Error; err != nil {
		return helper.StorageError(c, err, "Activité introuvable")
	}
	return helper.JsonOK(c, row)
}

// DELETE /api/user-activity/:id (admin)
func (ctl *UserActivityController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res := ctl.DB.WithContext(c.UserContext()).Delete(&model.UserActivity{}, id)
	if res.Error != nil {
		return helper.StorageError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Activité introuvable")
	}
	return helper.JsonDeleted(c)
}
