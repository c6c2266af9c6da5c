package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"studiotrack_backend/internals/features/reports/casino/dto"
	"studiotrack_backend/internals/features/reports/casino/model"
	helper "studiotrack_backend/internals/helpers"
	"studiotrack_backend/internals/logger"
)

type CasinoReportController struct {
	DB *gorm.DB
}

func NewCasinoReportController(db *gorm.DB) *CasinoReportController {
	return &CasinoReportController{DB: db}
}

// GET /api/casino-reports, newest first
func (ctl *CasinoReportController) List(c *fiber.Ctx) error {
	var rows []model.CasinoReport
	if err := ctl.DB.WithContext(c.UserContext()).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return helper.StorageError(c, err)
	}
	return helper.JsonList(c, rows)
}

// GET /api/casino-reports/range?startDate=&endDate= (caller's reports only)
func (ctl *CasinoReportController) Range(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	start, okStart, err := helper.QueryTime(c, "startDate")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	end, okEnd, err := helper.QueryTime(c, "endDate")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !okStart || !okEnd {
		return helper.JsonError(c, fiber.StatusBadRequest, "Les dates de début et de fin sont requises")
	}
	if end.Before(start) {
		return helper.JsonError(c, fiber.StatusBadRequest, "La date de fin précède la date de début")
	}

	var rows []model.CasinoReport
	err = ctl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", datatypes.Date(start), datatypes.Date(end)).
		Order("date DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return helper.StorageError(c, err)
	}
	return helper.JsonList(c, rows)
}

func (ctl *CasinoReportController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var row model.CasinoReport
	if err := ctl.DB.WithContext(c.UserContext()).First(&row, id).Error; err != nil {
		return helper.StorageError(c, err, "Rapport introuvable")
	}
	return helper.JsonOK(c, row)
}

func (ctl *CasinoReportController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CasinoReportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	row, err := req.ToModel()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row.UserID = &userID

	if err := ctl.DB.WithContext(c.UserContext()).Create(row).Error; err != nil {
		return helper.StorageError(c, err)
	}
	logger.LogCRUD(c, "create", "casino_report", row.ID)
	return helper.JsonCreated(c, row)
}

func (ctl *CasinoReportController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CasinoReportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	cols, err := req.Changes()
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var row model.CasinoReport
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&row).Updates(cols).Error; err != nil {
			return err
		}
		return tx.First(&row, id).Error
	})
	if err != nil {
		return helper.StorageError(c, err, "Rapport introuvable")
	}
	logger.LogCRUD(c, "update", "casino_report", id)
	return helper.JsonUpdated(c, row)
}

func (ctl *CasinoReportController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res := ctl.DB.WithContext(c.UserContext()).Delete(&model.CasinoReport{}, id)
	if res.Error != nil {
		return helper.StorageError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Rapport introuvable")
	}
	logger.LogCRUD(c, "delete", "casino_report", id)
	return helper.JsonDeleted(c)
}
