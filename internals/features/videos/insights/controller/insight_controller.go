package controller

import (
	"github.com/gofiber/fiber/v2"

	"studiotrack_backend/internals/features/videos/insights/service"
	helper "studiotrack_backend/internals/helpers"
)

type InsightController struct {
	Svc *service.InsightService
}

func NewInsightController(svc *service.InsightService) *InsightController {
	return &InsightController{Svc: svc}
}

// GET /api/alerts
func (ctl *InsightController) Alerts(c *fiber.Ctx) error {
	rows, err := ctl.Svc.Alerts(c.UserContext())
	if err != nil {
		return helper.StorageError(c, err)
	}
	return helper.JsonList(c, rows)
}

// GET /api/priorities
func (ctl *InsightController) Priorities(c *fiber.Ctx) error {
	rows, err := ctl.Svc.Priorities(c.UserContext())
	if err != nil {
		return helper.StorageError(c, err)
	}
	return helper.JsonList(c, rows)
}

// GET /api/performance
func (ctl *InsightController) Performance(c *fiber.Ctx) error {
	report, err := ctl.Svc.Performance(c.UserContext())
	if err != nil {
		return helper.StorageError(c, err)
	}
	return helper.JsonOK(c, report)
}

// GET /api/stats
func (ctl *InsightController) Stats(c *fiber.Ctx) error {
	counts, err := ctl.Svc.Stats(c.UserContext())
	if err != nil {
		return helper.StorageError(c, err)
	}
	return helper.JsonOK(c, counts)
}

// GET /api/statuses
func (ctl *InsightController) Statuses(c *fiber.Ctx) error {
	return helper.JsonOK(c, fiber.Map{
		"variant":  ctl.Svc.Catalog.Variant(),
		"terminal": ctl.Svc.Catalog.Terminal(),
		"statuses": ctl.Svc.Catalog.Statuses(),
	})
}

// GET /api/admin
func (ctl *InsightController) Admin(c *fiber.Ctx) error {
	return helper.JsonOK(c, fiber.Map{"message": "Bienvenue dans l'API d'administration"})
}
