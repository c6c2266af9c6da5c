package route

import (
	"github.com/gofiber/fiber/v2"

	"studiotrack_backend/internals/constants"
	"studiotrack_backend/internals/features/videos/insights/controller"
	"studiotrack_backend/internals/features/videos/insights/service"
	authMiddleware "studiotrack_backend/internals/middlewares/auth"
)

func InsightRoutes(api fiber.Router, svc *service.InsightService) {
	ctl := controller.NewInsightController(svc)

	api.Get("/alerts", ctl.Alerts)
	api.Get("/priorities", ctl.Priorities)
	api.Get("/performance", ctl.Performance)
	api.Get("/stats", ctl.Stats)
	api.Get("/statuses", ctl.Statuses)
	api.Get("/admin",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("l'API d'administration"), constants.AdminOnly...),
		ctl.Admin,
	)
}
