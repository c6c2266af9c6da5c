package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studiotrack_backend/internals/constants"
	"studiotrack_backend/internals/features/reports/casino/controller"
	authMiddleware "studiotrack_backend/internals/middlewares/auth"
)

// CasinoReportRoutes mounts the admin-only /casino-reports group.
func CasinoReportRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewCasinoReportController(db)

	g := api.Group("/casino-reports",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("les rapports"), constants.AdminOnly...),
	)
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/range", ctl.Range)
	g.Get("/:id", ctl.Get)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
