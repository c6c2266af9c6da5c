package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studiotrack_backend/internals/constants"
	"studiotrack_backend/internals/features/users/activity/controller"
	authMiddleware "studiotrack_backend/internals/middlewares/auth"
)

// UserActivityRoutes mounts /user-activity on an authenticated group.
func UserActivityRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserActivityController(db)

	g := api.Group("/user-activity")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Get)
	g.Delete("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("la suppression d'activité"), constants.AdminOnly...),
		ctl.Delete,
	)
}
