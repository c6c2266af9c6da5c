package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studiotrack_backend/internals/constants"
	"studiotrack_backend/internals/features/users/profiles/controller"
	authMiddleware "studiotrack_backend/internals/middlewares/auth"
)

// ProfileRoutes mounts the admin-only /profiles group.
func ProfileRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewProfileController(db)

	g := api.Group("/profiles",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("la gestion des utilisateurs"), constants.AdminOnly...),
	)
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Get)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
