package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studiotrack_backend/internals/features/videos/categories/controller"
	"studiotrack_backend/internals/features/workflow"
)

// VideoCategoryRoutes mounts /categories and its /video-categories alias.
func VideoCategoryRoutes(api fiber.Router, db *gorm.DB, alloc workflow.IdentifierAllocator) {
	ctl := controller.NewVideoCategoryController(db, alloc)

	api.Get("/categories", ctl.List)
	api.Post("/categories", ctl.Create)

	g := api.Group("/video-categories")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Get)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
