package route

import (
	"github.com/gofiber/fiber/v2"

	"studiotrack_backend/internals/features/videos/videos/controller"
	"studiotrack_backend/internals/features/videos/videos/service"
)

// CategoryVideoRoutes mounts /category-videos, /videos and /status/:status.
func CategoryVideoRoutes(api fiber.Router, svc *service.VideoService) {
	bare := controller.NewCategoryVideoController(svc)
	g := api.Group("/category-videos")
	g.Get("/", bare.List)
	g.Post("/", bare.Create)
	g.Get("/:id", bare.Get)
	g.Put("/:id", bare.Update)
	g.Delete("/:id", bare.Delete)

	full := controller.NewVideoController(svc)
	v := api.Group("/videos")
	v.Get("/", full.List)
	v.Post("/", full.Create)
	v.Get("/:videoId", full.Get)
	v.Put("/:videoId", full.Update)
	v.Delete("/:videoId", full.Delete)

	api.Get("/status/:status", bare.ByStatus)
}
