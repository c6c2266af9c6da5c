package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studiotrack_backend/internals/features/videos/comments/controller"
)

func VideoCommentRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewVideoCommentController(db)

	api.Get("/videos/:videoId/comments", ctl.List)
	api.Post("/videos/:videoId/comments", ctl.Create)
}
