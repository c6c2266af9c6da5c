package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"studiotrack_backend/internals/features/videos/details/controller"
	videoService "studiotrack_backend/internals/features/videos/videos/service"
	helperOSS "studiotrack_backend/internals/helpers/oss"
)

func VideoDetailRoutes(api fiber.Router, db *gorm.DB, videos *videoService.VideoService, store helperOSS.ThumbnailStore, log *logrus.Logger) {
	ctl := controller.NewVideoDetailController(db, videos, store, log)

	g := api.Group("/video-details")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Get)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
	g.Post("/:id/thumbnail", ctl.UploadThumbnail)
}
