package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studiotrack_backend/internals/features/videos/details/dto"
	"studiotrack_backend/internals/features/videos/details/model"
	videoModel "studiotrack_backend/internals/features/videos/videos/model"
	videoService "studiotrack_backend/internals/features/videos/videos/service"
	helper "studiotrack_backend/internals/helpers"
	helperOSS "studiotrack_backend/internals/helpers/oss"
	"studiotrack_backend/internals/logger"
)

const thumbnailDir = "thumbnails"

type VideoDetailController struct {
	DB     *gorm.DB
	Videos *videoService.VideoService
	Store  helperOSS.ThumbnailStore
	Log    *logrus.Logger
}

func NewVideoDetailController(db *gorm.DB, videos *videoService.VideoService, store helperOSS.ThumbnailStore, log *logrus.Logger) *VideoDetailController {
	return &VideoDetailController{DB: db, Videos: videos, Store: store, Log: log}
}

func withHTML(m *model.VideoDetail) error {
	if m.InstructionsMiniature == nil {
		return nil
	}
	html, err := helper.RenderMarkdown(*m.InstructionsMiniature)
	if err != nil {
		return err
	}
	m.InstructionsHTML = html
	return nil
}

// GET /api/video-details?categoryVideoId=
func (ctl *VideoDetailController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.VideoDetail{})
	if id, ok, err := helper.QueryInt64(c, "categoryVideoId"); err != nil {
		return helper.FromFiberError(c, err)
	} else if ok {
		q = q.Where("category_video_id = ?", id)
	}

	var rows []model.VideoDetail
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return helper.StorageError(c, err)
	}
	for i := range rows {
		if err := withHTML(&rows[i]); err != nil {
			return helper.StorageError(c, err)
		}
	}
	return helper.JsonList(c, rows)
}

// GET /api/video-details/:id
func (ctl *VideoDetailController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var row model.VideoDetail
	if err := ctl.DB.WithContext(c.UserContext()).First(&row, id).Error; err != nil {
		return helper.StorageError(c, err, "Détails introuvables")
	}
	if err := withHTML(&row); err != nil {
		return helper.StorageError(c, err)
	}
	return helper.JsonOK(c, row)
}

// POST /api/video-details
func (ctl *VideoDetailController) Create(c *fiber.Ctx) error {
	var req dto.CreateVideoDetailRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	req.DetailFields.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.VideoDetail
	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var v videoModel.CategoryVideo
		if err := tx.First(&v, req.CategoryVideoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Vidéo introuvable")
			}
			return err
		}
		row = model.VideoDetail{
			CategoryVideoID:  v.ID,
			Title:            v.Title,
			ProductionStatus: v.ProductionStatus,
		}
		req.DetailFields.Apply(&row)
		if err := tx.Create(&row).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Les détails de cette vidéo existent déjà")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := withHTML(&row); err != nil {
		return helper.StorageError(c, err)
	}
	logger.LogCRUD(c, "create", "video_detail", row.ID)
	return helper.JsonCreated(c, row)
}

// PUT /api/video-details/:id. Title and status edits are pushed to the video.
func (ctl *VideoDetailController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateVideoDetailRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Title == nil && req.ProductionStatus == nil && req.DetailFields.Empty() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Aucun champ à mettre à jour")
	}

	var row model.VideoDetail
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		// Same order as the video update: parent video first, then the detail.
		var parent []int64
		if err := tx.Model(&model.VideoDetail{}).Where("id = ?", id).Limit(1).Pluck("category_video_id", &parent).Error; err != nil {
			return err
		}
		if len(parent) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Détails introuvables")
		}
		if err := ctl.Videos.LockVideo(tx, parent[0]); err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Détails introuvables")
			}
			return err
		}
		cols := req.DetailFields.Apply(&row)
		if req.Title != nil {
			cols["title"] = *req.Title
		}
		if req.ProductionStatus != nil {
			cols["production_status"] = *req.ProductionStatus
		}
		if err := ctl.Videos.SyncFromDetail(tx, row.CategoryVideoID, req.Title, req.ProductionStatus); err != nil {
			return err
		}
		if err := tx.Model(&row).Updates(cols).Error; err != nil {
			return err
		}
		return tx.First(&row, id).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := withHTML(&row); err != nil {
		return helper.StorageError(c, err)
	}
	logger.LogCRUD(c, "update", "video_detail", id)
	return helper.JsonUpdated(c, row)
}

// DELETE /api/video-details/:id
func (ctl *VideoDetailController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var row model.VideoDetail
	db := ctl.DB.WithContext(c.UserContext())
	if err := db.First(&row, id).Error; err != nil {
		return helper.StorageError(c, err, "Détails introuvables")
	}
	if err := db.Delete(&row).Error; err != nil {
		return helper.StorageError(c, err)
	}
	ctl.dropThumbnail(c, row.MiniatureLink)
	logger.LogCRUD(c, "delete", "video_detail", id)
	return helper.JsonDeleted(c)
}

// POST /api/video-details/:id/thumbnail (multipart "file")
func (ctl *VideoDetailController) UploadThumbnail(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !helperOSS.IsMultipart(c) {
		return helper.JsonError(c, fiber.StatusBadRequest, "multipart/form-data requis")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fichier manquant (champ file)")
	}

	db := ctl.DB.WithContext(c.UserContext())
	var row model.VideoDetail
	if err := db.First(&row, id).Error; err != nil {
		return helper.StorageError(c, err, "Détails introuvables")
	}
	previous := row.MiniatureLink

	url, err := helperOSS.UploadThumbnail(c.UserContext(), ctl.Store, thumbnailDir, fh)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := db.Model(&row).Update("miniature_link", url).Error; err != nil {
		ctl.dropThumbnail(c, &url)
		return helper.StorageError(c, err)
	}
	row.MiniatureLink = &url
	ctl.dropThumbnail(c, previous)

	if err := withHTML(&row); err != nil {
		return helper.StorageError(c, err)
	}
	logger.LogCRUD(c, "upload_thumbnail", "video_detail", id)
	return helper.JsonUpdated(c, row)
}

// dropThumbnail removes a thumbnail we stored earlier. Links pointing
// elsewhere (pasted URLs) are left alone.
func (ctl *VideoDetailController) dropThumbnail(c *fiber.Ctx, link *string) {
	if link == nil || !strings.Contains(*link, "/"+thumbnailDir+"/") {
		return
	}
	if err := ctl.Store.Delete(c.UserContext(), *link); err != nil && ctl.Log != nil {
		ctl.Log.WithError(err).Warnf("⚠️ thumbnail cleanup failed for %s", *link)
	}
}
