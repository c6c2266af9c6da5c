package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studiotrack_backend/internals/features/videos/comments/dto"
	"studiotrack_backend/internals/features/videos/comments/model"
	videoModel "studiotrack_backend/internals/features/videos/videos/model"
	helper "studiotrack_backend/internals/helpers"
	"studiotrack_backend/internals/logger"
)

type VideoCommentController struct {
	DB *gorm.DB
}

func NewVideoCommentController(db *gorm.DB) *VideoCommentController {
	return &VideoCommentController{DB: db}
}

func (ctl *VideoCommentController) ensureVideo(db *gorm.DB, videoID int64) error {
	var n int64
	if err := db.Model(&videoModel.CategoryVideo{}).Where("id = ?", videoID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Vidéo introuvable")
	}
	return nil
}

// GET /api/videos/:videoId/comments, oldest first
func (ctl *VideoCommentController) List(c *fiber.Ctx) error {
	videoID, err := helper.ParseIDParam(c, "videoId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := ctl.DB.WithContext(c.UserContext())
	if err := ctl.ensureVideo(db, videoID); err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []dto.CommentResponse
	err = db.Model(&model.VideoComment{}).
		Select("video_comments.*, p.name AS user_name, p.email AS user_email").
		Joins("LEFT JOIN profiles p ON p.id = video_comments.user_id").
		Where("video_comments.video_id = ?", videoID).
		Order("video_comments.created_at ASC, video_comments.id ASC").
		Scan(&rows).Error
	if err != nil {
		return helper.StorageError(c, err)
	}
	return helper.JsonList(c, rows)
}

// POST /api/videos/:videoId/comments
func (ctl *VideoCommentController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	videoID, err := helper.ParseIDParam(c, "videoId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row := model.VideoComment{VideoID: videoID, UserID: userID, Comment: req.Comment}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		if helper.IsForeignKeyViolation(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "Vidéo introuvable")
		}
		return helper.StorageError(c, err)
	}
	logger.LogCRUD(c, "create", "video_comment", row.ID)
	return helper.JsonCreated(c, row)
}
