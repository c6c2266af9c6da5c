package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	categoryService "studiotrack_backend/internals/features/videos/categories/service"
	detailModel "studiotrack_backend/internals/features/videos/details/model"
	"studiotrack_backend/internals/features/videos/videos/dto"
	"studiotrack_backend/internals/features/videos/videos/model"
	"studiotrack_backend/internals/features/workflow"
	helper "studiotrack_backend/internals/helpers"
)

const msgVideoNotFound = "Vidéo introuvable"

// VideoService owns every write on category_videos so the category counters
// and the detail copies never drift from the videos.
type VideoService struct {
	DB      *gorm.DB
	Catalog *workflow.Catalog
}

func NewVideoService(db *gorm.DB, catalog *workflow.Catalog) *VideoService {
	return &VideoService{DB: db, Catalog: catalog}
}

func (s *VideoService) validateStatus(status string) error {
	if err := s.Catalog.Validate(status); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func (s *VideoService) List(ctx context.Context, f dto.ListFilter, withDetails bool) ([]model.CategoryVideo, error) {
	q := s.DB.WithContext(ctx).Model(&model.CategoryVideo{})
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if st := strings.TrimSpace(f.Status); st != "" {
		if err := s.validateStatus(st); err != nil {
			return nil, err
		}
		q = q.Where("production_status = ?", st)
	}
	if withDetails {
		q = q.Preload("Details")
	}
	var rows []model.CategoryVideo
	err := q.Order("category_id ASC, identifier ASC").Find(&rows).Error
	return rows, err
}

func (s *VideoService) Get(ctx context.Context, id int64, withDetails bool) (*model.CategoryVideo, error) {
	q := s.DB.WithContext(ctx)
	if withDetails {
		q = q.Preload("Details")
	}
	var row model.CategoryVideo
	if err := q.First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ByStatus lists the videos currently in status, most recently touched first.
func (s *VideoService) ByStatus(ctx context.Context, status string) ([]model.CategoryVideo, error) {
	if err := s.validateStatus(status); err != nil {
		return nil, err
	}
	var rows []model.CategoryVideo
	err := s.DB.WithContext(ctx).
		Where("production_status = ?", status).
		Order("updated_at DESC").
		Find(&rows).Error
	return rows, err
}

func nextVideoIdentifier(tx *gorm.DB, categoryID int64) (int, error) {
	var maxID int
	err := tx.Model(&model.CategoryVideo{}).
		Where("category_id = ?", categoryID).
		Select("COALESCE(MAX(identifier), 0)").
		Scan(&maxID).Error
	return maxID + 1, err
}

// Create inserts the video under the next identifier of its category and,
// when withDetails is set, its detail row. Counters are refreshed in the
// same transaction.
func (s *VideoService) Create(ctx context.Context, req dto.CreateVideoRequest, withDetails bool) (*model.CategoryVideo, error) {
	req.Normalize()
	if req.ProductionStatus == "" {
		req.ProductionStatus = s.Catalog.Default()
	}
	if err := s.validateStatus(req.ProductionStatus); err != nil {
		return nil, err
	}

	var out model.CategoryVideo
	err := helper.RetryOnConflict(ctx, categoryService.AllocationAttempts, func() error {
		return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if _, err := categoryService.LockForWrite(tx, req.CategoryID); err != nil {
				return err
			}
			ident, err := nextVideoIdentifier(tx, req.CategoryID)
			if err != nil {
				return err
			}
			out = model.CategoryVideo{
				CategoryID:       req.CategoryID,
				Title:            req.Title,
				ProductionStatus: req.ProductionStatus,
				Identifier:       ident,
			}
			if err := tx.Create(&out).Error; err != nil {
				return err
			}

			if withDetails {
				det := detailModel.VideoDetail{
					CategoryVideoID:  out.ID,
					Title:            out.Title,
					ProductionStatus: out.ProductionStatus,
				}
				req.DetailFields.Apply(&det)
				if err := tx.Create(&det).Error; err != nil {
					return err
				}
				out.Details = &det
			}
			return categoryService.RefreshCounters(tx, s.Catalog, out.CategoryID)
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial update. Moving a video to another category gives
// it the next identifier there; both categories get fresh counters.
func (s *VideoService) Update(ctx context.Context, id int64, req dto.UpdateVideoRequest) (*model.CategoryVideo, error) {
	req.Normalize()
	if req.Empty() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Aucun champ à mettre à jour")
	}
	if req.ProductionStatus != nil {
		if err := s.validateStatus(*req.ProductionStatus); err != nil {
			return nil, err
		}
	}

	var out model.CategoryVideo
	err := helper.RetryOnConflict(ctx, categoryService.AllocationAttempts, func() error {
		return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&out, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, msgVideoNotFound)
				}
				return err
			}
			oldCategory := out.CategoryID
			cols := map[string]any{}

			if req.CategoryID != nil && *req.CategoryID != oldCategory {
				if _, err := categoryService.LockForWrite(tx, *req.CategoryID); err != nil {
					return err
				}
				ident, err := nextVideoIdentifier(tx, *req.CategoryID)
				if err != nil {
					return err
				}
				cols["category_id"] = *req.CategoryID
				cols["identifier"] = ident
			}
			if req.Title != nil {
				cols["title"] = *req.Title
			}
			if req.ProductionStatus != nil {
				cols["production_status"] = *req.ProductionStatus
			}
			if len(cols) > 0 {
				if err := tx.Model(&out).Updates(cols).Error; err != nil {
					return err
				}
				if err := tx.First(&out, id).Error; err != nil {
					return err
				}
			}

			if err := syncDetails(tx, &out, req); err != nil {
				return err
			}

			if err := categoryService.RefreshCounters(tx, s.Catalog, out.CategoryID); err != nil {
				return err
			}
			if oldCategory != out.CategoryID {
				return categoryService.RefreshCounters(tx, s.Catalog, oldCategory)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// syncDetails copies title/status into the detail row and applies any
// detail fields of the request. A missing detail row is created.
func syncDetails(tx *gorm.DB, v *model.CategoryVideo, req dto.UpdateVideoRequest) error {
	var det detailModel.VideoDetail
	err := tx.Where("category_video_id = ?", v.ID).First(&det).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if req.DetailFields.Empty() {
			return nil
		}
		det = detailModel.VideoDetail{CategoryVideoID: v.ID, Title: v.Title, ProductionStatus: v.ProductionStatus}
		req.DetailFields.Apply(&det)
		if err := tx.Create(&det).Error; err != nil {
			return err
		}
		v.Details = &det
		return nil
	case err != nil:
		return err
	}

	cols := req.DetailFields.Apply(&det)
	cols["title"] = v.Title
	cols["production_status"] = v.ProductionStatus
	if err := tx.Model(&det).Updates(cols).Error; err != nil {
		return err
	}
	det.Title, det.ProductionStatus = v.Title, v.ProductionStatus
	v.Details = &det
	return nil
}

// Delete removes the video; details and comments cascade.
func (s *VideoService) Delete(ctx context.Context, id int64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v model.CategoryVideo
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, msgVideoNotFound)
			}
			return err
		}
		if _, err := categoryService.LockForWrite(tx, v.CategoryID); err != nil {
			return err
		}
		if err := tx.Delete(&v).Error; err != nil {
			return err
		}
		return categoryService.RefreshCounters(tx, s.Catalog, v.CategoryID)
	})
}

// LockVideo takes the row lock on a video inside the caller's transaction.
func (s *VideoService) LockVideo(tx *gorm.DB, id int64) error {
	var v model.CategoryVideo
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, msgVideoNotFound)
		}
		return err
	}
	return nil
}

// SyncFromDetail pushes a title/status edit made on the detail row back to
// the parent video. Runs inside the caller's transaction.
func (s *VideoService) SyncFromDetail(tx *gorm.DB, videoID int64, title, status *string) error {
	cols := map[string]any{}
	if title != nil {
		cols["title"] = *title
	}
	if status != nil {
		if err := s.validateStatus(*status); err != nil {
			return err
		}
		cols["production_status"] = *status
	}
	if len(cols) == 0 {
		return nil
	}
	var v model.CategoryVideo
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, videoID).Error; err != nil {
		return err
	}
	if err := tx.Model(&v).Updates(cols).Error; err != nil {
		return err
	}
	if status == nil {
		return nil
	}
	return categoryService.RefreshCounters(tx, s.Catalog, v.CategoryID)
}
