package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studiotrack_backend/internals/features/videos/categories/model"
	videoModel "studiotrack_backend/internals/features/videos/videos/model"
	"studiotrack_backend/internals/features/workflow"
	helper "studiotrack_backend/internals/helpers"
)

// AllocationAttempts bounds the insert retries when two writers race for the
// same identifier.
const AllocationAttempts = 5

const msgCategoryNotEmpty = "Impossible de supprimer une catégorie qui contient des vidéos"

// Numeric identifiers sort by length first so "10" lands after "9".
const orderByIdentifier = "length(identifier) ASC, identifier ASC"

func List(db *gorm.DB) ([]model.VideoCategory, error) {
	var rows []model.VideoCategory
	err := db.Order(orderByIdentifier).Find(&rows).Error
	return rows, err
}

func Get(db *gorm.DB, id int64) (*model.VideoCategory, error) {
	var row model.VideoCategory
	if err := db.First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create allocates the next identifier and inserts the category. A unique
// violation on the identifier restarts the whole transaction.
func Create(ctx context.Context, db *gorm.DB, alloc workflow.IdentifierAllocator, owner uuid.UUID, title string) (*model.VideoCategory, error) {
	var out model.VideoCategory
	err := helper.RetryOnConflict(ctx, AllocationAttempts, func() error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing []string
			if err := tx.Model(&model.VideoCategory{}).Order(orderByIdentifier).Pluck("identifier", &existing).Error; err != nil {
				return err
			}
			next, err := alloc.Next(existing)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}

			out = model.VideoCategory{Identifier: next, Title: title, LastUpdated: time.Now().UTC()}
			if owner != uuid.Nil {
				out.UserID = &owner
			}
			return tx.Create(&out).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func UpdateTitle(db *gorm.DB, id int64, title string) (*model.VideoCategory, error) {
	var row model.VideoCategory
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, id).Error; err != nil {
			return err
		}
		err := tx.Model(&row).Updates(map[string]any{
			"title":        title,
			"last_updated": time.Now().UTC(),
		}).Error
		if err != nil {
			return err
		}
		return tx.First(&row, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete refuses to drop a category that still owns videos. The row lock
// keeps a concurrent video insert from slipping in between check and delete.
func Delete(db *gorm.DB, id int64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var row model.VideoCategory
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Catégorie introuvable")
			}
			return err
		}
		var n int64
		if err := tx.Model(&videoModel.CategoryVideo{}).Where("category_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusBadRequest, msgCategoryNotEmpty)
		}
		if err := tx.Delete(&row).Error; err != nil {
			if helper.IsForeignKeyViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, msgCategoryNotEmpty)
			}
			return err
		}
		return nil
	})
}

// LockForWrite takes a row lock on the category so per-category video
// identifiers and counters are computed by one writer at a time.
func LockForWrite(tx *gorm.DB, id int64) (*model.VideoCategory, error) {
	var row model.VideoCategory
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Catégorie introuvable")
		}
		return nil, err
	}
	return &row, nil
}

type statusCount struct {
	ProductionStatus string
	N                int
}

// RefreshCounters recomputes the per-status counters of a category from its
// videos. pending is toDo + inProgress. Runs inside the caller's transaction.
func RefreshCounters(tx *gorm.DB, catalog *workflow.Catalog, categoryID int64) error {
	var rows []statusCount
	err := tx.Model(&videoModel.CategoryVideo{}).
		Select("production_status, count(*) AS n").
		Where("category_id = ?", categoryID).
		Group("production_status").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	var finished, pending, ready int
	for _, r := range rows {
		b, ok := catalog.BucketOf(r.ProductionStatus)
		if !ok {
			continue
		}
		switch b {
		case workflow.BucketFinished:
			finished += r.N
		case workflow.BucketReadyToPublish:
			ready += r.N
		default:
			pending += r.N
		}
	}

	return tx.Model(&model.VideoCategory{}).Where("id = ?", categoryID).Updates(map[string]any{
		"finished_count":         finished,
		"pending_count":          pending,
		"ready_to_publish_count": ready,
		"last_updated":           time.Now().UTC(),
	}).Error
}
