package service

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studiotrack_backend/internals/constants"
	activityService "studiotrack_backend/internals/features/users/activity/service"
	authHelper "studiotrack_backend/internals/features/users/auth/helper"
	authModel "studiotrack_backend/internals/features/users/auth/model"
	"studiotrack_backend/internals/features/users/profiles/dto"
	"studiotrack_backend/internals/features/users/profiles/model"
	helper "studiotrack_backend/internals/helpers"
)

const msgEmailTaken = "Un utilisateur avec cet email existe déjà"

// CreateUser inserts the auth identity and its profile in one transaction.
// actor is the admin performing the call and gets the activity row.
func CreateUser(db *gorm.DB, actor uuid.UUID, req dto.CreateUserRequest) (*model.Profile, error) {
	req.Normalize()
	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var out model.Profile
	err = db.Transaction(func(tx *gorm.DB) error {
		if taken, err := emailTaken(tx, req.Email, uuid.Nil); err != nil {
			return err
		} else if taken {
			return fiber.NewError(fiber.StatusBadRequest, msgEmailTaken)
		}

		user := authModel.AuthUser{ID: uuid.New(), Email: req.Email, PasswordHash: hash}
		if err := tx.Create(&user).Error; err != nil {
			return mapEmailConflict(err)
		}
		name := req.Name
		out = model.Profile{ID: user.ID, Email: req.Email, Name: &name, Role: req.Role}
		if err := tx.Create(&out).Error; err != nil {
			return mapEmailConflict(err)
		}
		return activityService.Append(tx, actor, constants.ActivityCreateUser, "Création de "+req.Email)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update to the profile and, for email or
// password, to the auth identity in the same transaction.
func UpdateUser(db *gorm.DB, actor uuid.UUID, req dto.UpdateUserRequest) (*model.Profile, error) {
	req.Normalize()
	if req.ID == uuid.Nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID utilisateur requis")
	}
	if req.Empty() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Aucun champ à mettre à jour")
	}
	var hash string
	if req.Password != nil {
		h, err := authHelper.HashPassword(*req.Password)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		hash = h
	}

	var out model.Profile
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "id = ?", req.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Utilisateur introuvable")
			}
			return err
		}

		profileUpdates := map[string]any{}
		authUpdates := map[string]any{}
		if req.Email != nil && !strings.EqualFold(*req.Email, out.Email) {
			if taken, err := emailTaken(tx, *req.Email, req.ID); err != nil {
				return err
			} else if taken {
				return fiber.NewError(fiber.StatusBadRequest, msgEmailTaken)
			}
			profileUpdates["email"] = *req.Email
			authUpdates["email"] = *req.Email
		}
		if req.Name != nil {
			profileUpdates["name"] = *req.Name
		}
		if req.Role != nil {
			profileUpdates["role"] = *req.Role
		}
		if hash != "" {
			authUpdates["password_hash"] = hash
		}

		if len(profileUpdates) > 0 {
			if err := tx.Model(&out).Updates(profileUpdates).Error; err != nil {
				return mapEmailConflict(err)
			}
		}
		if len(authUpdates) > 0 {
			if err := tx.Model(&authModel.AuthUser{}).Where("id = ?", req.ID).Updates(authUpdates).Error; err != nil {
				return mapEmailConflict(err)
			}
		}
		if err := tx.First(&out, "id = ?", req.ID).Error; err != nil {
			return err
		}
		return activityService.Append(tx, actor, constants.ActivityUpdateUser, "Mise à jour de "+out.Email)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes the auth identity; the profile follows by CASCADE.
func DeleteUser(db *gorm.DB, actor, id uuid.UUID) error {
	if actor == id {
		return fiber.NewError(fiber.StatusBadRequest, "Impossible de supprimer votre propre compte")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var p model.Profile
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Utilisateur introuvable")
			}
			return err
		}
		if err := tx.Delete(&authModel.AuthUser{}, "id = ?", id).Error; err != nil {
			return err
		}
		return activityService.Append(tx, actor, constants.ActivityDeleteUser, "Suppression de "+p.Email)
	})
}

func List(db *gorm.DB, role string) ([]model.Profile, error) {
	q := db.Model(&model.Profile{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	rows := make([]model.Profile, 0)
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func Get(db *gorm.DB, id uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func emailTaken(tx *gorm.DB, email string, except uuid.UUID) (bool, error) {
	var n int64
	q := tx.Model(&authModel.AuthUser{}).Where("lower(email) = lower(?)", email)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// a concurrent insert can still win the race past emailTaken
func mapEmailConflict(err error) error {
	if helper.IsUniqueViolation(err) {
		return fiber.NewError(fiber.StatusBadRequest, msgEmailTaken)
	}
	return err
}
