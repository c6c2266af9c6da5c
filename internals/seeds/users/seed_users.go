package users

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	profileDTO "studiotrack_backend/internals/features/users/profiles/dto"
	profileModel "studiotrack_backend/internals/features/users/profiles/model"
	profileService "studiotrack_backend/internals/features/users/profiles/service"
	helper "studiotrack_backend/internals/helpers"
)

type UserSeed struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// SeedUsersFromJSON creates the accounts listed in filePath. Emails that
// already exist are skipped, so the seeder can run on every boot.
func SeedUsersFromJSON(db *gorm.DB, filePath string, log *logrus.Logger) (int, error) {
	log.Infof("📥 Reading user seed file %s", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return 0, fmt.Errorf("decode seed file: %w", err)
	}

	created := 0
	for _, data := range inputs {
		req := profileDTO.CreateUserRequest{
			Email:    data.Email,
			Password: data.Password,
			Name:     data.Name,
			Role:     data.Role,
		}
		req.Normalize()
		if err := helper.ValidateStruct(&req); err != nil {
			return created, fmt.Errorf("seed %q: %w", data.Email, err)
		}

		var n int64
		if err := db.Model(&profileModel.Profile{}).Where("lower(email) = ?", strings.ToLower(req.Email)).Count(&n).Error; err != nil {
			return created, err
		}
		if n > 0 {
			log.Infof("ℹ️ User %s already exists, skipped", req.Email)
			continue
		}

		if _, err := profileService.CreateUser(db, uuid.Nil, req); err != nil {
			return created, fmt.Errorf("seed %q: %w", req.Email, err)
		}
		created++
		log.Infof("✅ Seeded user %s (%s)", req.Email, req.Role)
	}
	return created, nil
}
