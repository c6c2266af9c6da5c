package seeds

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"studiotrack_backend/internals/configs"
	users "studiotrack_backend/internals/seeds/users"
)

// RunAllSeeds is a no-op unless SEED_USERS_FILE points at a JSON file.
func RunAllSeeds(db *gorm.DB, cfg *configs.Config, log *logrus.Logger) error {
	if cfg.SeedUsersFile == "" {
		return nil
	}

	//* Users
	n, err := users.SeedUsersFromJSON(db, cfg.SeedUsersFile, log)
	if err != nil {
		return err
	}
	log.Infof("🌱 %d user(s) seeded", n)
	return nil
}
