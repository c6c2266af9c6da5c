package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	authRepo "studiotrack_backend/internals/features/users/auth/repository"
)

// RunCleanup purges revoked tokens older than ttlDays past expiry and
// spent password resets.
func RunCleanup(db *gorm.DB, ttlDays int, log *logrus.Logger) {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	log.Info("[CLEANUP] revoked_tokens + password_resets")

	if n, err := authRepo.PurgeRevokedTokens(db, time.Duration(ttlDays)*24*time.Hour); err != nil {
		log.WithError(err).Error("[CLEANUP] revoked_tokens failed")
	} else {
		log.Infof("[CLEANUP] %d expired token(s) removed", n)
	}
	if n, err := authRepo.CleanupPasswordResets(db); err != nil {
		log.WithError(err).Error("[CLEANUP] password_resets failed")
	} else {
		log.Infof("[CLEANUP] %d password reset(s) removed", n)
	}
}

// StartCleanupScheduler runs RunCleanup on spec (cron syntax or
// descriptors like @daily) in UTC. Stop the returned cron on shutdown.
func StartCleanupScheduler(db *gorm.DB, spec string, ttlDays int, log *logrus.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(spec, func() { RunCleanup(db, ttlDays, log) }); err != nil {
		return nil, err
	}
	c.Start()
	log.Infof("⏱ cleanup scheduled (%s)", spec)
	return c, nil
}
