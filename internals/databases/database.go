package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"studiotrack_backend/internals/configs"
)

// ConnectDB opens the pool and pings it, retrying with exponential backoff
// until cfg.DBConnectMaxWait elapses.
func ConnectDB(ctx context.Context, cfg *configs.Config, log *logrus.Logger) (*gorm.DB, error) {
	log.Println("🔌 Connecting to PostgreSQL...")

	var db *gorm.DB
	op := func() error {
		conn, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // PgBouncer transaction pooling
		}), &gorm.Config{
			Logger: configs.NewGormLogger(log),
		})
		if err != nil {
			return err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return backoff.Permanent(err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}
		db = conn
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = cfg.DBConnectMaxWait
	notify := func(err error, wait time.Duration) {
		log.Warnf("⏳ DB not ready (%v), retrying in %s", err, wait)
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	log.Println("✅ DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB, log *logrus.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
