package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"studiotrack_backend/internals/configs"
	database "studiotrack_backend/internals/databases"
	scheduler "studiotrack_backend/internals/features/users/auth/scheduler"
	"studiotrack_backend/internals/features/workflow"
	helper "studiotrack_backend/internals/helpers"
	"studiotrack_backend/internals/helpers/mailer"
	helperOSS "studiotrack_backend/internals/helpers/oss"
	"studiotrack_backend/internals/logger"
	middlewares "studiotrack_backend/internals/middlewares"
	routes "studiotrack_backend/internals/route"
	"studiotrack_backend/internals/seeds"
)

func main() {
	cfg, err := configs.LoadEnv()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}
	if err := logger.Init(logger.Options{Dir: cfg.LogDir, Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		log.Fatalf("❌ logger: %v", err)
	}
	appLog := logger.App()

	catalog, err := workflow.NewCatalog(cfg.AppVariant())
	if err != nil {
		appLog.Fatalf("❌ catalog: %v", err)
	}
	appLog.Infof("🎬 Serving variant %s", catalog.Variant())

	// 🔌 DB connect + pool + migrations
	ctx, cancelBoot := context.WithTimeout(context.Background(), cfg.DBConnectMaxWait+10*time.Second)
	db, err := database.ConnectDB(ctx, cfg, appLog)
	if err != nil {
		appLog.Fatalf("❌ %v", err)
	}
	database.TunePool(db, appLog)
	if err := database.Migrate(ctx, db); err != nil {
		appLog.Fatalf("❌ migrate: %v", err)
	}
	cancelBoot()

	if err := seeds.RunAllSeeds(db, cfg, appLog); err != nil {
		appLog.Fatalf("❌ seed: %v", err)
	}

	store, err := helperOSS.NewStoreFromConfig(cfg, appLog)
	if err != nil {
		appLog.Fatalf("❌ thumbnail store: %v", err)
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.ErrorHandler,
		BodyLimit:             int(helperOSS.MaxUploadSize) + 1024*1024,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	metrics := middlewares.NewMetrics()
	middlewares.SetupMiddlewares(app, cfg, metrics, appLog)

	// local thumbnails; harmless when OSS is configured
	app.Static(cfg.UploadPublicPath, cfg.UploadDir, fiber.Static{MaxAge: 86400})

	routes.SetupRoutes(app, routes.Deps{
		DB:      db,
		Config:  cfg,
		Catalog: catalog,
		Store:   store,
		Mailer:  mailer.New(cfg, appLog),
		Metrics: metrics,
		Log:     appLog,
	})

	// ⏱ scheduler after the DB is ready
	cleanup, err := scheduler.StartCleanupScheduler(db, cfg.CleanupSchedule, cfg.RevokedTTLDays, appLog)
	if err != nil {
		appLog.Fatalf("❌ scheduler: %v", err)
	}

	go func() {
		appLog.Infof("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			appLog.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + close the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("🛑 Shutting down...")

	<-cleanup.Stop().Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(shutdownCtx)
	database.Close(db)
}
