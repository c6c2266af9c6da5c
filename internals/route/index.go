package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"studiotrack_backend/internals/configs"
	casinoRoute "studiotrack_backend/internals/features/reports/casino/route"
	activityRoute "studiotrack_backend/internals/features/users/activity/route"
	authRepo "studiotrack_backend/internals/features/users/auth/repository"
	authRoute "studiotrack_backend/internals/features/users/auth/route"
	authService "studiotrack_backend/internals/features/users/auth/service"
	profileRoute "studiotrack_backend/internals/features/users/profiles/route"
	categoryRoute "studiotrack_backend/internals/features/videos/categories/route"
	commentRoute "studiotrack_backend/internals/features/videos/comments/route"
	detailRoute "studiotrack_backend/internals/features/videos/details/route"
	insightRoute "studiotrack_backend/internals/features/videos/insights/route"
	insightService "studiotrack_backend/internals/features/videos/insights/service"
	videoRoute "studiotrack_backend/internals/features/videos/videos/route"
	videoService "studiotrack_backend/internals/features/videos/videos/service"
	"studiotrack_backend/internals/features/workflow"
	"studiotrack_backend/internals/helpers/mailer"
	helperOSS "studiotrack_backend/internals/helpers/oss"
	"studiotrack_backend/internals/middlewares"
	authMiddleware "studiotrack_backend/internals/middlewares/auth"
)

var startTime time.Time

// Deps is everything the handlers are built from. Nothing below reaches
// for a package-level handle.
type Deps struct {
	DB      *gorm.DB
	Config  *configs.Config
	Catalog *workflow.Catalog
	Store   helperOSS.ThumbnailStore
	Mailer  mailer.Mailer
	Metrics *middlewares.Metrics
	Log     *logrus.Logger
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	cfg := d.Config

	BaseRoutes(app, d.DB, d.Metrics)

	auth := &authService.AuthService{
		DB:         d.DB,
		Tokens:     authService.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL),
		Mailer:     d.Mailer,
		Log:        d.Log,
		AppBaseURL: cfg.AppBaseURL,
		ResetTTL:   cfg.PasswordResetTTL,
	}

	// ===================== PUBLIC =====================
	d.Log.Info("Setting up public auth routes...")
	authRoute.AuthPublicRoutes(app, auth, cfg.CookieSecure)

	// ===================== PRIVATE =====================
	d.Log.Info("Setting up PRIVATE /api group...")
	api := app.Group("/api",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              cfg.JWTSecret,
			RevocationChecker:   authRepo.RevocationChecker(d.DB, cfg.JWTSecret, 2*time.Second),
			SubjectLoader:       authRepo.SubjectLoader(d.DB, 2*time.Second),
			AllowCookieFallback: true,
		}),
	)

	videos := videoService.NewVideoService(d.DB, d.Catalog)

	d.Log.Info("Mounting user routes...")
	authRoute.AuthPrivateRoutes(api, d.DB, auth, cfg.CookieSecure)
	profileRoute.ProfileRoutes(api, d.DB)
	activityRoute.UserActivityRoutes(api, d.DB)

	d.Log.Infof("Mounting video routes (variant %s)...", d.Catalog.Variant())
	categoryRoute.VideoCategoryRoutes(api, d.DB, workflow.AllocatorFor(d.Catalog.Variant()))
	videoRoute.CategoryVideoRoutes(api, videos)
	commentRoute.VideoCommentRoutes(api, d.DB)
	detailRoute.VideoDetailRoutes(api, d.DB, videos, d.Store, d.Log)
	insightRoute.InsightRoutes(api, insightService.NewInsightService(d.DB, d.Catalog))

	d.Log.Info("Mounting report routes...")
	casinoRoute.CasinoReportRoutes(api, d.DB)
}
