package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studiotrack_backend/internals/constants"
	"studiotrack_backend/internals/features/users/auth/controller"
	"studiotrack_backend/internals/features/users/auth/service"
	profileController "studiotrack_backend/internals/features/users/profiles/controller"
	rateLimiter "studiotrack_backend/internals/middlewares"
	authMiddleware "studiotrack_backend/internals/middlewares/auth"
)

// AuthPublicRoutes: /api/auth endpoints reachable without a session.
func AuthPublicRoutes(app fiber.Router, svc *service.AuthService, cookieSecure bool) {
	ctl := controller.NewAuthController(svc, cookieSecure)

	g := app.Group("/api/auth")
	g.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	g.Post("/forgot-password", rateLimiter.ForgotPasswordRateLimiter(), ctl.ForgotPassword)
	g.Post("/reset-password", rateLimiter.ForgotPasswordRateLimiter(), ctl.ResetPassword)
}

// AuthPrivateRoutes mounts on the authenticated /api group.
func AuthPrivateRoutes(api fiber.Router, db *gorm.DB, svc *service.AuthService, cookieSecure bool) {
	ctl := controller.NewAuthController(svc, cookieSecure)
	users := profileController.NewProfileController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("la gestion des comptes"), constants.AdminOnly...)

	g := api.Group("/auth")
	g.Post("/logout", ctl.Logout)
	g.Get("/me", ctl.Me)
	g.Put("/profile", ctl.UpdateProfile)
	g.Put("/password", ctl.ChangePassword)

	g.Post("/register", adminOnly, users.Create)
	g.Put("/update-user", adminOnly, users.UpdateUser)
}
