package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"studiotrack_backend/internals/features/users/auth/dto"
	"studiotrack_backend/internals/features/users/auth/service"
	authRepo "studiotrack_backend/internals/features/users/auth/repository"
	helper "studiotrack_backend/internals/helpers"
	"studiotrack_backend/internals/logger"
)

type AuthController struct {
	Svc          *service.AuthService
	CookieSecure bool
}

func NewAuthController(svc *service.AuthService, cookieSecure bool) *AuthController {
	return &AuthController{Svc: svc, CookieSecure: cookieSecure}
}

func (ac *AuthController) setAccessCookie(c *fiber.Ctx, token string, exp time.Time) {
	sameSite := fiber.CookieSameSiteNoneMode
	if !ac.CookieSecure {
		// browsers drop SameSite=None without Secure
		sameSite = fiber.CookieSameSiteLaxMode
	}
	c.Cookie(&fiber.Cookie{
		Name:     helper.AccessTokenName,
		Value:    token,
		HTTPOnly: true,
		Secure:   ac.CookieSecure,
		SameSite: sameSite,
		Path:     "/",
		Expires:  exp,
	})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	profile, token, exp, err := ac.Svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logger.LogAction(c, "login_failed", logrus.Fields{"email": req.Email})
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}
		return helper.FromFiberError(c, err)
	}

	ac.setAccessCookie(c, token, exp)
	logger.LogAction(c, "login", logrus.Fields{"user_id": profile.ID.String()})
	return helper.JsonOK(c, dto.LoginResponse{User: *profile, AccessToken: token, ExpiresAt: exp})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	uid, _ := helper.GetUserIDFromToken(c)
	if err := ac.Svc.Logout(c.UserContext(), uid, helper.GetRawAccessToken(c)); err != nil {
		return helper.StorageError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     helper.AccessTokenName,
		Value:    "",
		HTTPOnly: true,
		Secure:   ac.CookieSecure,
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
	logger.LogAction(c, "logout", nil)
	return helper.JsonDeleted(c)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := authRepo.FindProfileByID(ac.Svc.DB.WithContext(c.UserContext()), uid)
	if err != nil {
		return helper.StorageError(c, err, "Profil introuvable")
	}
	return helper.JsonOK(c, p)
}

// PUT /api/auth/profile
func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateOwnProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	p, err := ac.Svc.UpdateOwnName(c.UserContext(), uid, req.Name)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	logger.LogAction(c, "update_profile", nil)
	return helper.JsonUpdated(c, p)
}

// PUT /api/auth/password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := ac.Svc.ChangePassword(c.UserContext(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		return helper.FromFiberError(c, err)
	}
	logger.LogAction(c, "update_password", nil)
	return helper.JsonOK(c, fiber.Map{"success": true})
}

// POST /api/auth/forgot-password
func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := ac.Svc.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return helper.FromFiberError(c, err)
	}
	logger.LogAction(c, "forgot_password", logrus.Fields{"email": req.Email})
	return helper.JsonOK(c, fiber.Map{"success": true})
}

// POST /api/auth/reset-password
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := ac.Svc.ResetPassword(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return helper.FromFiberError(c, err)
	}
	logger.LogAction(c, "reset_password", nil)
	return helper.JsonOK(c, fiber.Map{"success": true})
}

