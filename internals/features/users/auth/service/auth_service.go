package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"studiotrack_backend/internals/constants"
	activityService "studiotrack_backend/internals/features/users/activity/service"
	authHelper "studiotrack_backend/internals/features/users/auth/helper"
	authModel "studiotrack_backend/internals/features/users/auth/model"
	authRepo "studiotrack_backend/internals/features/users/auth/repository"
	profileModel "studiotrack_backend/internals/features/users/profiles/model"
	"studiotrack_backend/internals/helpers/mailer"
)

var (
	ErrInvalidCredentials = errors.New("Email ou mot de passe incorrect")
	ErrInvalidResetToken  = errors.New("Lien de réinitialisation invalide ou expiré")
)

type AuthService struct {
	DB         *gorm.DB
	Tokens     *TokenService
	Mailer     mailer.Mailer
	Log        *logrus.Logger
	AppBaseURL string
	ResetTTL   time.Duration
}

/* ==========================
   LOGIN / LOGOUT
========================== */

// Login checks the credentials and returns the caller's profile with a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*profileModel.Profile, string, time.Time, error) {
	db := s.DB.WithContext(ctx)
	user, err := authRepo.FindUserByEmail(db, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if err := authHelper.CheckPasswordHash(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	profile, err := authRepo.FindProfileByID(db, user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// identity without profile: plain user until an admin fixes it
		profile = &profileModel.Profile{ID: user.ID, Email: user.Email, Role: constants.RoleUser}
	} else if err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.Tokens.Issue(*profile)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := activityService.Append(db, user.ID, constants.ActivityLogin, ""); err != nil {
		s.Log.WithError(err).Warn("login activity not recorded")
	}
	return profile, token, exp, nil
}

// Logout revokes the raw token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	db := s.DB.WithContext(ctx)
	if err := authRepo.RevokeToken(db, userID, rawToken, s.Tokens.Secret, s.Tokens.ExpiryOf(rawToken)); err != nil {
		return err
	}
	if userID != uuid.Nil {
		if err := activityService.Append(db, userID, constants.ActivityLogout, ""); err != nil {
			s.Log.WithError(err).Warn("logout activity not recorded")
		}
	}
	return nil
}

/* ==========================
   SELF SERVICE
========================== */

// UpdateOwnName renames the caller and records update_profile in one transaction.
func (s *AuthService) UpdateOwnName(ctx context.Context, userID uuid.UUID, name string) (*profileModel.Profile, error) {
	name = strings.TrimSpace(name)
	var out profileModel.Profile
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&profileModel.Profile{}).Where("id = ?", userID).Update("name", name)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Profil introuvable")
		}
		if err := tx.First(&out, "id = ?", userID).Error; err != nil {
			return err
		}
		return activityService.Append(tx, userID, constants.ActivityUpdateProfile, "Nom mis à jour")
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword verifies current before storing next, with update_password activity.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	hash, err := authHelper.HashPassword(next)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := authRepo.FindUserByID(tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Utilisateur introuvable")
			}
			return err
		}
		if err := authHelper.CheckPasswordHash(user.PasswordHash, current); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Mot de passe actuel incorrect")
		}
		if err := authRepo.UpdateUserPassword(tx, userID, hash); err != nil {
			return err
		}
		return activityService.Append(tx, userID, constants.ActivityUpdatePassword, "Mot de passe modifié")
	})
}

/* ==========================
   FORGOT / RESET PASSWORD
========================== */

// RequestPasswordReset mails a single-use link. Unknown emails are not an error
// so the endpoint never reveals which accounts exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	db := s.DB.WithContext(ctx)
	user, err := authRepo.FindUserByEmail(db, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	raw, hash, err := authHelper.NewResetToken()
	if err != nil {
		return err
	}
	ttl := s.ResetTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := authRepo.CreatePasswordReset(db, &authModel.PasswordReset{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.AppBaseURL, "/"), url.QueryEscape(raw))
	if err := s.Mailer.Send(ctx, mailer.PasswordResetMessage(user.Email, link, ttl)); err != nil {
		// Same answer as for an unknown email; the failure only goes to the log.
		s.Log.WithError(err).WithField("user_id", user.ID).Warn("password reset mail failed")
	}
	return nil
}

// ResetPassword consumes the token and stores the new hash in one transaction.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, next string) error {
	hash, err := authHelper.HashPassword(next)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reset, err := authRepo.FindActivePasswordReset(tx, authHelper.HashResetToken(strings.TrimSpace(rawToken)))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, ErrInvalidResetToken.Error())
			}
			return err
		}
		if err := authRepo.UpdateUserPassword(tx, reset.UserID, hash); err != nil {
			return err
		}
		if err := authRepo.MarkPasswordResetUsed(tx, reset.ID); err != nil {
			return err
		}
		return activityService.Append(tx, reset.UserID, constants.ActivityResetPassword, "")
	})
}
