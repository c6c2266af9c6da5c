package repository

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "studiotrack_backend/internals/features/users/auth/model"
	profileModel "studiotrack_backend/internals/features/users/profiles/model"
)

/* ====================== USER ====================== */

func FindUserByEmail(db *gorm.DB, email string) (*authModel.AuthUser, error) {
	var user authModel.AuthUser
	if err := db.Where("lower(email) = lower(?)", strings.TrimSpace(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, id any) (*authModel.AuthUser, error) {
	var user authModel.AuthUser
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindProfileByID(db *gorm.DB, id any) (*profileModel.Profile, error) {
	var p profileModel.Profile
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// CurrentRole is the role stored on the profile; found is false once the
// user has been deleted.
func CurrentRole(db *gorm.DB, id any) (role string, found bool, err error) {
	var rows []string
	if err := db.Model(&profileModel.Profile{}).Where("id = ?", id).Limit(1).Pluck("role", &rows).Error; err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0], true, nil
}

// SubjectLoader adapts CurrentRole to the auth middleware hook.
func SubjectLoader(db *gorm.DB, timeout time.Duration) func(string) (string, bool, error) {
	return func(userID string) (string, bool, error) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return CurrentRole(db.WithContext(ctx), userID)
	}
}

func UpdateUserPassword(db *gorm.DB, id any, hash string) error {
	return db.Model(&authModel.AuthUser{}).Where("id = ?", id).Update("password_hash", hash).Error
}

/* ====================== REVOKED TOKENS ====================== */

func tokenDigest(rawToken, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(rawToken))
	return hex.EncodeToString(m.Sum(nil))
}

// RevokeToken is idempotent on the digest. userID may be uuid.Nil.
func RevokeToken(db *gorm.DB, userID uuid.UUID, rawToken, secret string, expiresAt time.Time) error {
	row := authModel.RevokedToken{
		Digest:    tokenDigest(rawToken, secret),
		ExpiresAt: expiresAt.UTC(),
	}
	if userID != uuid.Nil {
		row.UserID = &userID
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

func IsRevoked(db *gorm.DB, rawToken, secret string) (bool, error) {
	var n int64
	err := db.Model(&authModel.RevokedToken{}).
		Where("digest = ?", tokenDigest(rawToken, secret)).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

// RevocationChecker adapts IsRevoked to the auth middleware hook.
func RevocationChecker(db *gorm.DB, secret string, timeout time.Duration) func(string) (bool, error) {
	return func(raw string) (bool, error) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return IsRevoked(db.WithContext(ctx), raw, secret)
	}
}

// PurgeRevokedTokens drops rows whose token expired more than keep ago.
func PurgeRevokedTokens(db *gorm.DB, keep time.Duration) (int64, error) {
	res := db.Where("expires_at < ?", time.Now().UTC().Add(-keep)).Delete(&authModel.RevokedToken{})
	return res.RowsAffected, res.Error
}

/* ====================== PASSWORD RESET ====================== */

func CreatePasswordReset(db *gorm.DB, row *authModel.PasswordReset) error {
	return db.Create(row).Error
}

// FindActivePasswordReset locks the row so a token is consumed once.
func FindActivePasswordReset(tx *gorm.DB, tokenHash string) (*authModel.PasswordReset, error) {
	var row authModel.PasswordReset
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token_hash = ? AND used_at IS NULL AND expires_at > ?", tokenHash, time.Now().UTC()).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func MarkPasswordResetUsed(tx *gorm.DB, id uint) error {
	return tx.Model(&authModel.PasswordReset{}).Where("id = ?", id).Update("used_at", time.Now().UTC()).Error
}

// CleanupPasswordResets drops used or expired reset tokens.
func CleanupPasswordResets(db *gorm.DB) (int64, error) {
	res := db.Where("used_at IS NOT NULL OR expires_at < ?", time.Now().UTC()).Delete(&authModel.PasswordReset{})
	return res.RowsAffected, res.Error
}
