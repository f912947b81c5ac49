// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "africrea_backend/internals/features/users/auth/model"
	userModel "africrea_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func EmailTaken(db *gorm.DB, email string) (bool, error) {
	var exists bool
	err := db.Raw(`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER(?))`, email).Scan(&exists).Error
	return exists, errors.Wrap(err, "check email")
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return errors.Wrap(db.Create(user).Error, "create user")
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, hash string) error {
	err := db.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"password": hash, "updated_at": time.Now().UTC()}).Error
	return errors.Wrap(err, "update password")
}

/* ====================== BLACKLIST TOKEN ====================== */

func BlacklistToken(db *gorm.DB, token string, expiresAt time.Time) error {
	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: expiresAt.UTC(),
	}).Error
	return errors.Wrap(err, "blacklist token")
}

// CleanupExpiredBlacklist removes up to limit rows that expired before the cutoff.
func CleanupExpiredBlacklist(db *gorm.DB, before time.Time, limit int) (int64, error) {
	res := db.Unscoped().
		Where("id IN (?)", db.Model(&authModel.TokenBlacklist{}).
			Select("id").
			Where("expired_at < ?", before).
			Limit(limit)).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, errors.Wrap(res.Error, "cleanup blacklist")
}

/* ====================== SESSION CHECK ====================== */

// SessionRepository answers the per-request checks of the auth middleware.
type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := r.DB.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM token_blacklist WHERE token = ? AND deleted_at IS NULL)`, token).
		Scan(&exists).Error
	return exists, errors.Wrap(err, "check blacklist")
}

// UserIsActive returns gorm.ErrRecordNotFound (wrapped) for unknown users.
func (r *SessionRepository) UserIsActive(ctx context.Context, userID uuid.UUID) (bool, error) {
	var row struct {
		IsActive bool
	}
	err := r.DB.WithContext(ctx).Table("users").Select("is_active").Where("id = ?", userID).First(&row).Error
	if err != nil {
		return false, errors.Wrap(err, "load user")
	}
	return row.IsActive, nil
}
