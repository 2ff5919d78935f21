// Package users handles local account registration and the per-user
// default-flag invariants for addresses and avatars.
package users

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/models"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrAddressNotFound = errors.New("address not found")
	ErrAvatarNotFound  = errors.New("avatar not found")
)

type RegisterInput struct {
	Email           string
	FirstName       string
	LastName        string
	PhoneNumber     string
	Password        string
	PasswordConfirm string
}

// Register creates a local account. Password and confirmation must match
// and the email must be unused.
func Register(db *gorm.DB, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if in.Password != in.PasswordConfirm {
		return nil, fmt.Errorf("%w: passwords do not match", ErrValidation)
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: email %s is already registered", ErrValidation, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckPassword verifies a local account's password.
func CheckPassword(u *models.User, password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetDefaultAddress marks one address as the user's default. The previous
// default is cleared in the same transaction, so exactly one default ever
// exists per user.
func SetDefaultAddress(db *gorm.DB, userID, addressID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.UserAddress{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}

		res := tx.Model(&models.UserAddress{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Update("is_default", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAddressNotFound
		}
		return nil
	})
}

// SetDefaultAvatar is the avatar counterpart of SetDefaultAddress.
func SetDefaultAvatar(db *gorm.DB, userID, avatarID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.UserAvatar{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}

		res := tx.Model(&models.UserAvatar{}).
			Where("id = ? AND user_id = ?", avatarID, userID).
			Update("is_default", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAvatarNotFound
		}
		return nil
	})
}
