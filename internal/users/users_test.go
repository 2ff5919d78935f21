package users_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/db"
	"github.com/Nahid000001/EshoTryLasttry/internal/models"
	"github.com/Nahid000001/EshoTryLasttry/internal/users"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "failed to connect test database")
	require.NoError(t, db.Migrate(gdb), "failed to migrate test database")
	return gdb
}

func TestRegister(t *testing.T) {
	gdb := setupTestDB(t)

	t.Run("Registers a user with a hashed password", func(t *testing.T) {
		user, err := users.Register(gdb, users.RegisterInput{
			Email:           "Buyer@Example.com",
			FirstName:       "Test",
			LastName:        "Buyer",
			Password:        "s3cret-pass",
			PasswordConfirm: "s3cret-pass",
		})
		require.NoError(t, err)

		assert.Equal(t, "buyer@example.com", user.Email, "emails are normalised")
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, users.CheckPassword(user, "s3cret-pass"))
		assert.False(t, users.CheckPassword(user, "wrong"))
	})

	t.Run("Rejects mismatched password confirmation", func(t *testing.T) {
		_, err := users.Register(gdb, users.RegisterInput{
			Email:           "mismatch@example.com",
			Password:        "s3cret-pass",
			PasswordConfirm: "different",
		})
		assert.ErrorIs(t, err, users.ErrValidation)
	})

	t.Run("Rejects a short password", func(t *testing.T) {
		_, err := users.Register(gdb, users.RegisterInput{
			Email:           "short@example.com",
			Password:        "tiny",
			PasswordConfirm: "tiny",
		})
		assert.ErrorIs(t, err, users.ErrValidation)
	})

	t.Run("Rejects a duplicate email", func(t *testing.T) {
		_, err := users.Register(gdb, users.RegisterInput{
			Email:           "buyer@example.com",
			Password:        "s3cret-pass",
			PasswordConfirm: "s3cret-pass",
		})
		assert.ErrorIs(t, err, users.ErrValidation)
	})
}

func seedAddress(t *testing.T, gdb *gorm.DB, userID uuid.UUID, isDefault bool) *models.UserAddress {
	t.Helper()

	a := models.UserAddress{
		UserID:       userID,
		FullName:     "Test Buyer",
		AddressLine1: "1 Main St",
		City:         "Dhaka",
		State:        "Dhaka",
		PostalCode:   "1205",
		Country:      "BD",
		IsDefault:    isDefault,
	}
	require.NoError(t, gdb.Create(&a).Error)
	return &a
}

func TestSetDefaultAddress(t *testing.T) {
	gdb := setupTestDB(t)

	user := models.User{Email: "addr@example.com"}
	require.NoError(t, gdb.Create(&user).Error)
	other := models.User{Email: "other@example.com"}
	require.NoError(t, gdb.Create(&other).Error)

	first := seedAddress(t, gdb, user.ID, true)
	second := seedAddress(t, gdb, user.ID, false)
	foreign := seedAddress(t, gdb, other.ID, true)

	t.Run("Setting a new default clears the previous one", func(t *testing.T) {
		require.NoError(t, users.SetDefaultAddress(gdb, user.ID, second.ID))

		var defaults []models.UserAddress
		require.NoError(t, gdb.Where("user_id = ? AND is_default = ?", user.ID, true).Find(&defaults).Error)
		require.Len(t, defaults, 1, "exactly one default per user")
		assert.Equal(t, second.ID, defaults[0].ID)

		var storedFirst models.UserAddress
		require.NoError(t, gdb.First(&storedFirst, "id = ?", first.ID).Error)
		assert.False(t, storedFirst.IsDefault)
	})

	t.Run("Another user's default is untouched", func(t *testing.T) {
		var storedForeign models.UserAddress
		require.NoError(t, gdb.First(&storedForeign, "id = ?", foreign.ID).Error)
		assert.True(t, storedForeign.IsDefault)
	})

	t.Run("Unknown address is rejected without clearing", func(t *testing.T) {
		err := users.SetDefaultAddress(gdb, user.ID, uuid.New())
		assert.ErrorIs(t, err, users.ErrAddressNotFound)

		var defaults int64
		gdb.Model(&models.UserAddress{}).Where("user_id = ? AND is_default = ?", user.ID, true).Count(&defaults)
		assert.Equal(t, int64(1), defaults, "failed update must roll back the clear step")
	})

	t.Run("Cannot claim another user's address", func(t *testing.T) {
		err := users.SetDefaultAddress(gdb, user.ID, foreign.ID)
		assert.ErrorIs(t, err, users.ErrAddressNotFound)
	})
}

func TestSetDefaultAvatar(t *testing.T) {
	gdb := setupTestDB(t)

	user := models.User{Email: "avatar@example.com"}
	require.NoError(t, gdb.Create(&user).Error)

	first := models.UserAvatar{UserID: user.ID, Name: "Casual", IsDefault: true}
	second := models.UserAvatar{UserID: user.ID, Name: "Formal"}
	require.NoError(t, gdb.Create(&first).Error)
	require.NoError(t, gdb.Create(&second).Error)

	require.NoError(t, users.SetDefaultAvatar(gdb, user.ID, second.ID))

	var defaults []models.UserAvatar
	require.NoError(t, gdb.Where("user_id = ? AND is_default = ?", user.ID, true).Find(&defaults).Error)
	require.Len(t, defaults, 1)
	assert.Equal(t, second.ID, defaults[0].ID)
}
