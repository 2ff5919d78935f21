package inventory_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/db"
	"github.com/Nahid000001/EshoTryLasttry/internal/inventory"
	"github.com/Nahid000001/EshoTryLasttry/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "failed to connect test database")
	require.NoError(t, db.Migrate(gdb), "failed to migrate test database")
	return gdb
}

func seedProduct(t *testing.T, gdb *gorm.DB, stock int, track bool) *models.Product {
	t.Helper()

	category := models.Category{Name: "Tops " + uuid.NewString(), Slug: "tops-" + uuid.NewString()}
	require.NoError(t, gdb.Create(&category).Error)
	brand := models.Brand{Name: "Acme " + uuid.NewString(), Slug: "acme-" + uuid.NewString()}
	require.NoError(t, gdb.Create(&brand).Error)

	p := models.Product{
		Name:              "Tee",
		Slug:              "tee-" + uuid.NewString(),
		SKU:               "SKU-" + uuid.NewString(),
		CategoryID:        category.ID,
		BrandID:           brand.ID,
		BasePrice:         decimal.NewFromInt(20),
		Status:            models.ProductStatusActive,
		TrackInventory:    track,
		StockQuantity:     stock,
		LowStockThreshold: 5,
	}
	require.NoError(t, gdb.Create(&p).Error)
	return &p
}

func TestStockChecks(t *testing.T) {
	t.Run("Tracked product with stock is in stock", func(t *testing.T) {
		p := &models.Product{TrackInventory: true, StockQuantity: 3, LowStockThreshold: 5}
		assert.True(t, inventory.InStock(p))
		assert.True(t, inventory.LowStock(p))
	})

	t.Run("Tracked product without stock is out of stock", func(t *testing.T) {
		p := &models.Product{TrackInventory: true, StockQuantity: 0}
		assert.False(t, inventory.InStock(p))
	})

	t.Run("Untracked product is always in stock and never low", func(t *testing.T) {
		p := &models.Product{TrackInventory: false, StockQuantity: 0, LowStockThreshold: 10}
		assert.True(t, inventory.InStock(p))
		assert.False(t, inventory.LowStock(p))
	})

	t.Run("Low stock threshold is inclusive", func(t *testing.T) {
		p := &models.Product{TrackInventory: true, StockQuantity: 5, LowStockThreshold: 5}
		assert.True(t, inventory.LowStock(p))

		p.StockQuantity = 6
		assert.False(t, inventory.LowStock(p))
	})

	t.Run("Variant ignores the product tracking flag", func(t *testing.T) {
		v := &models.ProductVariant{StockQuantity: 0}
		assert.False(t, inventory.VariantInStock(v))

		v.StockQuantity = 1
		assert.True(t, inventory.VariantInStock(v))
	})
}

func TestReserveProduct(t *testing.T) {
	gdb := setupTestDB(t)

	t.Run("Decrements stock on success", func(t *testing.T) {
		p := seedProduct(t, gdb, 10, true)
		require.NoError(t, inventory.ReserveProduct(gdb, p, 4))

		var stored models.Product
		require.NoError(t, gdb.First(&stored, "id = ?", p.ID).Error)
		assert.Equal(t, 6, stored.StockQuantity)
	})

	t.Run("Fails when quantity exceeds stock", func(t *testing.T) {
		p := seedProduct(t, gdb, 2, true)
		err := inventory.ReserveProduct(gdb, p, 3)
		assert.True(t, errors.Is(err, inventory.ErrInsufficientStock))

		var stored models.Product
		require.NoError(t, gdb.First(&stored, "id = ?", p.ID).Error)
		assert.Equal(t, 2, stored.StockQuantity, "failed reserve must not change stock")
	})

	t.Run("Untracked product reserves nothing", func(t *testing.T) {
		p := seedProduct(t, gdb, 0, false)
		require.NoError(t, inventory.ReserveProduct(gdb, p, 5))

		var stored models.Product
		require.NoError(t, gdb.First(&stored, "id = ?", p.ID).Error)
		assert.Equal(t, 0, stored.StockQuantity)
	})

	t.Run("Exactly one of two reserves wins the last unit", func(t *testing.T) {
		p := seedProduct(t, gdb, 1, true)

		first := inventory.ReserveProduct(gdb, p, 1)
		second := inventory.ReserveProduct(gdb, p, 1)

		assert.NoError(t, first)
		assert.True(t, errors.Is(second, inventory.ErrInsufficientStock))

		var stored models.Product
		require.NoError(t, gdb.First(&stored, "id = ?", p.ID).Error)
		assert.Equal(t, 0, stored.StockQuantity, "stock must never go negative")
	})

	t.Run("Release restores stock", func(t *testing.T) {
		p := seedProduct(t, gdb, 1, true)
		require.NoError(t, inventory.ReserveProduct(gdb, p, 1))
		require.NoError(t, inventory.ReleaseProduct(gdb, p.ID, 1))

		var stored models.Product
		require.NoError(t, gdb.First(&stored, "id = ?", p.ID).Error)
		assert.Equal(t, 1, stored.StockQuantity)
	})
}

func TestReserveVariant(t *testing.T) {
	gdb := setupTestDB(t)
	p := seedProduct(t, gdb, 0, false)

	variant := models.ProductVariant{
		ProductID:     p.ID,
		Size:          "M",
		Color:         "Navy",
		SKU:           "VAR-" + uuid.NewString(),
		StockQuantity: 1,
		IsActive:      true,
	}
	require.NoError(t, gdb.Create(&variant).Error)

	t.Run("Variant reserve is independent of the product flag", func(t *testing.T) {
		first := inventory.ReserveVariant(gdb, &variant, 1)
		second := inventory.ReserveVariant(gdb, &variant, 1)

		assert.NoError(t, first)
		assert.True(t, errors.Is(second, inventory.ErrInsufficientStock))
	})

	t.Run("Release restores variant stock", func(t *testing.T) {
		require.NoError(t, inventory.ReleaseVariant(gdb, variant.ID, 1))

		var stored models.ProductVariant
		require.NoError(t, gdb.First(&stored, "id = ?", variant.ID).Error)
		assert.Equal(t, 1, stored.StockQuantity)
	})
}
