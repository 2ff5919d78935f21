package cart_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/cart"
	"github.com/Nahid000001/EshoTryLasttry/internal/db"
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

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedUser(t *testing.T, gdb *gorm.DB) *models.User {
	t.Helper()
	u := models.User{Email: uuid.NewString() + "@example.com"}
	require.NoError(t, gdb.Create(&u).Error)
	return &u
}

func seedProduct(t *testing.T, gdb *gorm.DB, basePrice string, salePrice *string) *models.Product {
	t.Helper()

	category := models.Category{Name: "Cat " + uuid.NewString(), Slug: "cat-" + uuid.NewString()}
	require.NoError(t, gdb.Create(&category).Error)
	brand := models.Brand{Name: "Brand " + uuid.NewString(), Slug: "brand-" + uuid.NewString()}
	require.NoError(t, gdb.Create(&brand).Error)

	p := models.Product{
		Name:           "Shirt",
		Slug:           "shirt-" + uuid.NewString(),
		SKU:            "SKU-" + uuid.NewString(),
		CategoryID:     category.ID,
		BrandID:        brand.ID,
		BasePrice:      dec(basePrice),
		Status:         models.ProductStatusActive,
		TrackInventory: true,
		StockQuantity:  100,
	}
	if salePrice != nil {
		sp := dec(*salePrice)
		p.SalePrice = &sp
	}
	require.NoError(t, gdb.Create(&p).Error)
	return &p
}

func TestGetOrCreate(t *testing.T) {
	gdb := setupTestDB(t)
	user := seedUser(t, gdb)

	first, err := cart.GetOrCreate(gdb, user.ID)
	require.NoError(t, err)
	second, err := cart.GetOrCreate(gdb, user.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "a user has exactly one cart")
	assert.True(t, cart.IsEmpty(first))
}

func TestAddItem(t *testing.T) {
	gdb := setupTestDB(t)
	user := seedUser(t, gdb)
	product := seedProduct(t, gdb, "25.00", nil)

	userCart, err := cart.GetOrCreate(gdb, user.ID)
	require.NoError(t, err)

	t.Run("Creates a new line", func(t *testing.T) {
		item, err := cart.AddItem(gdb, userCart, product, nil, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("Increments the existing line instead of duplicating", func(t *testing.T) {
		item, err := cart.AddItem(gdb, userCart, product, nil, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity)

		var count int64
		gdb.Model(&models.CartItem{}).Where("cart_id = ?", userCart.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("A variant line is distinct from the bare product line", func(t *testing.T) {
		variant := models.ProductVariant{
			ProductID:       product.ID,
			Size:            "L",
			Color:           "Black",
			SKU:             "VAR-" + uuid.NewString(),
			StockQuantity:   10,
			PriceAdjustment: dec("5.00"),
			IsActive:        true,
		}
		require.NoError(t, gdb.Create(&variant).Error)

		_, err := cart.AddItem(gdb, userCart, product, &variant, 1)
		require.NoError(t, err)

		var count int64
		gdb.Model(&models.CartItem{}).Where("cart_id = ?", userCart.ID).Count(&count)
		assert.Equal(t, int64(2), count)
	})

	t.Run("Rejects a quantity below one", func(t *testing.T) {
		_, err := cart.AddItem(gdb, userCart, product, nil, 0)
		assert.Error(t, err)
	})
}

func TestCartTotals(t *testing.T) {
	gdb := setupTestDB(t)
	user := seedUser(t, gdb)

	sale := "40.00"
	productOnSale := seedProduct(t, gdb, "50.00", &sale) // current 40.00
	plain := seedProduct(t, gdb, "10.00", nil)

	variant := models.ProductVariant{
		ProductID:       plain.ID,
		Size:            "S",
		Color:           "Red",
		SKU:             "VAR-" + uuid.NewString(),
		StockQuantity:   10,
		PriceAdjustment: dec("2.50"), // unit 12.50
		IsActive:        true,
	}
	require.NoError(t, gdb.Create(&variant).Error)

	userCart, err := cart.GetOrCreate(gdb, user.ID)
	require.NoError(t, err)

	_, err = cart.AddItem(gdb, userCart, productOnSale, nil, 2) // 80.00
	require.NoError(t, err)
	_, err = cart.AddItem(gdb, userCart, plain, &variant, 3) // 37.50
	require.NoError(t, err)

	userCart, err = cart.GetOrCreate(gdb, user.ID)
	require.NoError(t, err)

	assert.Equal(t, 5, cart.TotalItems(userCart))
	assert.False(t, cart.IsEmpty(userCart))
	assert.True(t, cart.Subtotal(userCart).Equal(dec("117.50")), "got %s", cart.Subtotal(userCart))

	t.Run("Subtotal follows live price changes", func(t *testing.T) {
		// Dropping the sale price changes the cart subtotal on the next read.
		newSale := dec("30.00")
		require.NoError(t, gdb.Model(&models.Product{}).
			Where("id = ?", productOnSale.ID).Update("sale_price", newSale).Error)

		reloaded, err := cart.GetOrCreate(gdb, user.ID)
		require.NoError(t, err)
		assert.True(t, cart.Subtotal(reloaded).Equal(dec("97.50")), "got %s", cart.Subtotal(reloaded))
	})

	t.Run("Update quantity and remove", func(t *testing.T) {
		require.NoError(t, cart.UpdateQuantity(gdb, userCart, userCart.Items[0].ID, 1))

		reloaded, err := cart.GetOrCreate(gdb, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, cart.TotalItems(reloaded))

		require.NoError(t, cart.Clear(gdb, reloaded))
		reloaded, err = cart.GetOrCreate(gdb, user.ID)
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty(reloaded))
	})

	t.Run("Zero quantity removes the line", func(t *testing.T) {
		fresh := seedProduct(t, gdb, "5.00", nil)
		item, err := cart.AddItem(gdb, userCart, fresh, nil, 2)
		require.NoError(t, err)

		require.NoError(t, cart.UpdateQuantity(gdb, userCart, item.ID, 0))
		err = cart.RemoveItem(gdb, userCart, item.ID)
		assert.ErrorIs(t, err, cart.ErrItemNotFound)
	})
}
