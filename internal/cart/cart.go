// Package cart aggregates cart contents and prices them live: unit prices
// always come from the current catalog rows, never from a stored copy.
package cart

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/models"
	"github.com/Nahid000001/EshoTryLasttry/internal/pricing"
)

var ErrItemNotFound = errors.New("cart item not found")

// GetOrCreate returns the user's cart, creating it on first use. Carts are
// 1:1 with users.
func GetOrCreate(db *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var c models.Cart
	err := db.Preload("Items.Product").Preload("Items.Variant").
		Where("user_id = ?", userID).First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c = models.Cart{UserID: userID}
	if err := db.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UnitPrice resolves the live price of a cart line: the variant's final
// price when a variant is chosen, else the product's current price. Product
// and Variant must be loaded.
func UnitPrice(item *models.CartItem) decimal.Decimal {
	if item.Variant != nil {
		return pricing.VariantFinalPrice(item.Product, item.Variant)
	}
	return pricing.CurrentPrice(item.Product)
}

// LineTotal is the line's unit price times its quantity.
func LineTotal(item *models.CartItem) decimal.Decimal {
	return UnitPrice(item).Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
}

// TotalItems is the sum of quantities across all lines.
func TotalItems(c *models.Cart) int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums every line total at live prices.
func Subtotal(c *models.Cart) decimal.Decimal {
	subtotal := decimal.Zero
	for i := range c.Items {
		subtotal = subtotal.Add(LineTotal(&c.Items[i]))
	}
	return subtotal.Round(2)
}

func IsEmpty(c *models.Cart) bool {
	return len(c.Items) == 0
}

// AddItem adds quantity of a (product, variant) pair to the cart. If the
// pair is already present the existing line's quantity is incremented
// instead of creating a duplicate row.
func AddItem(db *gorm.DB, c *models.Cart, product *models.Product, variant *models.ProductVariant, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}
	if variant != nil && variant.ProductID != product.ID {
		return nil, fmt.Errorf("variant %s does not belong to product %s", variant.SKU, product.SKU)
	}

	query := db.Where("cart_id = ? AND product_id = ?", c.ID, product.ID)
	if variant != nil {
		query = query.Where("variant_id = ?", variant.ID)
	} else {
		query = query.Where("variant_id IS NULL")
	}

	var item models.CartItem
	err := query.First(&item).Error
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := db.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			CartID:    c.ID,
			ProductID: product.ID,
			Quantity:  quantity,
		}
		if variant != nil {
			item.VariantID = &variant.ID
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	item.Product = product
	item.Variant = variant
	return &item, nil
}

// UpdateQuantity sets a line's quantity. A quantity of zero removes the line.
func UpdateQuantity(db *gorm.DB, c *models.Cart, itemID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must not be negative, got %d", quantity)
	}
	if quantity == 0 {
		return RemoveItem(db, c, itemID)
	}

	res := db.Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, c.ID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// RemoveItem deletes a single line from the cart.
func RemoveItem(db *gorm.DB, c *models.Cart, itemID uuid.UUID) error {
	res := db.Where("id = ? AND cart_id = ?", itemID, c.ID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Clear removes every line from the cart.
func Clear(db *gorm.DB, c *models.Cart) error {
	return db.Where("cart_id = ?", c.ID).Delete(&models.CartItem{}).Error
}
