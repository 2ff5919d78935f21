// Package inventory decides stock availability and performs the atomic stock
// movements that back concurrent checkouts.
package inventory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/models"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// InStock reports product availability. Products that do not track inventory
// are always in stock.
func InStock(p *models.Product) bool {
	if !p.TrackInventory {
		return true
	}
	return p.StockQuantity > 0
}

// LowStock reports whether the product is at or below its low-stock
// threshold. Untracked products are never low.
func LowStock(p *models.Product) bool {
	if !p.TrackInventory {
		return false
	}
	return p.StockQuantity <= p.LowStockThreshold
}

// VariantInStock reports variant availability. Variants are always
// inventory-tracked, regardless of the parent product's flag.
func VariantInStock(v *models.ProductVariant) bool {
	return v.StockQuantity > 0
}

// ReserveProduct atomically decrements product stock by quantity inside the
// caller's transaction. The decrement is conditional on sufficient stock, so
// two concurrent checkouts of the last unit cannot both succeed. Untracked
// products reserve nothing and always succeed.
func ReserveProduct(tx *gorm.DB, p *models.Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("reserve quantity must be positive, got %d", quantity)
	}
	if !p.TrackInventory {
		return nil
	}

	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", p.ID, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s", ErrInsufficientStock, p.SKU)
	}
	return nil
}

// ReserveVariant is ReserveProduct at variant granularity.
func ReserveVariant(tx *gorm.DB, v *models.ProductVariant, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("reserve quantity must be positive, got %d", quantity)
	}

	res := tx.Model(&models.ProductVariant{}).
		Where("id = ? AND stock_quantity >= ?", v.ID, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: variant %s", ErrInsufficientStock, v.SKU)
	}
	return nil
}

// ReleaseProduct returns previously reserved stock, used when a cancelled
// order restocks its items.
func ReleaseProduct(tx *gorm.DB, productID uuid.UUID, quantity int) error {
	return tx.Model(&models.Product{}).
		Where("id = ? AND track_inventory = ?", productID, true).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).Error
}

// ReleaseVariant returns previously reserved variant stock.
func ReleaseVariant(tx *gorm.DB, variantID uuid.UUID, quantity int) error {
	return tx.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).Error
}
