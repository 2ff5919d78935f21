// Package catalog holds the small write paths of the product catalog:
// reviews and wishlists.
package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/models"
)

var (
	ErrDuplicateReview = errors.New("review already exists")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

type ReviewInput struct {
	Rating  int
	Title   string
	Content string
}

// CreateReview records one review per user per product. The uniqueness
// check and the verified-purchase lookup run inside one transaction.
func CreateReview(db *gorm.DB, userID, productID uuid.UUID, in ReviewInput) (*models.ProductReview, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var review *models.ProductReview
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ProductReview{}).
			Where("product_id = ? AND user_id = ?", productID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: product %s already reviewed by this user", ErrDuplicateReview, productID)
		}

		// A purchase of the product in any non-cancelled order marks the
		// review as verified.
		var purchases int64
		if err := tx.Model(&models.OrderItem{}).
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("order_items.product_id = ? AND orders.user_id = ? AND orders.status <> ?",
				productID, userID, models.OrderStatusCancelled).
			Count(&purchases).Error; err != nil {
			return err
		}

		review = &models.ProductReview{
			ProductID:          productID,
			UserID:             userID,
			Rating:             in.Rating,
			Title:              in.Title,
			Content:            in.Content,
			IsVerifiedPurchase: purchases > 0,
		}
		return tx.Create(review).Error
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// AddToWishlist is idempotent: adding a product twice keeps a single row.
func AddToWishlist(db *gorm.DB, userID, productID uuid.UUID) (*models.Wishlist, error) {
	var entry models.Wishlist
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&entry).Error
	if err == nil {
		return &entry, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entry = models.Wishlist{UserID: userID, ProductID: productID}
	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemoveFromWishlist deletes the entry if present.
func RemoveFromWishlist(db *gorm.DB, userID, productID uuid.UUID) error {
	return db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Wishlist{}).Error
}
