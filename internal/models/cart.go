package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is a user's live shopping cart. One cart per user; it exists until
// checkout converts it into an Order or the user clears it.
type Cart struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CartID    uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_cart_product_variant;not null" json:"cart_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_cart_product_variant;index;not null" json:"product_id"`
	Product   *Product        `json:"product,omitempty"`
	VariantID *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_cart_product_variant" json:"variant_id,omitempty"`
	Variant   *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}
