package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Coupon discount types.
const (
	DiscountTypePercentage   = "percentage"
	DiscountTypeFixed        = "fixed"
	DiscountTypeFreeShipping = "free_shipping"
)

type Coupon struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string    `gorm:"uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`

	DiscountType    string           `gorm:"not null" json:"discount_type"`
	DiscountValue   decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"discount_value"`
	MinimumAmount   decimal.Decimal  `gorm:"type:decimal(10,2);default:0" json:"minimum_amount"`
	MaximumDiscount *decimal.Decimal `gorm:"type:decimal(10,2)" json:"maximum_discount,omitempty"`

	UsageLimit     *int `json:"usage_limit,omitempty"`
	UsageCount     int  `gorm:"default:0" json:"usage_count"`
	UserUsageLimit *int `json:"user_usage_limit,omitempty"`

	ValidFrom  time.Time `gorm:"not null" json:"valid_from"`
	ValidUntil time.Time `gorm:"not null" json:"valid_until"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CouponUsage records one redemption. A coupon can be redeemed at most once
// per order.
type CouponUsage struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CouponID       uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_coupon_order;index:idx_coupon_user;not null" json:"coupon_id"`
	UserID         uuid.UUID       `gorm:"type:uuid;index:idx_coupon_user;not null" json:"user_id"`
	OrderID        uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_coupon_order;not null" json:"order_id"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount_amount"`

	CreatedAt time.Time `json:"created_at"`
}

func (cu *CouponUsage) BeforeCreate(tx *gorm.DB) error {
	if cu.ID == uuid.Nil {
		cu.ID = uuid.New()
	}
	return nil
}
