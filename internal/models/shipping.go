package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShippingRate is a configured rate tier. Rates are naturally ordered by
// ascending base rate; the applicability window is [MinOrderAmount,
// MaxOrderAmount] with a nil max meaning unbounded.
type ShippingRate struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`

	BaseRate  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_rate"`
	RatePerKg decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"rate_per_kg"`

	MinOrderAmount        decimal.Decimal  `gorm:"type:decimal(10,2);default:0" json:"min_order_amount"`
	MaxOrderAmount        *decimal.Decimal `gorm:"type:decimal(10,2)" json:"max_order_amount,omitempty"`
	FreeShippingThreshold *decimal.Decimal `gorm:"type:decimal(10,2)" json:"free_shipping_threshold,omitempty"`

	MinDeliveryDays int  `json:"min_delivery_days"`
	MaxDeliveryDays int  `json:"max_delivery_days"`
	IsActive        bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *ShippingRate) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
