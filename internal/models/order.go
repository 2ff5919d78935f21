package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the fulfilment state of an order. Transitions are governed
// by the orders package; the column itself is a plain string.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// PaymentStatus tracks payment independently of fulfilment.
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusFailed            PaymentStatus = "failed"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
)

// Order is an immutable pricing snapshot taken at checkout. Monetary fields
// are frozen decimals and never re-derived from live catalog rows.
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User        *User     `json:"user,omitempty"`
	OrderNumber string    `gorm:"uniqueIndex;not null" json:"order_number"`

	Status        OrderStatus   `gorm:"index;default:pending" json:"status"`
	PaymentStatus PaymentStatus `gorm:"index;default:pending" json:"payment_status"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"tax_amount"`
	ShippingCost   decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"shipping_cost"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"discount_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`

	ShippingAddress Address `gorm:"type:json" json:"shipping_address"`
	BillingAddress  Address `gorm:"type:json" json:"billing_address"`
	ShippingMethod  string  `json:"shipping_method,omitempty"`
	TrackingNumber  string  `json:"tracking_number,omitempty"`

	PaymentMethod         string `json:"payment_method,omitempty"`
	PaymentID             string `json:"payment_id,omitempty"`
	StripePaymentIntentID string `json:"stripe_payment_intent_id,omitempty"`

	Notes string `json:"notes,omitempty"`

	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"status_history,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is a frozen copy of the purchased line: product name, SKU,
// variant info and prices are captured at order time.
type OrderItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"order_id"`
	ProductID uuid.UUID  `gorm:"type:uuid;index;not null" json:"product_id"`
	VariantID *uuid.UUID `gorm:"type:uuid" json:"variant_id,omitempty"`

	ProductName string `gorm:"not null" json:"product_name"`
	ProductSKU  string `gorm:"not null" json:"product_sku"`
	VariantInfo string `json:"variant_info,omitempty"` // e.g. "M / Navy"

	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`

	IsReturned   bool       `gorm:"default:false" json:"is_returned"`
	ReturnReason string     `json:"return_reason,omitempty"`
	ReturnedAt   *time.Time `json:"returned_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// OrderStatusHistory is an append-only log of accepted status transitions,
// read newest first.
type OrderStatusHistory struct {
	ID      uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID uuid.UUID   `gorm:"type:uuid;index;not null" json:"order_id"`
	Status  OrderStatus `gorm:"not null" json:"status"`
	Notes   string      `json:"notes,omitempty"`

	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
}

func (h *OrderStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
