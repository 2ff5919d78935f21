package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product statuses.
const (
	ProductStatusDraft        = "draft"
	ProductStatusActive       = "active"
	ProductStatusInactive     = "inactive"
	ProductStatusDiscontinued = "discontinued"
)

type Product struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	Slug             string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description      string    `json:"description,omitempty"`
	ShortDescription string    `json:"short_description,omitempty"`

	CategoryID uuid.UUID `gorm:"type:uuid;index;not null" json:"category_id"`
	Category   *Category `json:"category,omitempty"`
	BrandID    uuid.UUID `gorm:"type:uuid;index;not null" json:"brand_id"`
	Brand      *Brand    `json:"brand,omitempty"`

	SKU    string `gorm:"uniqueIndex;not null" json:"sku"`
	Status string `gorm:"index;default:active" json:"status"`

	BasePrice decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"base_price"`
	SalePrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"sale_price,omitempty"`

	TrackInventory    bool `gorm:"default:true" json:"track_inventory"`
	StockQuantity     int  `gorm:"default:0" json:"stock_quantity"`
	LowStockThreshold int  `gorm:"default:10" json:"low_stock_threshold"`

	IsFeatured    bool `gorm:"default:false" json:"is_featured"`
	ViewCount     int  `gorm:"default:0" json:"view_count"`
	PurchaseCount int  `gorm:"default:0" json:"purchase_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Reviews  []ProductReview  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ProductVariant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_variant_combo;not null" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`

	Size     string `gorm:"uniqueIndex:idx_variant_combo;not null" json:"size"`
	Color    string `gorm:"uniqueIndex:idx_variant_combo;not null" json:"color"`
	ColorHex string `json:"color_hex,omitempty"`

	SKU             string          `gorm:"uniqueIndex;not null" json:"sku"`
	StockQuantity   int             `gorm:"default:0" json:"stock_quantity"`
	PriceAdjustment decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"price_adjustment"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

type ProductReview struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_review_product_user;not null" json:"product_id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_review_product_user;not null" json:"user_id"`
	User      *User     `json:"user,omitempty"`

	Rating  int    `gorm:"not null" json:"rating"` // 1..5
	Title   string `gorm:"not null" json:"title"`
	Content string `json:"content"`

	IsVerifiedPurchase bool `gorm:"default:false" json:"is_verified_purchase"`
	IsApproved         bool `gorm:"default:true" json:"is_approved"`
	HelpfulCount       int  `gorm:"default:0" json:"helpful_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *ProductReview) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Wishlist struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wishlist_user_product;not null" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wishlist_user_product;not null" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (w *Wishlist) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
