// Package pricing computes product, variant and coupon prices. All money is
// fixed-point decimal rounded half-up to 2 places at the point of storage.
package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nahid000001/EshoTryLasttry/internal/models"
)

// ErrCouponInvalid covers every coupon rejection: inactive, outside the
// validity window, below minimum amount, or usage exhausted. The wrapped
// message carries the specific reason.
var ErrCouponInvalid = errors.New("coupon invalid")

var oneHundred = decimal.NewFromInt(100)

// CurrentPrice returns the sale price when set, otherwise the base price.
func CurrentPrice(p *models.Product) decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.BasePrice
}

// IsOnSale reports whether the product has a sale price below its base price.
func IsOnSale(p *models.Product) bool {
	return p.SalePrice != nil && p.SalePrice.LessThan(p.BasePrice)
}

// DiscountPercentage returns the sale discount as a whole percentage,
// rounded half-up. Zero when the product is not on sale.
func DiscountPercentage(p *models.Product) int {
	if !IsOnSale(p) {
		return 0
	}
	pct := p.BasePrice.Sub(*p.SalePrice).Div(p.BasePrice).Mul(oneHundred)
	return int(pct.Round(0).IntPart())
}

// VariantFinalPrice is the product's current price plus the variant's signed
// adjustment, clamped at zero so an oversized negative adjustment can never
// produce a negative price.
func VariantFinalPrice(p *models.Product, v *models.ProductVariant) decimal.Decimal {
	price := CurrentPrice(p).Add(v.PriceAdjustment)
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// ValidateCoupon checks everything about a coupon except the atomic global
// usage cap, which is enforced at redemption time. userUsageCount is the
// number of prior redemptions by the redeeming user.
func ValidateCoupon(c *models.Coupon, subtotal decimal.Decimal, userUsageCount int64, now time.Time) error {
	if !c.IsActive {
		return fmt.Errorf("%w: code %s is not active", ErrCouponInvalid, c.Code)
	}
	if now.Before(c.ValidFrom) {
		return fmt.Errorf("%w: code %s is not yet valid", ErrCouponInvalid, c.Code)
	}
	if now.After(c.ValidUntil) {
		return fmt.Errorf("%w: code %s has expired", ErrCouponInvalid, c.Code)
	}
	if subtotal.LessThan(c.MinimumAmount) {
		return fmt.Errorf("%w: order subtotal %s is below the %s minimum", ErrCouponInvalid, subtotal, c.MinimumAmount)
	}
	if c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit {
		return fmt.Errorf("%w: code %s usage limit reached", ErrCouponInvalid, c.Code)
	}
	if c.UserUsageLimit != nil && userUsageCount >= int64(*c.UserUsageLimit) {
		return fmt.Errorf("%w: you have already used code %s", ErrCouponInvalid, c.Code)
	}
	return nil
}

// CouponDiscount validates the coupon and returns the discount it grants
// against the subtotal. Percentage discounts are capped at MaximumDiscount
// when set; fixed discounts are capped at the subtotal. A free_shipping
// coupon grants no subtotal discount (shipping is waived separately).
func CouponDiscount(c *models.Coupon, subtotal decimal.Decimal, userUsageCount int64, now time.Time) (decimal.Decimal, error) {
	if err := ValidateCoupon(c, subtotal, userUsageCount, now); err != nil {
		return decimal.Zero, err
	}

	switch c.DiscountType {
	case models.DiscountTypePercentage:
		discount := subtotal.Mul(c.DiscountValue.Div(oneHundred)).Round(2)
		if c.MaximumDiscount != nil && discount.GreaterThan(*c.MaximumDiscount) {
			discount = *c.MaximumDiscount
		}
		return discount, nil
	case models.DiscountTypeFixed:
		if c.DiscountValue.GreaterThan(subtotal) {
			return subtotal, nil
		}
		return c.DiscountValue, nil
	case models.DiscountTypeFreeShipping:
		return decimal.Zero, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown discount type %q", ErrCouponInvalid, c.DiscountType)
	}
}

// WaivesShipping reports whether the coupon zeroes the shipping cost.
func WaivesShipping(c *models.Coupon) bool {
	return c.DiscountType == models.DiscountTypeFreeShipping
}
