package orders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/cart"
	"github.com/Nahid000001/EshoTryLasttry/internal/inventory"
	"github.com/Nahid000001/EshoTryLasttry/internal/models"
	"github.com/Nahid000001/EshoTryLasttry/internal/pricing"
	"github.com/Nahid000001/EshoTryLasttry/internal/shipping"
)

var ErrEmptyCart = errors.New("cart is empty")

type CheckoutInput struct {
	User            *models.User
	CouponCode      string
	ShippingAddress models.Address
	BillingAddress  models.Address
	PaymentMethod   string
	TotalWeightKg   decimal.Decimal
	TaxRate         decimal.Decimal // percentage, e.g. 7.5
	Notes           string
}

// Checkout converts the user's cart into an order inside a single
// transaction: stock is reserved with atomic conditional decrements, the
// coupon's global cap is enforced with an atomic conditional increment, line
// prices are frozen onto OrderItems, and the cart is cleared. Any failure
// rolls the whole order back.
func Checkout(db *gorm.DB, in CheckoutInput) (*models.Order, error) {
	var order *models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var c models.Cart
		err := tx.Preload("Items.Product").Preload("Items.Variant").
			Where("user_id = ?", in.User.ID).First(&c).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if cart.IsEmpty(&c) {
			return ErrEmptyCart
		}

		subtotal := cart.Subtotal(&c)

		// Validate the coupon up front; the atomic cap increment happens
		// after the order row exists.
		var coupon *models.Coupon
		discount := decimal.Zero
		if in.CouponCode != "" {
			coupon = &models.Coupon{}
			err := tx.Where("code = ?", strings.ToUpper(in.CouponCode)).First(coupon).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: unknown code %s", pricing.ErrCouponInvalid, in.CouponCode)
				}
				return err
			}

			var userUsage int64
			err = tx.Model(&models.CouponUsage{}).
				Where("coupon_id = ? AND user_id = ?", coupon.ID, in.User.ID).
				Count(&userUsage).Error
			if err != nil {
				return err
			}

			discount, err = pricing.CouponDiscount(coupon, subtotal, userUsage, time.Now())
			if err != nil {
				return err
			}
		}

		// Reserve stock and freeze line snapshots.
		items := make([]models.OrderItem, 0, len(c.Items))
		for i := range c.Items {
			line := &c.Items[i]
			if line.Variant != nil {
				if err := inventory.ReserveVariant(tx, line.Variant, line.Quantity); err != nil {
					return err
				}
			} else {
				if err := inventory.ReserveProduct(tx, line.Product, line.Quantity); err != nil {
					return err
				}
			}

			item := models.OrderItem{
				ProductID:   line.ProductID,
				VariantID:   line.VariantID,
				ProductName: line.Product.Name,
				ProductSKU:  line.Product.SKU,
				Quantity:    line.Quantity,
				UnitPrice:   cart.UnitPrice(line),
				TotalPrice:  cart.LineTotal(line),
			}
			if line.Variant != nil {
				item.ProductSKU = line.Variant.SKU
				item.VariantInfo = line.Variant.Size + " / " + line.Variant.Color
			}
			items = append(items, item)

			if err := tx.Model(&models.Product{}).Where("id = ?", line.ProductID).
				UpdateColumn("purchase_count", gorm.Expr("purchase_count + ?", line.Quantity)).Error; err != nil {
				return err
			}
		}

		discounted := subtotal.Sub(discount)

		rate, err := shipping.RateFor(tx, discounted)
		if err != nil {
			return err
		}
		shippingCost := shipping.Cost(rate, discounted, in.TotalWeightKg)
		if coupon != nil && pricing.WaivesShipping(coupon) {
			shippingCost = decimal.Zero
		}

		tax := decimal.Zero
		if in.TaxRate.IsPositive() {
			tax = discounted.Mul(in.TaxRate.Div(decimal.NewFromInt(100))).Round(2)
		}

		number, err := GenerateOrderNumber(tx)
		if err != nil {
			return err
		}

		order = &models.Order{
			UserID:          in.User.ID,
			OrderNumber:     number,
			Status:          models.OrderStatusPending,
			PaymentStatus:   models.PaymentStatusPending,
			Subtotal:        subtotal,
			TaxAmount:       tax,
			ShippingCost:    shippingCost,
			DiscountAmount:  discount,
			TotalAmount:     subtotal.Sub(discount).Add(tax).Add(shippingCost).Round(2),
			ShippingAddress: in.ShippingAddress,
			BillingAddress:  in.BillingAddress,
			ShippingMethod:  rate.Name,
			PaymentMethod:   in.PaymentMethod,
			Notes:           in.Notes,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.CreateInBatches(&items, len(items)).Error; err != nil {
			return err
		}
		order.Items = items

		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    models.OrderStatusPending,
			Notes:     "Order placed",
			CreatedBy: &in.User.ID,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		if coupon != nil {
			if err := redeemCoupon(tx, coupon, order, discount); err != nil {
				return err
			}
		}

		return cart.Clear(tx, &c)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// redeemCoupon increments the global usage counter with the cap folded into
// the WHERE clause, so two concurrent redemptions of the last use cannot
// both succeed, then records the usage row.
func redeemCoupon(tx *gorm.DB, coupon *models.Coupon, order *models.Order, discount decimal.Decimal) error {
	res := tx.Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit IS NULL OR usage_count < usage_limit)", coupon.ID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: code %s usage limit reached", pricing.ErrCouponInvalid, coupon.Code)
	}

	usage := models.CouponUsage{
		CouponID:       coupon.ID,
		UserID:         order.UserID,
		OrderID:        order.ID,
		DiscountAmount: discount,
	}
	return tx.Create(&usage).Error
}
