package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Nahid000001/EshoTryLasttry/internal/auth"
	"github.com/Nahid000001/EshoTryLasttry/internal/cart"
	"github.com/Nahid000001/EshoTryLasttry/internal/db"
	"github.com/Nahid000001/EshoTryLasttry/internal/models"
	"github.com/Nahid000001/EshoTryLasttry/internal/pricing"
)

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyCoupon previews a coupon against the user's current cart and returns
// the discount breakdown. Nothing is redeemed; redemption happens at
// checkout inside the order transaction.
func ApplyCoupon(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userCart, err := cart.GetOrCreate(db.DB, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	subtotal := cart.Subtotal(userCart)

	var coupon models.Coupon
	if err := db.DB.First(&coupon, "code = ?", strings.ToUpper(req.Code)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found", "kind": "not_found"})
		return
	}

	var userUsage int64
	if err := db.DB.Model(&models.CouponUsage{}).
		Where("coupon_id = ? AND user_id = ?", coupon.ID, user.ID).
		Count(&userUsage).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	discount, err := pricing.CouponDiscount(&coupon, subtotal, userUsage, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":            coupon.Code,
		"discount_type":   coupon.DiscountType,
		"subtotal":        subtotal,
		"discount":        discount,
		"total":           subtotal.Sub(discount).Round(2),
		"waives_shipping": pricing.WaivesShipping(&coupon),
	})
}

// Admin-side coupon creation, mainly used by seeds and ops tooling.
type CreateCouponRequest struct {
	Code            string           `json:"code" binding:"required"`
	Name            string           `json:"name" binding:"required"`
	DiscountType    string           `json:"discount_type" binding:"required,oneof=percentage fixed free_shipping"`
	DiscountValue   decimal.Decimal  `json:"discount_value"`
	MinimumAmount   decimal.Decimal  `json:"minimum_amount"`
	MaximumDiscount *decimal.Decimal `json:"maximum_discount"`
	UsageLimit      *int             `json:"usage_limit"`
	UserUsageLimit  *int             `json:"user_usage_limit"`
	ValidFrom       time.Time        `json:"valid_from" binding:"required"`
	ValidUntil      time.Time        `json:"valid_until" binding:"required"`
}

func CreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupon := models.Coupon{
		Code:            strings.ToUpper(req.Code),
		Name:            req.Name,
		DiscountType:    req.DiscountType,
		DiscountValue:   req.DiscountValue,
		MinimumAmount:   req.MinimumAmount,
		MaximumDiscount: req.MaximumDiscount,
		UsageLimit:      req.UsageLimit,
		UserUsageLimit:  req.UserUsageLimit,
		ValidFrom:       req.ValidFrom,
		ValidUntil:      req.ValidUntil,
		IsActive:        true,
	}
	if err := db.DB.Create(&coupon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, coupon)
}
