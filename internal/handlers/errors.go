package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/cart"
	"github.com/Nahid000001/EshoTryLasttry/internal/catalog"
	"github.com/Nahid000001/EshoTryLasttry/internal/inventory"
	"github.com/Nahid000001/EshoTryLasttry/internal/orders"
	"github.com/Nahid000001/EshoTryLasttry/internal/pricing"
	"github.com/Nahid000001/EshoTryLasttry/internal/shipping"
	"github.com/Nahid000001/EshoTryLasttry/internal/users"
)

// respondError maps the service error kinds to HTTP statuses and renders
// the machine-readable kind alongside the human message.
func respondError(c *gin.Context, err error) {
	var status int
	var kind string

	switch {
	case errors.Is(err, inventory.ErrInsufficientStock):
		status, kind = http.StatusConflict, "insufficient_stock"
	case errors.Is(err, pricing.ErrCouponInvalid):
		status, kind = http.StatusUnprocessableEntity, "coupon_invalid"
	case errors.Is(err, orders.ErrInvalidTransition):
		status, kind = http.StatusConflict, "invalid_transition"
	case errors.Is(err, shipping.ErrNoApplicableRate):
		status, kind = http.StatusUnprocessableEntity, "no_applicable_rate"
	case errors.Is(err, catalog.ErrDuplicateReview):
		status, kind = http.StatusConflict, "duplicate_review"
	case errors.Is(err, catalog.ErrInvalidRating),
		errors.Is(err, users.ErrValidation),
		errors.Is(err, orders.ErrEmptyCart):
		status, kind = http.StatusBadRequest, "validation_error"
	case errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, users.ErrAddressNotFound),
		errors.Is(err, users.ErrAvatarNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		status, kind = http.StatusNotFound, "not_found"
	default:
		status, kind = http.StatusInternalServerError, "internal_error"
	}

	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}
