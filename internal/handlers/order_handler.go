package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Nahid000001/EshoTryLasttry/configs"
	"github.com/Nahid000001/EshoTryLasttry/internal/auth"
	"github.com/Nahid000001/EshoTryLasttry/internal/db"
	"github.com/Nahid000001/EshoTryLasttry/internal/models"
	"github.com/Nahid000001/EshoTryLasttry/internal/notifier"
	"github.com/Nahid000001/EshoTryLasttry/internal/orders"
)

type CheckoutRequest struct {
	ShippingAddressID uuid.UUID       `json:"shipping_address_id" binding:"required"`
	BillingAddressID  *uuid.UUID      `json:"billing_address_id"`
	CouponCode        string          `json:"coupon_code"`
	PaymentMethod     string          `json:"payment_method"`
	TotalWeightKg     decimal.Decimal `json:"total_weight_kg"`
	Notes             string          `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

func Checkout(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var shippingAddr models.UserAddress
	if err := db.DB.First(&shippingAddr, "id = ? AND user_id = ?", req.ShippingAddressID, user.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shipping address not found"})
		return
	}
	billing := shippingAddr
	if req.BillingAddressID != nil {
		if err := db.DB.First(&billing, "id = ? AND user_id = ?", *req.BillingAddressID, user.ID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "billing address not found"})
			return
		}
	}

	order, err := orders.Checkout(db.DB, orders.CheckoutInput{
		User:            user,
		CouponCode:      req.CouponCode,
		ShippingAddress: shippingAddr.Snapshot(),
		BillingAddress:  billing.Snapshot(),
		PaymentMethod:   req.PaymentMethod,
		TotalWeightKg:   req.TotalWeightKg,
		TaxRate:         config.LoadCheckoutConfig().TaxRate,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	go func(user models.User, order models.Order) {

		if err := notifier.SendSMS(user.PhoneNumber, order.OrderNumber, order.TotalAmount); err != nil {
			log.Printf("Failed to send SMS for order %s to %s: %v\n", order.OrderNumber, user.PhoneNumber, err)
		}
	}(*user, *order)

	go func(user models.User, order models.Order) {

		if err := notifier.SendEmail(user.Email, user.FullName(), order.OrderNumber, order.TotalAmount); err != nil {
			log.Printf("Failed to send email for order %s to %s: %v\n", order.OrderNumber, user.Email, err)
		}
	}(*user, *order)

	c.JSON(http.StatusCreated, gin.H{"message": "order created successfully", "order": order})
}

func ListOrders(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var userOrders []models.Order
	err := db.DB.Preload("Items").
		Where("user_id = ?", user.ID).
		Order("created_at desc").Find(&userOrders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": userOrders})
}

func GetOrder(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var order models.Order
	err := db.DB.Preload("Items").
		First(&order, "order_number = ? AND user_id = ?", c.Param("number"), user.ID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":            order,
		"can_be_cancelled": orders.CanBeCancelled(&order),
		"is_paid":          orders.IsPaid(&order),
	})
}

func GetOrderHistory(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var order models.Order
	err := db.DB.First(&order, "order_number = ? AND user_id = ?", c.Param("number"), user.ID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	history, err := orders.History(db.DB, order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_number": order.OrderNumber, "history": history})
}

func CancelOrder(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var order models.Order
	err := db.DB.First(&order, "order_number = ? AND user_id = ?", c.Param("number"), user.ID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	if err := orders.Cancel(db.DB, &order, &user.ID, "Cancelled by customer"); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order cancelled", "order": order})
}

// UpdateOrderStatus drives the fulfilment state machine. Invalid jumps are
// rejected with invalid_transition.
func UpdateOrderStatus(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := db.DB.First(&order, "order_number = ?", c.Param("number")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	if err := orders.Transition(db.DB, &order, req.Status, &user.ID, req.Note); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated", "order": order})
}
