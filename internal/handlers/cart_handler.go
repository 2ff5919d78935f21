package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nahid000001/EshoTryLasttry/internal/auth"
	"github.com/Nahid000001/EshoTryLasttry/internal/cart"
	"github.com/Nahid000001/EshoTryLasttry/internal/db"
	"github.com/Nahid000001/EshoTryLasttry/internal/models"
)

type AddCartItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id"`
	Quantity  int        `json:"quantity" binding:"required,gte=1"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

func cartView(c *models.Cart) gin.H {
	items := make([]gin.H, 0, len(c.Items))
	for i := range c.Items {
		item := &c.Items[i]
		items = append(items, gin.H{
			"item":        item,
			"unit_price":  cart.UnitPrice(item),
			"total_price": cart.LineTotal(item),
		})
	}
	return gin.H{
		"cart":        c,
		"items":       items,
		"total_items": cart.TotalItems(c),
		"subtotal":    cart.Subtotal(c),
		"is_empty":    cart.IsEmpty(c),
	}
}

func GetCart(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	userCart, err := cart.GetOrCreate(db.DB, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(userCart))
}

func AddCartItem(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, "id = ? AND status = ?", req.ProductID, models.ProductStatusActive).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	var variant *models.ProductVariant
	if req.VariantID != nil {
		variant = &models.ProductVariant{}
		if err := db.DB.First(variant, "id = ? AND product_id = ?", *req.VariantID, product.ID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "variant not found"})
			return
		}
	}

	userCart, err := cart.GetOrCreate(db.DB, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := cart.AddItem(db.DB, userCart, &product, variant, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item":        item,
		"unit_price":  cart.UnitPrice(item),
		"total_price": cart.LineTotal(item),
	})
}

func UpdateCartItem(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userCart, err := cart.GetOrCreate(db.DB, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := cart.UpdateQuantity(db.DB, userCart, itemID, *req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
}

func RemoveCartItem(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	userCart, err := cart.GetOrCreate(db.DB, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := cart.RemoveItem(db.DB, userCart, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

func ClearCart(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	userCart, err := cart.GetOrCreate(db.DB, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := cart.Clear(db.DB, userCart); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
