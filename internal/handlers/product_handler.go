package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/db"
	"github.com/Nahid000001/EshoTryLasttry/internal/inventory"
	"github.com/Nahid000001/EshoTryLasttry/internal/models"
	"github.com/Nahid000001/EshoTryLasttry/internal/pricing"
)

type CreateProductRequest struct {
	Name              string          `json:"name" binding:"required"`
	Slug              string          `json:"slug" binding:"required"`
	Description       string          `json:"description"`
	SKU               string          `json:"sku" binding:"required"`
	CategoryID        uuid.UUID       `json:"category_id" binding:"required"`
	BrandID           uuid.UUID       `json:"brand_id" binding:"required"`
	BasePrice         decimal.Decimal `json:"base_price" binding:"required"`
	SalePrice         *decimal.Decimal `json:"sale_price"`
	TrackInventory    *bool           `json:"track_inventory"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
}

func CreateProduct(c *gin.Context) {
	var req CreateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.Category
	if err := db.DB.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	var brand models.Brand
	if err := db.DB.First(&brand, "id = ?", req.BrandID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "brand not found"})
		return
	}

	product := models.Product{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		SKU:         req.SKU,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		BasePrice:   req.BasePrice,
		SalePrice:   req.SalePrice,
		Status:      models.ProductStatusActive,
	}
	if req.TrackInventory != nil {
		product.TrackInventory = *req.TrackInventory
	} else {
		product.TrackInventory = true
	}
	product.StockQuantity = req.StockQuantity
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	} else {
		product.LowStockThreshold = 10
	}

	if err := db.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := db.DB.Preload("Category").Preload("Brand").First(&product, "id = ?", product.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve product with details"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// productView decorates a product with its computed pricing and stock
// fields so clients never re-derive them.
func productView(p *models.Product) gin.H {
	view := gin.H{
		"product":             p,
		"current_price":       pricing.CurrentPrice(p),
		"is_on_sale":          pricing.IsOnSale(p),
		"discount_percentage": pricing.DiscountPercentage(p),
		"is_in_stock":         inventory.InStock(p),
		"is_low_stock":        inventory.LowStock(p),
	}

	if len(p.Variants) > 0 {
		variants := make([]gin.H, 0, len(p.Variants))
		for i := range p.Variants {
			v := &p.Variants[i]
			variants = append(variants, gin.H{
				"variant":     v,
				"final_price": pricing.VariantFinalPrice(p, v),
				"is_in_stock": inventory.VariantInStock(v),
			})
		}
		view["variants"] = variants
	}
	return view
}

func ListProducts(c *gin.Context) {
	query := db.DB.Preload("Category").Preload("Brand").
		Where("status = ?", models.ProductStatusActive)

	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if brandID := c.Query("brand_id"); brandID != "" {
		query = query.Where("brand_id = ?", brandID)
	}
	if c.Query("featured") == "true" {
		query = query.Where("is_featured = ?", true)
	}

	var products []models.Product
	if err := query.Order("created_at desc").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	views := make([]gin.H, 0, len(products))
	for i := range products {
		views = append(views, productView(&products[i]))
	}
	c.JSON(http.StatusOK, gin.H{"products": views, "count": len(views)})
}

func GetProduct(c *gin.Context) {
	slug := c.Param("slug")

	var product models.Product
	err := db.DB.Preload("Category").Preload("Brand").Preload("Variants").
		Preload("Reviews", "is_approved = ?", true).
		First(&product, "slug = ?", slug).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	// View counting is best-effort, not part of the response path.
	db.DB.Model(&product).UpdateColumn("view_count", gorm.Expr("view_count + 1"))

	c.JSON(http.StatusOK, productView(&product))
}
