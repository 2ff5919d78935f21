package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nahid000001/EshoTryLasttry/internal/db"
	"github.com/Nahid000001/EshoTryLasttry/internal/models"
	"github.com/Nahid000001/EshoTryLasttry/internal/utils"
)

type CreateCategoryRequest struct {
	Name     string     `json:"name" binding:"required"`
	Slug     string     `json:"slug" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ParentID != nil {
		var parentCategory models.Category

		if err := db.DB.First(&parentCategory, "id = ?", *req.ParentID).Error; err != nil {

			errorMessage := fmt.Sprintf("Parent category not found with ID: %s", *req.ParentID)

			c.JSON(http.StatusNotFound, gin.H{"error": errorMessage})
			return
		}
	}

	category := models.Category{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.ParentID,
		IsActive: true,
	}

	if err := db.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := db.DB.Preload("Parent").First(&category, "id = ?", category.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve category with parent details"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func ListCategories(c *gin.Context) {
	var categories []models.Category
	err := db.DB.Where("is_active = ?", true).
		Order("sort_order asc, name asc").Find(&categories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategoryPath renders the "Root > Child > Leaf" breadcrumb for a
// category.
func GetCategoryPath(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	path, err := utils.CategoryFullPath(categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category_id": categoryID, "full_path": path})
}

func ListBrands(c *gin.Context) {
	var brands []models.Brand
	err := db.DB.Where("is_active = ?", true).Order("name asc").Find(&brands).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}
