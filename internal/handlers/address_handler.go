package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nahid000001/EshoTryLasttry/internal/auth"
	"github.com/Nahid000001/EshoTryLasttry/internal/db"
	"github.com/Nahid000001/EshoTryLasttry/internal/models"
	"github.com/Nahid000001/EshoTryLasttry/internal/users"
)

type AddressRequest struct {
	Type         string `json:"type"`
	FullName     string `json:"full_name" binding:"required"`
	Company      string `json:"company"`
	AddressLine1 string `json:"address_line_1" binding:"required"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Country      string `json:"country" binding:"required"`
	PhoneNumber  string `json:"phone_number"`
	IsDefault    bool   `json:"is_default"`
}

func ListAddresses(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var addresses []models.UserAddress
	err := db.DB.Where("user_id = ?", user.ID).
		Order("is_default desc, created_at desc").Find(&addresses).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

func CreateAddress(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	addrType := req.Type
	if addrType == "" {
		addrType = "home"
	}

	address := models.UserAddress{
		UserID:       user.ID,
		Type:         addrType,
		FullName:     req.FullName,
		Company:      req.Company,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		PhoneNumber:  req.PhoneNumber,
	}
	if err := db.DB.Create(&address).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// The default flag goes through the exclusivity-preserving path.
	if req.IsDefault {
		if err := users.SetDefaultAddress(db.DB, user.ID, address.ID); err != nil {
			respondError(c, err)
			return
		}
		address.IsDefault = true
	}

	c.JSON(http.StatusCreated, address)
}

func SetDefaultAddress(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	if err := users.SetDefaultAddress(db.DB, user.ID, addressID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "default address updated"})
}

func DeleteAddress(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	res := db.DB.Where("id = ? AND user_id = ?", addressID, user.ID).Delete(&models.UserAddress{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "address deleted"})
}
