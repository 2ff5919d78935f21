package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nahid000001/EshoTryLasttry/internal/auth"
	"github.com/Nahid000001/EshoTryLasttry/internal/db"
	"github.com/Nahid000001/EshoTryLasttry/internal/models"
	"github.com/Nahid000001/EshoTryLasttry/internal/users"
)

type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	PhoneNumber     string `json:"phone_number"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := users.Register(db.DB, users.RegisterInput{
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		PhoneNumber:     req.PhoneNumber,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID.String())
	_ = sess.Save()

	c.JSON(http.StatusCreated, gin.H{"message": "registered", "user": user})
}

func GetProfile(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "full_name": user.FullName()})
}

type AvatarRequest struct {
	Name         string `json:"name" binding:"required"`
	AvatarData   string `json:"avatar_data"`
	Measurements string `json:"measurements"`
	IsDefault    bool   `json:"is_default"`
}

func CreateAvatar(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	avatar := models.UserAvatar{
		UserID:       user.ID,
		Name:         req.Name,
		AvatarData:   req.AvatarData,
		Measurements: req.Measurements,
	}
	if err := db.DB.Create(&avatar).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.IsDefault {
		if err := users.SetDefaultAvatar(db.DB, user.ID, avatar.ID); err != nil {
			respondError(c, err)
			return
		}
		avatar.IsDefault = true
	}
	c.JSON(http.StatusCreated, avatar)
}

func SetDefaultAvatar(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	avatarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid avatar id"})
		return
	}

	if err := users.SetDefaultAvatar(db.DB, user.ID, avatarID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "default avatar updated"})
}
