package auth

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/Nahid000001/EshoTryLasttry/internal/db"
	"github.com/Nahid000001/EshoTryLasttry/internal/models"
	"github.com/Nahid000001/EshoTryLasttry/internal/users"
)

var (
	provider     *oidc.Provider
	verifier     *oidc.IDTokenVerifier
	oauth2Config *oauth2.Config
)

const sessionName = "eshosess"

func Init() {
	ctx := context.Background()

	var err error
	provider, err = oidc.NewProvider(ctx, os.Getenv("OIDC_ISSUER"))
	if err != nil {
		log.Fatalf("OIDC provider init error: %v", err)
	}

	verifier = provider.Verifier(&oidc.Config{ClientID: os.Getenv("OIDC_CLIENT_ID")})

	oauth2Config = &oauth2.Config{
		ClientID:     os.Getenv("OIDC_CLIENT_ID"),
		ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email", "phone"},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────────────────────────────────────

// GET /auth/login
func Login(c *gin.Context) {
	state := "rand" // TODO: generate & store real CSRF-safe state if needed
	url := oauth2Config.AuthCodeURL(state)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/callback
func Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code missing"})
		return
	}

	ctx := c.Request.Context()
	oauth2Token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token exchange failed"})
		return
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no id_token in token response"})
		return
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token verification failed"})
		return
	}

	// Extract claims
	var claims struct {
		Sub       string `json:"sub"`
		GivenName string `json:"given_name"`
		Family    string `json:"family_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone_number"`
	}
	if err := idToken.Claims(&claims); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "claims parse error"})
		return
	}

	// Upsert user
	var user models.User
	if err := db.DB.Where("oidc_id = ?", claims.Sub).First(&user).Error; err != nil {
		user = models.User{
			OIDCID:      claims.Sub,
			FirstName:   claims.GivenName,
			LastName:    claims.Family,
			Email:       claims.Email,
			PhoneNumber: claims.Phone,
		}
		db.DB.Create(&user)
	}

	// Store user-ID in session
	sess := sessions.Default(c)
	sess.Set("user_id", user.ID.String())
	_ = sess.Save()

	c.JSON(http.StatusOK, gin.H{"message": "logged in", "user": user})
}

// POST /auth/password-login — local accounts registered with a password.
func PasswordLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !users.CheckPassword(&user, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID.String())
	_ = sess.Save()

	c.JSON(http.StatusOK, gin.H{"message": "logged in", "user": user})
}

// Middleware: ensures user is logged in and injects *models.User into context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		rawID, ok := sess.Get("user_id").(string)
		if !ok || rawID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userID, err := uuid.Parse(rawID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var user models.User
		if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		// put on context for handlers
		c.Set("user", &user)
		c.Next()
	}
}

// CurrentUser pulls the authenticated user placed on the context by
// RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}
