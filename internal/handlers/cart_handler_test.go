package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/auth"
	"github.com/Nahid000001/EshoTryLasttry/internal/db"
	"github.com/Nahid000001/EshoTryLasttry/internal/handlers"
	"github.com/Nahid000001/EshoTryLasttry/internal/models"
)

func setupCartTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "failed to connect test database")
	require.NoError(t, db.Migrate(testDB), "failed to migrate test database")

	originalDB := db.DB
	db.SetTestDB(testDB)
	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	r := gin.New()
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte("test-secret-key"))
	r.Use(sessions.Sessions("eshosess", store))

	api := r.Group("/api")
	api.Use(auth.RequireAuth())
	{
		api.GET("/cart", handlers.GetCart)
		api.POST("/cart/items", handlers.AddCartItem)
		api.PUT("/cart/items/:id", handlers.UpdateCartItem)
		api.DELETE("/cart/items/:id", handlers.RemoveCartItem)
	}

	return r, testDB
}

// performAuthenticatedRequest drives the router with a session cookie carrying
// the given user ID, the same shape RequireAuth expects in production.
func performAuthenticatedRequest(router *gin.Engine, method, path string, body interface{}, userID *uuid.UUID) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")

	tempW := httptest.NewRecorder()
	tempC, _ := gin.CreateTestContext(tempW)
	tempC.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	store := cookie.NewStore([]byte("test-secret-key"))
	sessions.Sessions("eshosess", store)(tempC)

	session := sessions.Default(tempC)
	if userID != nil {
		session.Set("user_id", userID.String())
	}
	session.Save()

	req.Header.Set("Cookie", tempW.Header().Get("Set-Cookie"))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCartHandlers(t *testing.T) {
	router, testDB := setupCartTestRouter(t)

	user := models.User{Email: "cart-handler@example.com"}
	require.NoError(t, testDB.Create(&user).Error)

	category := models.Category{Name: "Handlers Cat", Slug: "handlers-cat"}
	require.NoError(t, testDB.Create(&category).Error)
	brand := models.Brand{Name: "Handlers Brand", Slug: "handlers-brand"}
	require.NoError(t, testDB.Create(&brand).Error)

	product := models.Product{
		Name:       "Hoodie",
		Slug:       "hoodie",
		SKU:        "HOODIE-1",
		CategoryID: category.ID,
		BrandID:    brand.ID,
		BasePrice:  decimal.RequireFromString("25.00"),
		Status:     models.ProductStatusActive,
	}
	require.NoError(t, testDB.Create(&product).Error)

	draft := models.Product{
		Name:       "Unreleased",
		Slug:       "unreleased",
		SKU:        "DRAFT-1",
		CategoryID: category.ID,
		BrandID:    brand.ID,
		BasePrice:  decimal.RequireFromString("99.00"),
		Status:     models.ProductStatusDraft,
	}
	require.NoError(t, testDB.Create(&draft).Error)

	t.Run("Returns 401 without a session", func(t *testing.T) {
		recorder := performAuthenticatedRequest(router, http.MethodGet, "/api/cart", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Adds an item and reports totals", func(t *testing.T) {
		reqBody := handlers.AddCartItemRequest{ProductID: product.ID, Quantity: 2}
		recorder := performAuthenticatedRequest(router, http.MethodPost, "/api/cart/items", reqBody, &user.ID)
		assert.Equal(t, http.StatusCreated, recorder.Code)

		recorder = performAuthenticatedRequest(router, http.MethodGet, "/api/cart", nil, &user.ID)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			TotalItems int    `json:"total_items"`
			Subtotal   string `json:"subtotal"`
			IsEmpty    bool   `json:"is_empty"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, 2, response.TotalItems)

		subtotal, err := decimal.NewFromString(response.Subtotal)
		require.NoError(t, err)
		assert.True(t, subtotal.Equal(decimal.RequireFromString("50.00")), "subtotal %s", subtotal)
		assert.False(t, response.IsEmpty)
	})

	t.Run("Returns 404 for an inactive product", func(t *testing.T) {
		reqBody := handlers.AddCartItemRequest{ProductID: draft.ID, Quantity: 1}
		recorder := performAuthenticatedRequest(router, http.MethodPost, "/api/cart/items", reqBody, &user.ID)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Returns 400 for a zero quantity add", func(t *testing.T) {
		reqBody := map[string]interface{}{"product_id": product.ID, "quantity": 0}
		recorder := performAuthenticatedRequest(router, http.MethodPost, "/api/cart/items", reqBody, &user.ID)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Setting quantity to zero removes the line", func(t *testing.T) {
		var item models.CartItem
		require.NoError(t, testDB.First(&item, "product_id = ?", product.ID).Error)

		zero := 0
		reqBody := handlers.UpdateCartItemRequest{Quantity: &zero}
		recorder := performAuthenticatedRequest(router, http.MethodPut, "/api/cart/items/"+item.ID.String(), reqBody, &user.ID)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var count int64
		testDB.Model(&models.CartItem{}).Where("id = ?", item.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Removing an unknown item returns 404", func(t *testing.T) {
		recorder := performAuthenticatedRequest(router, http.MethodDelete, "/api/cart/items/"+uuid.NewString(), nil, &user.ID)
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "not_found", response["kind"])
	})
}
