package main

import (
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/Nahid000001/EshoTryLasttry/internal/auth"
	"github.com/Nahid000001/EshoTryLasttry/internal/db"
	"github.com/Nahid000001/EshoTryLasttry/internal/handlers"
)

func main() {

	db.Init()
	auth.Init()

	r := gin.Default()

	// ── session store ──
	store := cookie.NewStore([]byte(getEnv("SESSION_SECRET", "change-me")))
	r.Use(sessions.Sessions("eshosess", store))

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/auth/login", auth.Login)
	r.GET("/auth/callback", auth.Callback)
	r.POST("/auth/password-login", auth.PasswordLogin)
	r.POST("/auth/register", handlers.Register)

	r.GET("/catalog/categories", handlers.ListCategories)
	r.GET("/catalog/categories/:id/path", handlers.GetCategoryPath)
	r.GET("/catalog/brands", handlers.ListBrands)
	r.GET("/catalog/products", handlers.ListProducts)
	r.GET("/catalog/products/:slug", handlers.GetProduct)
	r.GET("/catalog/products/:slug/reviews", handlers.ListReviews)

	// ── protected API ──
	api := r.Group("/api")
	api.Use(auth.RequireAuth())
	{
		api.GET("/profile", handlers.GetProfile)
		api.POST("/avatars", handlers.CreateAvatar)
		api.PUT("/avatars/:id/default", handlers.SetDefaultAvatar)

		api.GET("/addresses", handlers.ListAddresses)
		api.POST("/addresses", handlers.CreateAddress)
		api.PUT("/addresses/:id/default", handlers.SetDefaultAddress)
		api.DELETE("/addresses/:id", handlers.DeleteAddress)

		api.GET("/cart", handlers.GetCart)
		api.POST("/cart/items", handlers.AddCartItem)
		api.PUT("/cart/items/:id", handlers.UpdateCartItem)
		api.DELETE("/cart/items/:id", handlers.RemoveCartItem)
		api.DELETE("/cart", handlers.ClearCart)

		api.POST("/coupons/apply", handlers.ApplyCoupon)

		api.POST("/checkout", handlers.Checkout)
		api.GET("/orders", handlers.ListOrders)
		api.GET("/orders/:number", handlers.GetOrder)
		api.GET("/orders/:number/history", handlers.GetOrderHistory)
		api.POST("/orders/:number/cancel", handlers.CancelOrder)
		api.PUT("/orders/:number/status", handlers.UpdateOrderStatus)

		api.GET("/wishlist", handlers.ListWishlist)
		api.POST("/wishlist/:id", handlers.AddToWishlist)
		api.DELETE("/wishlist/:id", handlers.RemoveFromWishlist)

		api.POST("/products/:id/reviews", handlers.CreateReview)

		api.POST("/categories", handlers.CreateCategory)
		api.POST("/products", handlers.CreateProduct)
		api.POST("/coupons", handlers.CreateCoupon)
	}

	r.Run(":8080")
}

func getEnv(key, fallback string) string {

	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return fallback
}
