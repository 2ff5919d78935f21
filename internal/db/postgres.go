package db

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/models"
)

var DB *gorm.DB

func Init() {

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_USER", "eshotry"),
		getEnv("POSTGRES_PASSWORD", "eshotry"),
		getEnv("POSTGRES_DB", "eshotry"),
		getEnv("DB_PORT", "5432"),
	)

	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {

		log.Fatalf("Failed to connect to DB: %v", err)
	}

	err = Migrate(DB)

	if err != nil {

		log.Fatalf("Failed to migrate DB: %v", err)
	}

	log.Println("Database connected and migrated successfully")
}

// Migrate runs AutoMigrate for every persisted entity. Shared with the test
// helpers so in-memory databases carry the same schema.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.UserAddress{},
		&models.UserAvatar{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductReview{},
		&models.Wishlist{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.Coupon{},
		&models.CouponUsage{},
		&models.ShippingRate{},
	)
}

func SetTestDB(testDB *gorm.DB) {
	DB = testDB
}

func getEnv(key, fallback string) string {

	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return fallback
}
