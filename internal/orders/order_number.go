package orders

import (
	"crypto/rand"
	"fmt"

	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/models"
)

const (
	orderNumberLength  = 10
	orderNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderNumberRetries = 5
)

// GenerateOrderNumber produces a unique 10-character uppercase alphanumeric
// order number, retrying on the (unlikely) collision. Assigned exactly once
// at order creation and never regenerated.
func GenerateOrderNumber(db *gorm.DB) (string, error) {
	for attempt := 0; attempt < orderNumberRetries; attempt++ {
		number, err := randomOrderNumber()
		if err != nil {
			return "", err
		}

		var count int64
		if err := db.Model(&models.Order{}).
			Where("order_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique order number after %d attempts", orderNumberRetries)
}

func randomOrderNumber() (string, error) {
	buf := make([]byte, orderNumberLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = orderNumberCharset[int(b)%len(orderNumberCharset)]
	}
	return string(buf), nil
}
