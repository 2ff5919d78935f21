// Package shipping selects a shipping rate for an order amount and computes
// its cost.
package shipping

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/models"
)

var ErrNoApplicableRate = errors.New("no applicable shipping rate")

// RateFor returns the cheapest active rate whose order-amount window
// contains orderAmount. Rates are scanned in ascending base-rate order, so
// the first match wins.
func RateFor(db *gorm.DB, orderAmount decimal.Decimal) (*models.ShippingRate, error) {
	var rates []models.ShippingRate
	err := db.Where("is_active = ?", true).Order("base_rate asc").Find(&rates).Error
	if err != nil {
		return nil, err
	}

	for i := range rates {
		r := &rates[i]
		if orderAmount.LessThan(r.MinOrderAmount) {
			continue
		}
		if r.MaxOrderAmount != nil && orderAmount.GreaterThan(*r.MaxOrderAmount) {
			continue
		}
		return r, nil
	}
	return nil, ErrNoApplicableRate
}

// Cost computes the shipping charge: zero at or above the rate's
// free-shipping threshold, otherwise base rate plus per-kg rate times
// weight, rounded to 2 places.
func Cost(rate *models.ShippingRate, orderAmount, totalWeightKg decimal.Decimal) decimal.Decimal {
	if rate.FreeShippingThreshold != nil && orderAmount.GreaterThanOrEqual(*rate.FreeShippingThreshold) {
		return decimal.Zero
	}
	return rate.BaseRate.Add(rate.RatePerKg.Mul(totalWeightKg)).Round(2)
}
