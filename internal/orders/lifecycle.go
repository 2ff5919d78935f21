// Package orders owns the order state machine and the checkout transaction
// that turns a cart into an immutable order snapshot.
package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nahid000001/EshoTryLasttry/internal/inventory"
	"github.com/Nahid000001/EshoTryLasttry/internal/models"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// statusRank orders the forward fulfilment chain. Forward jumps that skip a
// stage (e.g. confirmed -> shipped) are allowed; regressions are not.
var statusRank = map[models.OrderStatus]int{
	models.OrderStatusPending:    0,
	models.OrderStatusConfirmed:  1,
	models.OrderStatusProcessing: 2,
	models.OrderStatusShipped:    3,
	models.OrderStatusDelivered:  4,
}

// CanTransition reports whether moving from one status to another is
// allowed. Cancellation is only possible before processing starts; refunds
// follow delivery or cancellation.
func CanTransition(from, to models.OrderStatus) bool {
	if from == to {
		return false
	}

	switch to {
	case models.OrderStatusCancelled:
		return from == models.OrderStatusPending || from == models.OrderStatusConfirmed
	case models.OrderStatusRefunded:
		return from == models.OrderStatusDelivered || from == models.OrderStatusCancelled
	}

	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// CanBeCancelled reports whether the order is still early enough in the
// flow to cancel.
func CanBeCancelled(o *models.Order) bool {
	return o.Status == models.OrderStatusPending || o.Status == models.OrderStatusConfirmed
}

func IsPaid(o *models.Order) bool {
	return o.PaymentStatus == models.PaymentStatusPaid
}

// Transition moves the order to a new status, stamping shipped/delivered
// times and appending a history row, all inside one transaction. Rejected
// moves return ErrInvalidTransition and change nothing.
func Transition(db *gorm.DB, o *models.Order, to models.OrderStatus, actorID *uuid.UUID, note string) error {
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": to}
		now := time.Now()
		switch to {
		case models.OrderStatusShipped:
			updates["shipped_at"] = &now
		case models.OrderStatusDelivered:
			updates["delivered_at"] = &now
		}

		// Guard against a concurrent transition having moved the order.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", o.ID, o.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order %s is no longer %s", ErrInvalidTransition, o.OrderNumber, o.Status)
		}

		history := models.OrderStatusHistory{
			OrderID:   o.ID,
			Status:    to,
			Notes:     note,
			CreatedBy: actorID,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		o.Status = to
		switch to {
		case models.OrderStatusShipped:
			o.ShippedAt = &now
		case models.OrderStatusDelivered:
			o.DeliveredAt = &now
		}
		return nil
	})
}

// Cancel transitions the order to cancelled and restocks every line item.
func Cancel(db *gorm.DB, o *models.Order, actorID *uuid.UUID, note string) error {
	if !CanBeCancelled(o) {
		return fmt.Errorf("%w: order %s cannot be cancelled from %s", ErrInvalidTransition, o.OrderNumber, o.Status)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := Transition(tx, o, models.OrderStatusCancelled, actorID, note); err != nil {
			return err
		}

		var items []models.OrderItem
		if err := tx.Where("order_id = ?", o.ID).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			if item.VariantID != nil {
				if err := inventory.ReleaseVariant(tx, *item.VariantID, item.Quantity); err != nil {
					return err
				}
				continue
			}
			if err := inventory.ReleaseProduct(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetPaymentStatus updates the independent payment state machine. Payment
// states have no ordering constraints beyond being one of the known values.
func SetPaymentStatus(db *gorm.DB, o *models.Order, status models.PaymentStatus) error {
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed,
		models.PaymentStatusRefunded, models.PaymentStatusPartiallyRefunded:
	default:
		return fmt.Errorf("unknown payment status %q", status)
	}

	if err := db.Model(&models.Order{}).Where("id = ?", o.ID).
		Update("payment_status", status).Error; err != nil {
		return err
	}
	o.PaymentStatus = status
	return nil
}

// History returns the order's status log, newest first.
func History(db *gorm.DB, orderID uuid.UUID) ([]models.OrderStatusHistory, error) {
	var rows []models.OrderStatusHistory
	err := db.Where("order_id = ?", orderID).
		Order("created_at desc").Find(&rows).Error
	return rows, err
}
