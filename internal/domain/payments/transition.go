package payments

import (
	"time"

	"advisory-app/internal/domain/advisors"
	"advisory-app/internal/domain/bookings"
	"advisory-app/internal/domain/scheduling"

	"gorm.io/gorm"
)

// Completion carries the terminal fields of a successful payment. Both
// delivery paths (browser verification and gateway webhook) go through
// MarkCompleted with the same field set, so whichever lands second is a
// pure overwrite.
type Completion struct {
	GatewayPaymentID string
	Signature        *string
	Method           *string
}

// MarkCompleted moves a payment into completed, confirms its booking,
// clears the slot hold, and credits the advisor's running totals.
// Idempotent: the counters are incremented only on the transition into
// completed, guarded by a conditional update; replays overwrite the
// terminal fields and stop there.
func MarkCompleted(db *gorm.DB, payment *Payment, fields Completion) error {
	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]interface{}{
			"status":              StatusCompleted,
			"razorpay_payment_id": fields.GatewayPaymentID,
			"completed_at":        now,
		}
		if fields.Signature != nil {
			updates["razorpay_signature"] = *fields.Signature
		}
		if fields.Method != nil {
			updates["method"] = *fields.Method
		}

		res := tx.Model(&Payment{}).
			Where("id = ? AND status <> ?", payment.ID, StatusCompleted).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already completed by the other path. Re-apply the terminal
			// fields but never touch the counters again.
			return tx.Model(&Payment{}).Where("id = ?", payment.ID).Updates(updates).Error
		}

		var booking bookings.Booking
		if err := tx.First(&booking, payment.BookingID).Error; err != nil {
			return err
		}

		confirm := tx.Model(&bookings.Booking{}).
			Where("id = ? AND status = ?", booking.ID, bookings.StatusPending).
			Update("status", bookings.StatusConfirmed)
		if confirm.Error != nil {
			return confirm.Error
		}
		if confirm.RowsAffected == 0 {
			// The booking stopped awaiting payment while the capture was in
			// flight — cancellation is terminal and is never undone here.
			// The payment stays completed so the charge is on record for a
			// refund; the slot and the advisor's totals are left alone.
			return nil
		}

		// The slot stays consumed; clearing reserved_until takes it out
		// of the expiry sweep's reach.
		if booking.TimeSlotID != nil {
			if err := tx.Model(&scheduling.TimeSlot{}).
				Where("id = ?", *booking.TimeSlotID).
				Update("reserved_until", nil).Error; err != nil {
				return err
			}
		}

		return tx.Model(&advisors.Profile{}).
			Where("user_id = ?", booking.AdvisorID).
			Updates(map[string]interface{}{
				"total_bookings": gorm.Expr("total_bookings + 1"),
				"total_revenue":  gorm.Expr("total_revenue + ?", payment.AdvisorPayout),
			}).Error
	})
}

// MarkFailed records a gateway failure, keyed by the gateway order id.
// A payment that already completed is never downgraded.
func MarkFailed(db *gorm.DB, orderID string, errorCode, errorDescription *string) error {
	return db.Model(&Payment{}).
		Where("razorpay_order_id = ? AND status <> ?", orderID, StatusCompleted).
		Updates(map[string]interface{}{
			"status":            StatusFailed,
			"error_code":        errorCode,
			"error_description": errorDescription,
		}).Error
}

// MarkRefunded records a refund, keyed by the gateway payment id since
// refund events do not echo the order id.
func MarkRefunded(db *gorm.DB, gatewayPaymentID string, refundAmount float64, at time.Time) error {
	return db.Model(&Payment{}).
		Where("razorpay_payment_id = ?", gatewayPaymentID).
		Updates(map[string]interface{}{
			"status":        StatusRefunded,
			"refund_amount": refundAmount,
			"refunded_at":   at,
		}).Error
}
