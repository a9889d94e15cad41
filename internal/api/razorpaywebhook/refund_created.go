package razorpaywebhooks

import (
	"fmt"
	"time"

	"advisory-app/internal/domain/payments"
)

// refund.created: keyed by the gateway payment id; refund events do not
// carry the order id. The refund amount arrives in paise and is stored
// in rupees like every other amount.
func (h *Handler) handleRefundCreated(entity *refundEntity) error {
	if entity.PaymentID == "" {
		return fmt.Errorf("refund.created event missing payment id")
	}

	refundedAt := time.Now()
	if entity.CreatedAt > 0 {
		refundedAt = time.Unix(entity.CreatedAt, 0)
	}

	return payments.MarkRefunded(
		h.DB,
		entity.PaymentID,
		payments.FromMinorUnits(entity.Amount),
		refundedAt,
	)
}
