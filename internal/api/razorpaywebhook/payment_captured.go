package razorpaywebhooks

import (
	"fmt"

	"advisory-app/internal/domain/payments"
)

// payment.captured: the gateway's authoritative completion signal. The
// lookup is keyed by the gateway order id — the gateway only echoes its
// own identifiers. Replays and races with browser-side verification end
// in the same terminal state because MarkCompleted increments counters
// only on the created→completed transition.
func (h *Handler) handlePaymentCaptured(entity *paymentEntity) error {
	if entity.OrderID == "" || entity.ID == "" {
		return fmt.Errorf("payment.captured event missing identifiers")
	}

	var payment payments.Payment
	if err := h.DB.Where("razorpay_order_id = ?", entity.OrderID).First(&payment).Error; err != nil {
		return fmt.Errorf("payment not found for order %s: %w", entity.OrderID, err)
	}

	fields := payments.Completion{GatewayPaymentID: entity.ID}
	if entity.Method != "" {
		method := entity.Method
		fields.Method = &method
	}

	return payments.MarkCompleted(h.DB, &payment, fields)
}
