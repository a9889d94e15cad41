package razorpaywebhooks

import (
	"fmt"

	"advisory-app/internal/domain/payments"
)

// payment.failed: store the gateway's error code and description on the
// payment row. A payment that already completed is left alone.
func (h *Handler) handlePaymentFailed(entity *paymentEntity) error {
	if entity.OrderID == "" {
		return fmt.Errorf("payment.failed event missing order id")
	}

	var code, desc *string
	if entity.ErrorCode != "" {
		code = &entity.ErrorCode
	}
	if entity.ErrorDescription != "" {
		desc = &entity.ErrorDescription
	}

	return payments.MarkFailed(h.DB, entity.OrderID, code, desc)
}
