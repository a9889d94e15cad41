package payments

import (
	"net/http"

	"advisory-app/config"
	"advisory-app/internal/domain/payments"
	rzp "advisory-app/internal/infra/razorpay"

	"github.com/gin-gonic/gin"
)

// POST /payments/verify
// Checks the signature the browser reports after checkout. The HMAC is
// recomputed over "{order_id}|{payment_id}" with the key secret; an
// exact match is the only acceptance path.
func (h *Handler) VerifyPayment(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var body struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing verification fields"})
		return
	}

	var payment payments.Payment
	if err := h.DB.Preload("Booking").
		Where("razorpay_order_id = ?", body.RazorpayOrderID).
		First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	if payment.Booking.InvestorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your booking"})
		return
	}

	if !rzp.VerifyPaymentSignature(body.RazorpayOrderID, body.RazorpayPaymentID, body.RazorpaySignature, config.RAZORPAY_KEY_SECRET) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
		return
	}

	if err := payments.MarkCompleted(h.DB, &payment, payments.Completion{
		GatewayPaymentID: body.RazorpayPaymentID,
		Signature:        &body.RazorpaySignature,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	if err := h.DB.First(&payment, payment.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"payment": payment,
		"message": "Payment verified and booking confirmed",
	})
}
