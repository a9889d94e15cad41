package payments

import (
	"net/http"

	"advisory-app/internal/domain/payments"

	"github.com/gin-gonic/gin"
)

// GET /payments
// Payment history for the calling investor, newest first.
func (h *Handler) GetPaymentHistory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var history []payments.Payment
	if err := h.DB.
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Where("bookings.investor_id = ?", userID).
		Order("payments.created_at DESC").
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, history)
}
