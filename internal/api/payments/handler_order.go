package payments

import (
	"errors"
	"fmt"
	"net/http"

	"advisory-app/config"
	"advisory-app/internal/domain/advisors"
	"advisory-app/internal/domain/bookings"
	"advisory-app/internal/domain/payments"
	rzp "advisory-app/internal/infra/razorpay"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Handler struct {
	DB      *gorm.DB
	Gateway rzp.Gateway
}

func NewHandler(db *gorm.DB, gateway rzp.Gateway) *Handler {
	return &Handler{DB: db, Gateway: gateway}
}

// POST /payments/order
// Opens a gateway order for a pending booking. The gateway call is
// synchronous and never retried here; failures surface to the caller.
func (h *Handler) CreateOrder(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var body struct {
		BookingID uint `json:"bookingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid bookingId"})
		return
	}

	var booking bookings.Booking
	if err := h.DB.Where("id = ? AND investor_id = ?", body.BookingID, userID).First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	var completed int64
	if err := h.DB.Model(&payments.Payment{}).
		Where("booking_id = ? AND status = ?", booking.ID, payments.StatusCompleted).
		Count(&completed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing payments"})
		return
	}
	if completed > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": payments.ErrAlreadyPaid.Error()})
		return
	}

	// Cancelled (or otherwise settled) bookings never get a fresh order;
	// a capture against them would be money with nothing to confirm.
	if booking.Status != bookings.StatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Booking is not awaiting payment"})
		return
	}

	var profile advisors.Profile
	if err := h.DB.Where("user_id = ?", booking.AdvisorID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Advisor profile not found"})
		return
	}

	amount := payments.SessionAmount(profile.HourlyRate, booking.DurationMinutes)
	amountMinor := payments.ToMinorUnits(amount)
	idemKey := uuid.NewString()

	orderID, err := h.Gateway.CreateOrder(amountMinor, "INR", idemKey, map[string]interface{}{
		"booking_id":  fmt.Sprint(booking.ID),
		"investor_id": fmt.Sprint(booking.InvestorID),
		"advisor_id":  fmt.Sprint(booking.AdvisorID),
	})
	if err != nil {
		fmt.Println("❌ Razorpay order creation failed:", err)
		status := http.StatusBadGateway
		if errors.Is(err, rzp.ErrUpstreamTimeout) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": "Failed to create payment order"})
		return
	}

	commission, payout := payments.Split(amount, config.COMMISSION_PERCENT)

	payment := payments.Payment{
		BookingID:          booking.ID,
		RazorpayOrderID:    orderID,
		Amount:             amount,
		Currency:           "INR",
		Status:             payments.StatusCreated,
		CommissionPercent:  config.COMMISSION_PERCENT,
		PlatformCommission: commission,
		AdvisorPayout:      payout,
		IdempotencyKey:     idemKey,
	}
	if err := h.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":  orderID,
		"amount":   amountMinor,
		"currency": "INR",
		"payment":  payment,
	})
}
