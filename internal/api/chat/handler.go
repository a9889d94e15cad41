package chat

import (
	"net/http"
	"time"

	"advisory-app/internal/domain/bookings"
	"advisory-app/internal/domain/chat"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// partyOf loads the booking and checks the caller is one of its two
// participants.
func (h *Handler) partyOf(c *gin.Context, bookingID string) (*bookings.Booking, bool) {
	userID := c.GetUint("user_id")

	var booking bookings.Booking
	if err := h.DB.First(&booking, bookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return nil, false
	}
	if booking.InvestorID != userID && booking.AdvisorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your booking"})
		return nil, false
	}
	return &booking, true
}

// POST /bookings/:id/messages
func (h *Handler) Send(c *gin.Context) {
	booking, ok := h.partyOf(c, c.Param("id"))
	if !ok {
		return
	}

	var body struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message body required"})
		return
	}

	message := chat.Message{
		BookingID: booking.ID,
		SenderID:  c.GetUint("user_id"),
		Body:      body.Body,
	}
	if err := h.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, message)
}

// GET /bookings/:id/messages
// Returns the thread oldest-first and marks the other side's messages
// as read.
func (h *Handler) List(c *gin.Context) {
	booking, ok := h.partyOf(c, c.Param("id"))
	if !ok {
		return
	}

	var messages []chat.Message
	if err := h.DB.
		Where("booking_id = ?", booking.ID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	h.DB.Model(&chat.Message{}).
		Where("booking_id = ? AND sender_id <> ? AND read_at IS NULL", booking.ID, c.GetUint("user_id")).
		Update("read_at", time.Now())

	c.JSON(http.StatusOK, messages)
}
