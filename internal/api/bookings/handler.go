package bookings

import (
	"net/http"
	"time"

	"advisory-app/internal/domain/advisors"
	"advisory-app/internal/domain/bookings"
	"advisory-app/internal/domain/scheduling"
	"advisory-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// POST /bookings
// Creates a pending booking against a slot the caller is holding.
// Payment confirmation moves it to confirmed.
func (h *Handler) Create(c *gin.Context) {
	userID := c.GetUint("user_id")

	var body struct {
		AdvisorID       uint      `json:"advisorId" binding:"required"`
		TimeSlotID      uint      `json:"timeSlotId" binding:"required"`
		ScheduledAt     time.Time `json:"scheduledAt" binding:"required"`
		DurationMinutes int       `json:"durationMinutes" binding:"required,gt=0"`
		Notes           string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid booking fields"})
		return
	}

	var profile advisors.Profile
	if err := h.DB.Where("user_id = ? AND is_approved = ?", body.AdvisorID, true).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Advisor not found"})
		return
	}

	var slot scheduling.TimeSlot
	if err := h.DB.Where("id = ? AND advisor_id = ?", body.TimeSlotID, body.AdvisorID).First(&slot).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Time slot not found"})
		return
	}
	if !slot.IsBooked || slot.ReservedBy == nil || *slot.ReservedBy != userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reserve the slot before booking it"})
		return
	}

	booking := bookings.Booking{
		AdvisorID:       body.AdvisorID,
		InvestorID:      userID,
		TimeSlotID:      &body.TimeSlotID,
		ScheduledAt:     body.ScheduledAt,
		DurationMinutes: body.DurationMinutes,
		Status:          bookings.StatusPending,
		Notes:           body.Notes,
	}
	if err := h.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GET /bookings
// The caller's bookings, newest first. Advisors see their sessions,
// investors see theirs.
func (h *Handler) List(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	query := h.DB.Preload("TimeSlot").Order("scheduled_at DESC")
	if role == users.RoleAdvisor {
		query = query.Where("advisor_id = ?", userID)
	} else {
		query = query.Where("investor_id = ?", userID)
	}

	var list []bookings.Booking
	if err := query.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookings"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// POST /bookings/:id/cancel
// Either party can cancel while the booking is pending or confirmed.
// Terminal states reject with a validation error.
func (h *Handler) Cancel(c *gin.Context) {
	userID := c.GetUint("user_id")
	bookingID := c.Param("id")

	var booking bookings.Booking
	if err := h.DB.First(&booking, bookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if booking.InvestorID != userID && booking.AdvisorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your booking"})
		return
	}

	if !booking.CanCancel() {
		c.JSON(http.StatusBadRequest, gin.H{"error": bookings.ErrInvalidTransition.Error()})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&bookings.Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"status":       bookings.StatusCancelled,
				"cancelled_by": userID,
			}).Error; err != nil {
			return err
		}

		if booking.TimeSlotID != nil {
			return tx.Model(&scheduling.TimeSlot{}).
				Where("id = ?", *booking.TimeSlotID).
				Updates(map[string]interface{}{
					"is_booked":      false,
					"reserved_until": nil,
					"reserved_by":    nil,
				}).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking cancelled"})
}

// POST /bookings/:id/complete
// The advisor closes out a confirmed session after it happens.
func (h *Handler) Complete(c *gin.Context) {
	userID := c.GetUint("user_id")
	bookingID := c.Param("id")

	var booking bookings.Booking
	if err := h.DB.First(&booking, bookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if booking.AdvisorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the advisor can complete a session"})
		return
	}

	if !booking.CanComplete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": bookings.ErrInvalidTransition.Error()})
		return
	}

	if err := h.DB.Model(&bookings.Booking{}).
		Where("id = ?", booking.ID).
		Update("status", bookings.StatusCompleted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking completed"})
}
