package availability

import (
	"net/http"
	"time"

	"advisory-app/internal/domain/scheduling"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// How long a checkout hold lasts before the sweep releases it.
const reservationTTL = 15 * time.Minute

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// POST /advisor/slots
// Advisors publish their bookable intervals.
func (h *Handler) CreateSlot(c *gin.Context) {
	userID := c.GetUint("user_id")

	var body struct {
		StartTime time.Time `json:"startTime" binding:"required"`
		EndTime   time.Time `json:"endTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid slot times"})
		return
	}
	if !body.EndTime.After(body.StartTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endTime must be after startTime"})
		return
	}

	slot := scheduling.TimeSlot{
		AdvisorID:   userID,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
		IsAvailable: true,
	}
	if err := h.DB.Create(&slot).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Slot already exists for that time"})
		return
	}

	c.JSON(http.StatusOK, slot)
}

// GET /advisors/:id/slots
// Open slots of an advisor. Expired checkout holds are released lazily
// here in addition to the background sweep.
func (h *Handler) ListSlots(c *gin.Context) {
	advisorID := c.Param("id")

	h.releaseExpired(advisorID)

	var slots []scheduling.TimeSlot
	if err := h.DB.
		Where("advisor_id = ? AND is_available = ? AND is_booked = ? AND start_time > ?",
			advisorID, true, false, time.Now()).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load slots"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// POST /availability/reserve
// Takes a 15-minute hold on a slot while the investor completes
// checkout. The hold is a single conditional UPDATE guarded on
// is_booked = false; under concurrent attempts exactly one caller wins.
func (h *Handler) Reserve(c *gin.Context) {
	userID := c.GetUint("user_id")

	var body struct {
		AdvisorID uint      `json:"advisorId" binding:"required"`
		StartTime time.Time `json:"startTime" binding:"required"`
		Duration  int       `json:"duration" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid reservation fields"})
		return
	}

	var slot scheduling.TimeSlot
	if err := h.DB.
		Where("advisor_id = ? AND start_time = ?", body.AdvisorID, body.StartTime).
		First(&slot).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": scheduling.ErrSlotUnavailable.Error()})
		return
	}

	// A lapsed hold does not block a new taker.
	if slot.HoldExpired(time.Now()) {
		h.DB.Model(&scheduling.TimeSlot{}).
			Where("id = ? AND is_booked = ? AND reserved_until < ?", slot.ID, true, time.Now()).
			Updates(map[string]interface{}{"is_booked": false, "reserved_until": nil, "reserved_by": nil})
	}

	reservedUntil := time.Now().Add(reservationTTL)
	res := h.DB.Model(&scheduling.TimeSlot{}).
		Where("id = ? AND is_available = ? AND is_booked = ?", slot.ID, true, false).
		Updates(map[string]interface{}{
			"is_booked":      true,
			"reserved_until": reservedUntil,
			"reserved_by":    userID,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reserve slot"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": scheduling.ErrSlotUnavailable.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"timeSlotId":    slot.ID,
		"reservedUntil": reservedUntil,
	})
}

// DELETE /availability/reserve?timeSlotId=
// Unconditionally drops the hold, e.g. when the investor abandons
// checkout.
func (h *Handler) Release(c *gin.Context) {
	slotID := c.Query("timeSlotId")
	if slotID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing timeSlotId"})
		return
	}

	if err := h.DB.Model(&scheduling.TimeSlot{}).
		Where("id = ?", slotID).
		Updates(map[string]interface{}{
			"is_booked":      false,
			"reserved_until": nil,
			"reserved_by":    nil,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release slot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) releaseExpired(advisorID string) {
	h.DB.Model(&scheduling.TimeSlot{}).
		Where("advisor_id = ? AND is_booked = ? AND reserved_until IS NOT NULL AND reserved_until < ?",
			advisorID, true, time.Now()).
		Updates(map[string]interface{}{
			"is_booked":      false,
			"reserved_until": nil,
			"reserved_by":    nil,
		})
}
