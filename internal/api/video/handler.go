package video

import (
	"fmt"
	"net/http"
	"time"

	"advisory-app/internal/domain/bookings"
	"advisory-app/internal/infra/daily"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RoomCreator is the slice of the Daily client this handler needs.
type RoomCreator interface {
	CreateRoom(name string, expiry time.Time) (*daily.Room, error)
}

type Handler struct {
	DB    *gorm.DB
	Rooms RoomCreator
}

func NewHandler(db *gorm.DB, rooms RoomCreator) *Handler {
	return &Handler{DB: db, Rooms: rooms}
}

// POST /bookings/:id/video-room
// Lazily creates the Daily room for a confirmed booking and stores its
// URL; subsequent calls return the same room.
func (h *Handler) GetOrCreateRoom(c *gin.Context) {
	userID := c.GetUint("user_id")

	var booking bookings.Booking
	if err := h.DB.First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if booking.InvestorID != userID && booking.AdvisorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your booking"})
		return
	}
	if booking.Status != bookings.StatusConfirmed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video rooms are available for confirmed bookings only"})
		return
	}

	if booking.VideoRoomURL != nil && *booking.VideoRoomURL != "" {
		c.JSON(http.StatusOK, gin.H{"url": *booking.VideoRoomURL})
		return
	}

	// Room admits participants until half an hour past the session end.
	expiry := booking.ScheduledAt.
		Add(time.Duration(booking.DurationMinutes) * time.Minute).
		Add(30 * time.Minute)

	room, err := h.Rooms.CreateRoom(fmt.Sprintf("booking-%d", booking.ID), expiry)
	if err != nil {
		fmt.Println("❌ Daily room creation failed:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create video room"})
		return
	}

	if err := h.DB.Model(&bookings.Booking{}).
		Where("id = ?", booking.ID).
		Update("video_room_url", room.URL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store room URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": room.URL})
}
