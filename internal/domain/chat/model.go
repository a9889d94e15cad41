package chat

import (
	"time"

	"advisory-app/internal/domain/bookings"
	"advisory-app/internal/domain/users"
)

// Message is one direct message between the two parties of a booking.
type Message struct {
	ID        uint             `gorm:"primaryKey"`
	BookingID uint             `gorm:"not null;index"`
	Booking   bookings.Booking `gorm:"constraint:OnDelete:CASCADE"`
	SenderID  uint             `gorm:"not null;index"`
	Sender    users.User       `gorm:"foreignKey:SenderID"`

	Body   string `gorm:"type:text;not null"`
	ReadAt *time.Time

	CreatedAt time.Time
}
