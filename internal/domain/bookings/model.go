package bookings

import (
	"errors"
	"time"

	"advisory-app/internal/domain/scheduling"
	"advisory-app/internal/domain/users"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

var ErrInvalidTransition = errors.New("invalid booking status transition")

type Booking struct {
	ID         uint       `gorm:"primaryKey"`
	AdvisorID  uint       `gorm:"not null;index"`
	Advisor    users.User `gorm:"foreignKey:AdvisorID"`
	InvestorID uint       `gorm:"not null;index"`
	Investor   users.User `gorm:"foreignKey:InvestorID"`

	TimeSlotID *uint
	TimeSlot   *scheduling.TimeSlot

	ScheduledAt     time.Time `gorm:"not null"`
	DurationMinutes int       `gorm:"not null"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes           string    `gorm:"type:text"`

	CancelledBy  *uint
	VideoRoomURL *string `gorm:"column:video_room_url"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanCancel: cancellation is allowed from any non-terminal state.
func (b *Booking) CanCancel() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanComplete: only a paid (confirmed) session can be marked completed.
func (b *Booking) CanComplete() bool {
	return b.Status == StatusConfirmed
}
