package scheduling

import (
	"errors"
	"time"
)

// ErrSlotUnavailable is the single refusal for every way a reservation
// can miss: no such slot, already held, already booked.
var ErrSlotUnavailable = errors.New("time slot is not available")

// TimeSlot is one bookable interval on an advisor's calendar.
// A slot can be taken only while IsAvailable && !IsBooked. ReservedUntil
// carries the 15-minute checkout hold; a confirmed payment clears it so
// the expiry sweep never releases a paid slot.
type TimeSlot struct {
	ID        uint `gorm:"primaryKey"`
	AdvisorID uint `gorm:"not null;uniqueIndex:idx_time_slots_advisor_start"`

	StartTime time.Time `gorm:"not null;uniqueIndex:idx_time_slots_advisor_start"`
	EndTime   time.Time `gorm:"not null"`

	IsAvailable bool `gorm:"not null;default:true"`
	IsBooked    bool `gorm:"not null;default:false"`

	ReservedUntil *time.Time
	ReservedBy    *uint

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoldExpired reports whether a checkout hold has lapsed without being
// confirmed.
func (s *TimeSlot) HoldExpired(now time.Time) bool {
	return s.IsBooked && s.ReservedUntil != nil && now.After(*s.ReservedUntil)
}
