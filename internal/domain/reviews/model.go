package reviews

import (
	"time"

	"advisory-app/internal/domain/bookings"
	"advisory-app/internal/domain/users"
)

type Review struct {
	ID         uint             `gorm:"primaryKey"`
	BookingID  uint             `gorm:"not null;uniqueIndex"`
	Booking    bookings.Booking `gorm:"constraint:OnDelete:CASCADE"`
	AdvisorID  uint             `gorm:"not null;index"`
	InvestorID uint             `gorm:"not null;index"`
	Investor   users.User       `gorm:"foreignKey:InvestorID"`

	Rating  int    `gorm:"not null"`
	Comment string `gorm:"type:text"`

	CreatedAt time.Time
}
