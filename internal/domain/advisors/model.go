package advisors

import (
	"time"

	"advisory-app/internal/domain/users"
)

// Profile is the advisor-side extension of a User. Running totals are
// mutated only when a payment reaches completed; average rating only
// when a review is stored.
type Profile struct {
	ID     uint       `gorm:"primaryKey"`
	UserID uint       `gorm:"not null;uniqueIndex:idx_advisor_profiles_user_id"`
	User   users.User `gorm:"constraint:OnDelete:CASCADE"`

	Bio           string `gorm:"type:text"`
	Specialty     string `gorm:"type:varchar(100)"`
	SEBINumber    string `gorm:"column:sebi_number;type:varchar(50)"`
	HourlyRate    float64
	YearsOfExp    int
	IsApproved    bool
	ApprovedAt    *time.Time
	TotalBookings int64
	TotalRevenue  float64
	AverageRating float64
	ReviewCount   int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Profile) TableName() string {
	return "advisor_profiles"
}
