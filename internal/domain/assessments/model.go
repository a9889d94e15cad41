package assessments

import (
	"time"

	"advisory-app/internal/domain/users"

	"gorm.io/datatypes"
)

type Assessment struct {
	ID         uint       `gorm:"primaryKey"`
	InvestorID uint       `gorm:"not null;index"`
	Investor   users.User `gorm:"foreignKey:InvestorID"`

	// Raw questionnaire answers as submitted, kept for the report view.
	Answers datatypes.JSON `gorm:"type:jsonb"`

	Score    int    `gorm:"not null"`
	Category string `gorm:"type:varchar(20);not null"`

	CreatedAt time.Time
}
