package payments

import (
	"errors"
	"time"

	"advisory-app/internal/domain/bookings"

	"gorm.io/datatypes"
)

const (
	StatusCreated   = "created"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"
)

// ErrAlreadyPaid rejects opening a second order once a booking has a
// completed payment.
var ErrAlreadyPaid = errors.New("booking already has a completed payment")

// Payment tracks one gateway order for one booking. Amounts are stored
// in major units (rupees); the gateway order itself is opened in paise.
// Commission fields are precomputed at order time and never rounded at
// rest — rounding happens only in display DTOs.
type Payment struct {
	ID        uint             `gorm:"primaryKey"`
	BookingID uint             `gorm:"not null;index"`
	Booking   bookings.Booking `gorm:"constraint:OnDelete:CASCADE"`

	RazorpayOrderID   string  `gorm:"type:varchar(100);not null;uniqueIndex"`
	RazorpayPaymentID *string `gorm:"type:varchar(100);index"`
	RazorpaySignature *string `gorm:"type:varchar(200)"`

	Amount   float64 `gorm:"not null"`
	Currency string  `gorm:"type:varchar(10);not null;default:'INR'"`
	Status   string  `gorm:"type:varchar(20);not null;default:'created'"`

	CommissionPercent  float64
	PlatformCommission float64
	AdvisorPayout      float64

	IdempotencyKey string `gorm:"type:varchar(64);uniqueIndex"`

	Method           *string `gorm:"type:varchar(50)"`
	ErrorCode        *string `gorm:"type:varchar(100)"`
	ErrorDescription *string `gorm:"type:text"`
	RefundAmount     *float64

	CompletedAt *time.Time
	RefundedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WebhookEvent is an audit trail of gateway deliveries that passed
// signature verification, stored before the event is applied.
type WebhookEvent struct {
	ID        uint           `gorm:"primaryKey"`
	EventType string         `gorm:"type:varchar(50);not null;index"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time
}
