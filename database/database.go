package database

import (
	"fmt"
	"log"

	"advisory-app/internal/domain/advisors"
	"advisory-app/internal/domain/assessments"
	"advisory-app/internal/domain/bookings"
	"advisory-app/internal/domain/chat"
	"advisory-app/internal/domain/payments"
	"advisory-app/internal/domain/reviews"
	"advisory-app/internal/domain/scheduling"
	"advisory-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres handle and migrates all domain models.
// The handle is passed explicitly into every handler; there is no
// package-level connection.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Required for UUID generation
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return nil, fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	fmt.Println("✅ Connected and migrated successfully")
	return db, nil
}

// Migrate runs AutoMigrate for every domain model. Split out so tests
// can run it against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&users.User{},
		&users.VerificationToken{},
		&advisors.Profile{},

		// scheduling
		&scheduling.TimeSlot{},
		&bookings.Booking{},

		// money
		&payments.Payment{},
		&payments.WebhookEvent{},

		// marketplace extras
		&reviews.Review{},
		&chat.Message{},
		&assessments.Assessment{},
	)
}
