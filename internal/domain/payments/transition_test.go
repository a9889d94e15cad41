package payments

import (
	"path/filepath"
	"testing"
	"time"

	"advisory-app/internal/domain/advisors"
	"advisory-app/internal/domain/bookings"
	"advisory-app/internal/domain/scheduling"
	"advisory-app/internal/domain/users"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&users.User{},
		&advisors.Profile{},
		&scheduling.TimeSlot{},
		&bookings.Booking{},
		&Payment{},
		&WebhookEvent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	advisor  users.User
	investor users.User
	profile  advisors.Profile
	slot     scheduling.TimeSlot
	booking  bookings.Booking
	payment  Payment
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	advisor := users.User{Name: "Asha", Email: "asha@example.com", Role: users.RoleAdvisor, IsVerified: true}
	investor := users.User{Name: "Ravi", Email: "ravi@example.com", Role: users.RoleInvestor, IsVerified: true}
	if err := db.Create(&advisor).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&investor).Error; err != nil {
		t.Fatal(err)
	}

	profile := advisors.Profile{UserID: advisor.ID, HourlyRate: 1000, IsApproved: true}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatal(err)
	}

	hold := time.Now().Add(15 * time.Minute)
	slot := scheduling.TimeSlot{
		AdvisorID:     advisor.ID,
		StartTime:     time.Now().Add(24 * time.Hour),
		EndTime:       time.Now().Add(25 * time.Hour),
		IsAvailable:   true,
		IsBooked:      true,
		ReservedUntil: &hold,
		ReservedBy:    &investor.ID,
	}
	if err := db.Create(&slot).Error; err != nil {
		t.Fatal(err)
	}

	booking := bookings.Booking{
		AdvisorID:       advisor.ID,
		InvestorID:      investor.ID,
		TimeSlotID:      &slot.ID,
		ScheduledAt:     slot.StartTime,
		DurationMinutes: 60,
		Status:          bookings.StatusPending,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatal(err)
	}

	payment := Payment{
		BookingID:          booking.ID,
		RazorpayOrderID:    "order_test123",
		Amount:             1000,
		Currency:           "INR",
		Status:             StatusCreated,
		CommissionPercent:  10,
		PlatformCommission: 100,
		AdvisorPayout:      900,
		IdempotencyKey:     "idem-1",
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatal(err)
	}

	return fixture{advisor, investor, profile, slot, booking, payment}
}

func TestMarkCompleted(t *testing.T) {
	db := testDB(t)
	f := seed(t, db)

	sig := "deadbeef"
	if err := MarkCompleted(db, &f.payment, Completion{
		GatewayPaymentID: "pay_1",
		Signature:        &sig,
	}); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	var p Payment
	db.First(&p, f.payment.ID)
	if p.Status != StatusCompleted {
		t.Errorf("payment status = %q, want completed", p.Status)
	}
	if p.RazorpayPaymentID == nil || *p.RazorpayPaymentID != "pay_1" {
		t.Errorf("gateway payment id not stored: %v", p.RazorpayPaymentID)
	}
	if p.CompletedAt == nil {
		t.Error("completed_at not set")
	}

	var b bookings.Booking
	db.First(&b, f.booking.ID)
	if b.Status != bookings.StatusConfirmed {
		t.Errorf("booking status = %q, want confirmed", b.Status)
	}

	var slot scheduling.TimeSlot
	db.First(&slot, f.slot.ID)
	if !slot.IsBooked {
		t.Error("slot must stay consumed after payment")
	}
	if slot.ReservedUntil != nil {
		t.Error("reserved_until must be cleared so the sweep skips a paid slot")
	}

	var profile advisors.Profile
	db.First(&profile, f.profile.ID)
	if profile.TotalBookings != 1 {
		t.Errorf("total_bookings = %d, want 1", profile.TotalBookings)
	}
	if profile.TotalRevenue != 900 {
		t.Errorf("total_revenue = %v, want 900", profile.TotalRevenue)
	}
}

func TestMarkCompleted_ReplayDoesNotDoubleCount(t *testing.T) {
	db := testDB(t)
	f := seed(t, db)

	sig := "deadbeef"
	if err := MarkCompleted(db, &f.payment, Completion{GatewayPaymentID: "pay_1", Signature: &sig}); err != nil {
		t.Fatal(err)
	}

	// Webhook delivery of the same capture: same terminal fields plus
	// the method, applied as a pure overwrite.
	method := "upi"
	if err := MarkCompleted(db, &f.payment, Completion{GatewayPaymentID: "pay_1", Method: &method}); err != nil {
		t.Fatal(err)
	}

	var profile advisors.Profile
	db.First(&profile, f.profile.ID)
	if profile.TotalBookings != 1 {
		t.Errorf("total_bookings = %d after replay, want 1", profile.TotalBookings)
	}
	if profile.TotalRevenue != 900 {
		t.Errorf("total_revenue = %v after replay, want 900", profile.TotalRevenue)
	}

	var p Payment
	db.First(&p, f.payment.ID)
	if p.Status != StatusCompleted {
		t.Errorf("payment status = %q, want completed", p.Status)
	}
	if p.Method == nil || *p.Method != "upi" {
		t.Error("replay should still overwrite terminal fields")
	}
}

func TestMarkCompleted_CancelledBookingStaysCancelled(t *testing.T) {
	db := testDB(t)
	f := seed(t, db)

	// The investor cancels while the gateway capture is still in flight;
	// the cancel path terminates the booking and frees the slot.
	db.Model(&bookings.Booking{}).Where("id = ?", f.booking.ID).
		Updates(map[string]interface{}{
			"status":       bookings.StatusCancelled,
			"cancelled_by": f.investor.ID,
		})
	db.Model(&scheduling.TimeSlot{}).Where("id = ?", f.slot.ID).
		Updates(map[string]interface{}{
			"is_booked":      false,
			"reserved_until": nil,
			"reserved_by":    nil,
		})

	if err := MarkCompleted(db, &f.payment, Completion{GatewayPaymentID: "pay_late"}); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	var b bookings.Booking
	db.First(&b, f.booking.ID)
	if b.Status != bookings.StatusCancelled {
		t.Errorf("booking status = %q, cancellation is terminal and must stay cancelled", b.Status)
	}

	// The charge itself stays on record so a refund can follow.
	var p Payment
	db.First(&p, f.payment.ID)
	if p.Status != StatusCompleted {
		t.Errorf("payment status = %q, want completed for refund follow-up", p.Status)
	}

	var slot scheduling.TimeSlot
	db.First(&slot, f.slot.ID)
	if slot.IsBooked {
		t.Error("late capture must not re-consume a freed slot")
	}

	var profile advisors.Profile
	db.First(&profile, f.profile.ID)
	if profile.TotalBookings != 0 || profile.TotalRevenue != 0 {
		t.Errorf("advisor totals = %d/%v, late capture must not credit them",
			profile.TotalBookings, profile.TotalRevenue)
	}
}

func TestMarkFailed(t *testing.T) {
	db := testDB(t)
	f := seed(t, db)

	code := "BAD_REQUEST_ERROR"
	desc := "Payment declined by bank"
	if err := MarkFailed(db, f.payment.RazorpayOrderID, &code, &desc); err != nil {
		t.Fatal(err)
	}

	var p Payment
	db.First(&p, f.payment.ID)
	if p.Status != StatusFailed {
		t.Errorf("status = %q, want failed", p.Status)
	}
	if p.ErrorCode == nil || *p.ErrorCode != code {
		t.Error("error code not stored")
	}

	t.Run("never downgrades a completed payment", func(t *testing.T) {
		if err := MarkCompleted(db, &f.payment, Completion{GatewayPaymentID: "pay_1"}); err != nil {
			t.Fatal(err)
		}
		if err := MarkFailed(db, f.payment.RazorpayOrderID, &code, &desc); err != nil {
			t.Fatal(err)
		}
		var after Payment
		db.First(&after, f.payment.ID)
		if after.Status != StatusCompleted {
			t.Errorf("status = %q, completed payment must not be downgraded", after.Status)
		}
	})
}

func TestMarkRefunded(t *testing.T) {
	db := testDB(t)
	f := seed(t, db)

	if err := MarkCompleted(db, &f.payment, Completion{GatewayPaymentID: "pay_refund"}); err != nil {
		t.Fatal(err)
	}

	at := time.Now()
	if err := MarkRefunded(db, "pay_refund", 1000, at); err != nil {
		t.Fatal(err)
	}

	var p Payment
	db.First(&p, f.payment.ID)
	if p.Status != StatusRefunded {
		t.Errorf("status = %q, want refunded", p.Status)
	}
	if p.RefundAmount == nil || *p.RefundAmount != 1000 {
		t.Errorf("refund amount = %v, want 1000", p.RefundAmount)
	}
	if p.RefundedAt == nil {
		t.Error("refunded_at not set")
	}
}
