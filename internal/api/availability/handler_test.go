package availability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"advisory-app/internal/domain/scheduling"
	"advisory-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setup(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&users.User{}, &scheduling.TimeSlot{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// SQLite allows one writer; a single pooled connection makes
	// concurrent handler calls queue instead of failing with a busy error.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db
}

// routerAs wires the handler behind a stub auth layer acting as userID.
func routerAs(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(db)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.POST("/availability/reserve", h.Reserve)
	r.DELETE("/availability/reserve", h.Release)
	r.GET("/advisors/:id/slots", h.ListSlots)
	return r
}

func seedSlot(t *testing.T, db *gorm.DB, advisorID uint, start time.Time) scheduling.TimeSlot {
	t.Helper()
	slot := scheduling.TimeSlot{
		AdvisorID:   advisorID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		IsAvailable: true,
	}
	if err := db.Create(&slot).Error; err != nil {
		t.Fatal(err)
	}
	return slot
}

func reserve(t *testing.T, r *gin.Engine, advisorID uint, start time.Time) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(gin.H{
		"advisorId": advisorID,
		"startTime": start,
		"duration":  60,
	})
	req := httptest.NewRequest(http.MethodPost, "/availability/reserve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReserve_OnlyOneCallerWins(t *testing.T) {
	db := setup(t)
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	slot := seedSlot(t, db, 1, start)

	first := routerAs(db, 10)
	second := routerAs(db, 11)

	w1 := reserve(t, first, 1, start)
	if w1.Code != http.StatusOK {
		t.Fatalf("first reserve: status = %d, body = %s", w1.Code, w1.Body.String())
	}
	var resp struct {
		Success       bool      `json:"success"`
		TimeSlotID    uint      `json:"timeSlotId"`
		ReservedUntil time.Time `json:"reservedUntil"`
	}
	if err := json.Unmarshal(w1.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.TimeSlotID != slot.ID {
		t.Errorf("unexpected reserve response: %s", w1.Body.String())
	}
	until := time.Until(resp.ReservedUntil)
	if until < 14*time.Minute || until > 16*time.Minute {
		t.Errorf("hold length = %v, want about 15 minutes", until)
	}

	// A competing caller against the same live hold must lose.
	w2 := reserve(t, second, 1, start)
	if w2.Code != http.StatusBadRequest {
		t.Errorf("second reserve: status = %d, want 400 while the hold is live", w2.Code)
	}
	if !strings.Contains(w2.Body.String(), scheduling.ErrSlotUnavailable.Error()) {
		t.Errorf("second reserve: body = %s, want the unavailable refusal", w2.Body.String())
	}

	var got scheduling.TimeSlot
	db.First(&got, slot.ID)
	if got.ReservedBy == nil || *got.ReservedBy != 10 {
		t.Errorf("reserved_by = %v, first caller must keep the hold", got.ReservedBy)
	}
}

func TestReserve_ConcurrentCallersOneWins(t *testing.T) {
	db := setup(t)
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	slot := seedSlot(t, db, 1, start)

	callers := []uint{10, 11}
	codes := make([]int, len(callers))

	var wg sync.WaitGroup
	for i, userID := range callers {
		wg.Add(1)
		go func(i int, r *gin.Engine) {
			defer wg.Done()
			codes[i] = reserve(t, r, 1, start).Code
		}(i, routerAs(db, userID))
	}
	wg.Wait()

	wins, losses := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusOK:
			wins++
		case http.StatusBadRequest:
			losses++
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("statuses = %v, want exactly one success and one refusal", codes)
	}

	var got scheduling.TimeSlot
	db.First(&got, slot.ID)
	if !got.IsBooked || got.ReservedBy == nil {
		t.Fatal("slot should end held by the winner")
	}
	if *got.ReservedBy != 10 && *got.ReservedBy != 11 {
		t.Errorf("reserved_by = %d, want one of the two callers", *got.ReservedBy)
	}
}

func TestReserve_ExpiredHoldIsRetaken(t *testing.T) {
	db := setup(t)
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	slot := seedSlot(t, db, 1, start)

	// Simulate a hold that lapsed ten minutes ago.
	staleUntil := time.Now().Add(-10 * time.Minute)
	staleHolder := uint(10)
	db.Model(&scheduling.TimeSlot{}).Where("id = ?", slot.ID).Updates(map[string]interface{}{
		"is_booked":      true,
		"reserved_until": staleUntil,
		"reserved_by":    staleHolder,
	})

	w := reserve(t, routerAs(db, 11), 1, start)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, a lapsed hold must not block a new taker (body %s)", w.Code, w.Body.String())
	}

	var got scheduling.TimeSlot
	db.First(&got, slot.ID)
	if got.ReservedBy == nil || *got.ReservedBy != 11 {
		t.Errorf("reserved_by = %v, want the new taker", got.ReservedBy)
	}
	if !got.IsBooked {
		t.Error("slot should be held again")
	}
}

func TestRelease(t *testing.T) {
	db := setup(t)
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	slot := seedSlot(t, db, 1, start)
	r := routerAs(db, 10)

	if w := reserve(t, r, 1, start); w.Code != http.StatusOK {
		t.Fatalf("reserve: status = %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/availability/reserve?timeSlotId=%d", slot.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("release: status = %d", w.Code)
	}

	var got scheduling.TimeSlot
	db.First(&got, slot.ID)
	if got.IsBooked || got.ReservedUntil != nil || got.ReservedBy != nil {
		t.Errorf("slot not freed: booked=%v until=%v by=%v", got.IsBooked, got.ReservedUntil, got.ReservedBy)
	}

	// Freed slot is reservable again, by anyone.
	if w := reserve(t, routerAs(db, 11), 1, start); w.Code != http.StatusOK {
		t.Errorf("re-reserve after release: status = %d, want 200", w.Code)
	}
}

func TestListSlots_HidesHeldAndReleasesExpired(t *testing.T) {
	db := setup(t)
	base := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	open := seedSlot(t, db, 1, base)
	held := seedSlot(t, db, 1, base.Add(2*time.Hour))
	lapsed := seedSlot(t, db, 1, base.Add(4*time.Hour))

	live := time.Now().Add(10 * time.Minute)
	holder := uint(10)
	db.Model(&scheduling.TimeSlot{}).Where("id = ?", held.ID).Updates(map[string]interface{}{
		"is_booked": true, "reserved_until": live, "reserved_by": holder,
	})
	stale := time.Now().Add(-10 * time.Minute)
	db.Model(&scheduling.TimeSlot{}).Where("id = ?", lapsed.ID).Updates(map[string]interface{}{
		"is_booked": true, "reserved_until": stale, "reserved_by": holder,
	})

	r := routerAs(db, 11)
	req := httptest.NewRequest(http.MethodGet, "/advisors/1/slots", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var slots []scheduling.TimeSlot
	if err := json.Unmarshal(w.Body.Bytes(), &slots); err != nil {
		t.Fatal(err)
	}
	ids := map[uint]bool{}
	for _, s := range slots {
		ids[s.ID] = true
	}
	if !ids[open.ID] {
		t.Error("open slot missing from listing")
	}
	if ids[held.ID] {
		t.Error("slot under a live hold must not be listed")
	}
	if !ids[lapsed.ID] {
		t.Error("slot with a lapsed hold should be released and listed")
	}
}
