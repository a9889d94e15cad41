package availability

import (
	"fmt"
	"time"

	"advisory-app/internal/domain/scheduling"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartExpirySweep releases checkout holds whose 15 minutes have
// lapsed without a confirmed payment. Confirmed bookings clear
// reserved_until, so paid slots are never touched. Returns the cron
// runner so main can stop it on shutdown.
func StartExpirySweep(db *gorm.DB) *cron.Cron {
	c := cron.New()
	c.Schedule(cron.Every(time.Minute), cron.FuncJob(func() {
		res := db.Model(&scheduling.TimeSlot{}).
			Where("is_booked = ? AND reserved_until IS NOT NULL AND reserved_until < ?", true, time.Now()).
			Updates(map[string]interface{}{
				"is_booked":      false,
				"reserved_until": nil,
				"reserved_by":    nil,
			})
		if res.Error != nil {
			fmt.Println("❌ Slot expiry sweep failed:", res.Error)
			return
		}
		if res.RowsAffected > 0 {
			fmt.Printf("🧹 Released %d expired slot holds\n", res.RowsAffected)
		}
	}))
	c.Start()
	return c
}
