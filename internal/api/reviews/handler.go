package reviews

import (
	"net/http"

	"advisory-app/internal/domain/advisors"
	"advisory-app/internal/domain/bookings"
	"advisory-app/internal/domain/reviews"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// POST /reviews
// One review per completed booking, written by its investor. The
// advisor's average rating is recomputed from stored rows, not nudged
// incrementally, so it survives deletes and replays.
func (h *Handler) Create(c *gin.Context) {
	userID := c.GetUint("user_id")

	var body struct {
		BookingID uint   `json:"bookingId" binding:"required"`
		Rating    int    `json:"rating" binding:"required,min=1,max=5"`
		Comment   string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid review fields"})
		return
	}

	var booking bookings.Booking
	if err := h.DB.First(&booking, body.BookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if booking.InvestorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your booking"})
		return
	}
	if booking.Status != bookings.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only completed sessions can be reviewed"})
		return
	}

	review := reviews.Review{
		BookingID:  booking.ID,
		AdvisorID:  booking.AdvisorID,
		InvestorID: userID,
		Rating:     body.Rating,
		Comment:    body.Comment,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var stats struct {
			Avg   float64
			Count int64
		}
		if err := tx.Model(&reviews.Review{}).
			Where("advisor_id = ?", booking.AdvisorID).
			Select("AVG(rating) as avg, COUNT(*) as count").
			Scan(&stats).Error; err != nil {
			return err
		}

		return tx.Model(&advisors.Profile{}).
			Where("user_id = ?", booking.AdvisorID).
			Updates(map[string]interface{}{
				"average_rating": stats.Avg,
				"review_count":   stats.Count,
			}).Error
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Booking already reviewed"})
		return
	}

	c.JSON(http.StatusOK, review)
}

// GET /advisors/:id/reviews
func (h *Handler) ListForAdvisor(c *gin.Context) {
	var list []reviews.Review
	if err := h.DB.Preload("Investor").
		Where("advisor_id = ?", c.Param("id")).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
		return
	}

	c.JSON(http.StatusOK, list)
}
