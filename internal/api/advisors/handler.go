package advisors

import (
	"math"
	"net/http"

	"advisory-app/internal/domain/advisors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// AdvisorCard is the public browse view. Revenue never leaves the
// admin surface; totals shown here are rounded for display only.
type AdvisorCard struct {
	UserID        uint    `json:"user_id"`
	Name          string  `json:"name"`
	Lastname      string  `json:"lastname"`
	Bio           string  `json:"bio"`
	Specialty     string  `json:"specialty"`
	SEBINumber    string  `json:"sebi_number"`
	HourlyRate    float64 `json:"hourly_rate"`
	YearsOfExp    int     `json:"years_of_experience"`
	TotalBookings int64   `json:"total_bookings"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

func cardFromProfile(p advisors.Profile) AdvisorCard {
	return AdvisorCard{
		UserID:        p.UserID,
		Name:          p.User.Name,
		Lastname:      p.User.Lastname,
		Bio:           p.Bio,
		Specialty:     p.Specialty,
		SEBINumber:    p.SEBINumber,
		HourlyRate:    p.HourlyRate,
		YearsOfExp:    p.YearsOfExp,
		TotalBookings: p.TotalBookings,
		AverageRating: math.Round(p.AverageRating*10) / 10,
		ReviewCount:   p.ReviewCount,
	}
}

// GET /advisors
// Approved advisors, optionally filtered by specialty.
func (h *Handler) ListAdvisors(c *gin.Context) {
	query := h.DB.Preload("User").Where("is_approved = ?", true)
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("specialty = ?", specialty)
	}

	var profiles []advisors.Profile
	if err := query.Order("average_rating DESC").Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load advisors"})
		return
	}

	cards := make([]AdvisorCard, 0, len(profiles))
	for _, p := range profiles {
		cards = append(cards, cardFromProfile(p))
	}

	c.JSON(http.StatusOK, cards)
}

// GET /advisors/:id
func (h *Handler) GetAdvisor(c *gin.Context) {
	var profile advisors.Profile
	if err := h.DB.Preload("User").
		Where("user_id = ? AND is_approved = ?", c.Param("id"), true).
		First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Advisor not found"})
		return
	}

	c.JSON(http.StatusOK, cardFromProfile(profile))
}

// PUT /advisor/profile
// Advisors edit their own listing. Approval status and totals are not
// editable here.
func (h *Handler) UpdateOwnProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var body struct {
		Bio        string  `json:"bio"`
		Specialty  string  `json:"specialty"`
		HourlyRate float64 `json:"hourly_rate"`
		YearsOfExp int     `json:"years_of_experience"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if body.HourlyRate < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hourly rate cannot be negative"})
		return
	}

	var profile advisors.Profile
	if err := h.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Advisor profile not found"})
		return
	}

	updates := map[string]interface{}{
		"bio":          body.Bio,
		"specialty":    body.Specialty,
		"years_of_exp": body.YearsOfExp,
	}
	if body.HourlyRate > 0 {
		updates["hourly_rate"] = body.HourlyRate
	}

	if err := h.DB.Model(&profile).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
