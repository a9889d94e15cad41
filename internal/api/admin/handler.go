package admin

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"advisory-app/internal/api/auth"
	"advisory-app/internal/domain/advisors"
	"advisory-app/internal/domain/bookings"
	"advisory-app/internal/domain/payments"
	"advisory-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

type AdminUser struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Lastname   string `json:"lastname"`
	Tel        string `json:"tel"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

type AdminPayment struct {
	ID                 uint    `json:"id"`
	BookingID          uint    `json:"booking_id"`
	RazorpayOrderID    string  `json:"razorpay_order_id"`
	Amount             float64 `json:"amount"`
	PlatformCommission float64 `json:"platform_commission"`
	AdvisorPayout      float64 `json:"advisor_payout"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers        int            `json:"total_users"`
	TotalAdvisors     int            `json:"total_advisors"`
	TotalRevenue      float64        `json:"total_revenue"`
	RecentRevenue     float64        `json:"recent_revenue"`
	BookingsPerStatus map[string]int `json:"bookings_per_status"`
}

func (h *Handler) AdminDashboard(c *gin.Context) {
	var stats AdminStats

	var totalUsers, totalAdvisors int64
	var totalRevenue, recentRevenue float64

	h.DB.Model(&users.User{}).Count(&totalUsers)
	h.DB.Model(&advisors.Profile{}).Where("is_approved = ?", true).Count(&totalAdvisors)

	// Stored amounts accumulate unrounded; rounding to whole rupees is a
	// display concern and happens only here.
	h.DB.Model(&payments.Payment{}).
		Where("status = ?", payments.StatusCompleted).
		Select("COALESCE(SUM(platform_commission), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	h.DB.Model(&payments.Payment{}).
		Where("status = ? AND created_at >= ?", payments.StatusCompleted, thirtyDaysAgo).
		Select("COALESCE(SUM(platform_commission), 0)").Scan(&recentRevenue)

	stats.TotalUsers = int(totalUsers)
	stats.TotalAdvisors = int(totalAdvisors)
	stats.TotalRevenue = math.Round(totalRevenue)
	stats.RecentRevenue = math.Round(recentRevenue)

	type StatusCount struct {
		Status string
		Count  int
	}
	var counts []StatusCount
	h.DB.Model(&bookings.Booking{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts)

	stats.BookingsPerStatus = map[string]int{}
	for _, sc := range counts {
		stats.BookingsPerStatus[sc.Status] = sc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListAllUsers(c *gin.Context) {
	var list []users.User
	err := h.DB.Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var adminUsers []AdminUser
	for _, u := range list {
		adminUsers = append(adminUsers, AdminUser{
			ID:         u.ID,
			Name:       u.Name,
			Lastname:   u.Lastname,
			Tel:        u.Tel,
			Email:      u.Email,
			Role:       u.Role,
			IsVerified: u.IsVerified,
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func (h *Handler) ListAllPayments(c *gin.Context) {
	var list []payments.Payment
	err := h.DB.Order("created_at DESC").Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	var result []AdminPayment
	for _, p := range list {
		result = append(result, AdminPayment{
			ID:                 p.ID,
			BookingID:          p.BookingID,
			RazorpayOrderID:    p.RazorpayOrderID,
			Amount:             p.Amount,
			PlatformCommission: math.Round(p.PlatformCommission),
			AdvisorPayout:      math.Round(p.AdvisorPayout),
			Status:             p.Status,
			CreatedAt:          p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var userBookings []bookings.Booking
	if err := h.DB.Where("investor_id = ? OR advisor_id = ?", userID, userID).Find(&userBookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"bookings": userBookings,
	})
}

func (h *Handler) ListPendingAdvisors(c *gin.Context) {
	var pending []advisors.Profile
	if err := h.DB.Preload("User").Where("is_approved = ?", false).Find(&pending).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pending advisors"})
		return
	}

	c.JSON(http.StatusOK, pending)
}

// POST /admin/advisors/:id/approve
// The approval email is a side effect: a delivery failure is logged and
// never fails the approval.
func (h *Handler) ApproveAdvisor(c *gin.Context) {
	var profile advisors.Profile
	if err := h.DB.Preload("User").Where("user_id = ?", c.Param("id")).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Advisor profile not found"})
		return
	}

	if profile.IsApproved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Advisor already approved"})
		return
	}

	now := time.Now()
	if err := h.DB.Model(&profile).Updates(map[string]interface{}{
		"is_approved": true,
		"approved_at": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve advisor"})
		return
	}

	if err := auth.SendAdvisorApprovalEmail(profile.User.Email, profile.User.Name); err != nil {
		fmt.Println("❌ Approval email failed:", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Advisor approved"})
}
