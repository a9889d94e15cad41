package middleware

import (
	"net/http"

	"advisory-app/internal/domain/advisors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequireApprovedAdvisor gates routes that publish slots or manage
// sessions: the caller must hold the advisor role and have an
// admin-approved profile.
func RequireApprovedAdvisor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "advisor" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Advisor account required"})
			return
		}

		userID := c.GetUint("user_id")
		var profile advisors.Profile
		if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Advisor profile not found"})
			return
		}

		if !profile.IsApproved {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Your advisor profile is awaiting approval",
			})
			return
		}

		c.Set("advisor_profile_id", profile.ID)
		c.Next()
	}
}
