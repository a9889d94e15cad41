package assessments

import (
	"encoding/json"
	"net/http"

	"advisory-app/internal/domain/assessments"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// POST /assessments
// Scores the financial-health questionnaire and stores the report.
func (h *Handler) Submit(c *gin.Context) {
	userID := c.GetUint("user_id")

	var answers assessments.Answers
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid questionnaire answers"})
		return
	}

	result := assessments.Score(answers)

	raw, err := json.Marshal(answers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode answers"})
		return
	}

	record := assessments.Assessment{
		InvestorID: userID,
		Answers:    raw,
		Score:      result.Score,
		Category:   result.Category,
	}
	if err := h.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store assessment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessmentId":    record.ID,
		"score":           result.Score,
		"category":        result.Category,
		"recommendations": result.Recommendations,
	})
}

// GET /assessments/latest
// The caller's most recent report, rescored from the stored answers so
// recommendations track the current rubric.
func (h *Handler) Latest(c *gin.Context) {
	userID := c.GetUint("user_id")

	var record assessments.Assessment
	if err := h.DB.Where("investor_id = ?", userID).
		Order("created_at DESC").
		First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No assessment found"})
		return
	}

	var answers assessments.Answers
	if err := json.Unmarshal(record.Answers, &answers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode stored answers"})
		return
	}
	result := assessments.Score(answers)

	c.JSON(http.StatusOK, gin.H{
		"assessmentId":    record.ID,
		"score":           record.Score,
		"category":        record.Category,
		"recommendations": result.Recommendations,
		"answers":         answers,
		"createdAt":       record.CreatedAt,
	})
}
