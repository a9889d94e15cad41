package assessments

// Answers is the fixed financial-health questionnaire.
type Answers struct {
	MonthlyIncome       float64 `json:"monthly_income" binding:"required,gt=0"`
	MonthlySavings      float64 `json:"monthly_savings" binding:"min=0"`
	MonthlyDebtPayment  float64 `json:"monthly_debt_payment" binding:"min=0"`
	EmergencyFundMonths float64 `json:"emergency_fund_months" binding:"min=0"`
	HasHealthInsurance  bool    `json:"has_health_insurance"`
	HasLifeInsurance    bool    `json:"has_life_insurance"`
	AssetClasses        int     `json:"asset_classes" binding:"min=0"`
}

type Result struct {
	Score           int      `json:"score"`
	Category        string   `json:"category"`
	Recommendations []string `json:"recommendations"`
}

// Score grades the questionnaire on five weighted areas:
// savings rate 25, debt load 25, emergency fund 20, insurance 15,
// diversification 15. Deterministic; no randomness, no external input.
func Score(a Answers) Result {
	var score float64
	var recs []string

	// Savings rate: 20% of income or better earns full marks.
	savingsRate := a.MonthlySavings / a.MonthlyIncome
	score += clamp(savingsRate/0.20) * 25
	if savingsRate < 0.10 {
		recs = append(recs, "Increase your monthly savings rate to at least 10% of income")
	}

	// Debt load: full marks at zero, zero marks at 40% of income or more.
	debtRatio := a.MonthlyDebtPayment / a.MonthlyIncome
	score += clamp(1-debtRatio/0.40) * 25
	if debtRatio > 0.30 {
		recs = append(recs, "Reduce debt payments below 30% of monthly income")
	}

	// Emergency fund: 6 months of expenses earns full marks.
	score += clamp(a.EmergencyFundMonths/6) * 20
	if a.EmergencyFundMonths < 3 {
		recs = append(recs, "Build an emergency fund covering at least 3 months of expenses")
	}

	// Insurance: health counts double weight of life.
	if a.HasHealthInsurance {
		score += 10
	} else {
		recs = append(recs, "Get health insurance coverage")
	}
	if a.HasLifeInsurance {
		score += 5
	} else {
		recs = append(recs, "Consider term life insurance")
	}

	// Diversification: 4+ asset classes earns full marks.
	score += clamp(float64(a.AssetClasses)/4) * 15
	if a.AssetClasses < 2 {
		recs = append(recs, "Diversify investments across more asset classes")
	}

	rounded := int(score + 0.5)
	return Result{
		Score:           rounded,
		Category:        categoryFor(rounded),
		Recommendations: recs,
	}
}

func categoryFor(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Poor"
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
