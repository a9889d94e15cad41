package assessments

import "testing"

func strongAnswers() Answers {
	return Answers{
		MonthlyIncome:       100000,
		MonthlySavings:      30000,
		MonthlyDebtPayment:  0,
		EmergencyFundMonths: 8,
		HasHealthInsurance:  true,
		HasLifeInsurance:    true,
		AssetClasses:        5,
	}
}

func TestScore_HealthyProfile(t *testing.T) {
	result := Score(strongAnswers())
	if result.Score != 100 {
		t.Errorf("score = %d, want 100", result.Score)
	}
	if result.Category != "Excellent" {
		t.Errorf("category = %q, want Excellent", result.Category)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("no recommendations expected, got %v", result.Recommendations)
	}
}

func TestScore_StrugglingProfile(t *testing.T) {
	result := Score(Answers{
		MonthlyIncome:       50000,
		MonthlySavings:      0,
		MonthlyDebtPayment:  25000, // 50% of income
		EmergencyFundMonths: 0,
		HasHealthInsurance:  false,
		HasLifeInsurance:    false,
		AssetClasses:        0,
	})
	if result.Score != 0 {
		t.Errorf("score = %d, want 0", result.Score)
	}
	if result.Category != "Poor" {
		t.Errorf("category = %q, want Poor", result.Category)
	}
	if len(result.Recommendations) != 6 {
		t.Errorf("expected a recommendation per weak area, got %d: %v",
			len(result.Recommendations), result.Recommendations)
	}
}

func TestScore_Deterministic(t *testing.T) {
	a := Answers{
		MonthlyIncome:       80000,
		MonthlySavings:      8000,
		MonthlyDebtPayment:  16000,
		EmergencyFundMonths: 3,
		HasHealthInsurance:  true,
		HasLifeInsurance:    false,
		AssetClasses:        2,
	}
	first := Score(a)
	second := Score(a)
	if first.Score != second.Score || first.Category != second.Category {
		t.Errorf("scoring is not deterministic: %+v vs %+v", first, second)
	}
}

func TestScore_AreasAreCapped(t *testing.T) {
	// Absurdly strong answers must not push past 100.
	a := strongAnswers()
	a.MonthlySavings = a.MonthlyIncome * 2
	a.EmergencyFundMonths = 50
	a.AssetClasses = 40

	result := Score(a)
	if result.Score != 100 {
		t.Errorf("score = %d, want capped at 100", result.Score)
	}
}

func TestCategoryBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "Excellent"},
		{80, "Excellent"},
		{79, "Good"},
		{60, "Good"},
		{59, "Fair"},
		{40, "Fair"},
		{39, "Poor"},
		{0, "Poor"},
	}
	for _, tc := range cases {
		if got := categoryFor(tc.score); got != tc.want {
			t.Errorf("categoryFor(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
