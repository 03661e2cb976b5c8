package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finmentor/internal/models"
)

func healthyProfile() models.FinancialProfile {
	return models.FinancialProfile{
		MonthlyIncome: 200000,
		Loans:         []models.Loan{{Name: "Home Loan", EMIAmount: 20000, InterestRate: 8}},
	}
}

func TestAdviceFor(t *testing.T) {
	tests := []struct {
		category models.GoalCategory
		target   float64
		want     string
	}{
		{models.GoalCategoryVehicle, 150000, "Consider a used vehicle or down payment strategy"},
		{models.GoalCategoryVehicle, 150001, "Hybrid approach: Save 60% + affordable EMI"},
		{models.GoalCategoryVehicle, 500001, "Premium vehicle financing with strategic down payment"},
		{models.GoalCategoryHome, 500000, "Perfect for down payment or renovation savings"},
		{models.GoalCategoryHome, 2000000, "Strategic home investment with partial financing"},
		{models.GoalCategoryHome, 2000001, "Long-term home goal with investment strategy"},
		{models.GoalCategoryTravel, 100000, "Travel fund with smart saving strategies"},
		{models.GoalCategoryTravel, 100001, "Luxury travel with investment-backed approach"},
		{models.GoalCategoryEducation, 200000, "Education fund with scholarship opportunities"},
		{models.GoalCategoryEducation, 200001, "Higher education with strategic financing"},
		{models.GoalCategoryEmergency, 10, "Emergency fund - prioritize this goal"},
		{models.GoalCategoryEmergency, 10000000, "Emergency fund - prioritize this goal"},
		{models.GoalCategoryTechnology, 50000, "Tech upgrade with cash purchase"},
		{models.GoalCategoryTechnology, 50001, "Premium tech with 0% EMI options"},
		{models.GoalCategoryBusiness, 300000, "Business startup with bootstrapping approach"},
		{models.GoalCategoryBusiness, 300001, "Business expansion with strategic financing"},
		{models.GoalCategoryHealth, 1000, "Smart goal planning with mixed approach"},
		{models.GoalCategoryLuxury, 1000, "Smart goal planning with mixed approach"},
		{models.GoalCategoryHobby, 1000, "Smart goal planning with mixed approach"},
	}
	for _, tt := range tests {
		got := adviceFor(tt.category, tt.target)
		require.Equal(t, tt.want, got.message, "%s @ %v", tt.category, tt.target)
		require.NotEmpty(t, got.reason)
	}
}

func TestRecommend_Types(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		months int
		want   RecommendationType
	}{
		{name: "small_is_save", target: 200000, months: 24, want: TypeSave},
		{name: "very_large_is_loan", target: 1000001, months: 120, want: TypeLoan},
		{name: "large_and_soon_is_loan", target: 600000, months: 17, want: TypeLoan},
		{name: "large_not_soon_is_hybrid", target: 600000, months: 18, want: TypeHybrid},
		{name: "medium_is_hybrid", target: 300000, months: 24, want: TypeHybrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &models.Goal{
				Base:          models.Base{ID: "g"},
				TargetAmount:  tt.target,
				CurrentAmount: tt.target * 0.4,
				Deadline:      now.Add(time.Duration(tt.months) * monthLength),
				Category:      models.GoalCategoryHome,
			}
			rec := Recommend(healthyProfile(), g, now)
			require.Equal(t, tt.want, rec.Type)
			require.Equal(t, tt.months, rec.MonthsToDeadline)
			require.Equal(t, "g", rec.GoalID)
		})
	}
}

func TestRecommend_SituationOverrides(t *testing.T) {
	t.Run("debt_ratio_above_50", func(t *testing.T) {
		p := models.FinancialProfile{MonthlyIncome: 10000, Loans: []models.Loan{{EMIAmount: 5001}}}
		g := &models.Goal{TargetAmount: 100000, Deadline: now.Add(24 * monthLength)}
		rec := Recommend(p, g, now)
		require.Equal(t, TypeAlert, rec.Type)
		require.Equal(t, "Focus on debt reduction first", rec.Message)
	})

	t.Run("savings_rate_above_40", func(t *testing.T) {
		g := &models.Goal{TargetAmount: 1000000, Deadline: now.Add(12 * monthLength)}
		rec := Recommend(healthyProfile(), g, now)
		require.Equal(t, TypeAlert, rec.Type)
		require.Equal(t, "Aggressive saving may strain your budget", rec.Message)
	})

	t.Run("progress_above_70", func(t *testing.T) {
		g := &models.Goal{TargetAmount: 100000, CurrentAmount: 71000, Deadline: now.Add(2 * monthLength)}
		rec := Recommend(healthyProfile(), g, now)
		require.Equal(t, TypeAlert, rec.Type)
		require.Equal(t, "Great progress! Stay consistent", rec.Message)
	})

	t.Run("short_timeline_slow_progress", func(t *testing.T) {
		g := &models.Goal{TargetAmount: 100000, CurrentAmount: 10000, Deadline: now.Add(5 * monthLength)}
		rec := Recommend(healthyProfile(), g, now)
		require.Equal(t, TypeAlert, rec.Type)
		require.Equal(t, "Timeline adjustment needed", rec.Message)
	})

	t.Run("no_available_income", func(t *testing.T) {
		p := models.FinancialProfile{MonthlyIncome: 0}
		g := &models.Goal{TargetAmount: 100000, Deadline: now.Add(24 * monthLength)}
		rec := Recommend(p, g, now)
		require.Equal(t, TypeAlert, rec.Type)
		require.Equal(t, "Aggressive saving may strain your budget", rec.Message)
	})

	t.Run("zero_target_uses_category_advice", func(t *testing.T) {
		g := &models.Goal{TargetAmount: 0, Deadline: now.Add(24 * monthLength), Category: models.GoalCategoryEmergency}
		rec := Recommend(healthyProfile(), g, now)
		require.Equal(t, TypeSave, rec.Type)
		require.Equal(t, "Emergency fund - prioritize this goal", rec.Message)
	})
}

func TestSavingsRate(t *testing.T) {
	require.Equal(t, 50.0, SavingsRate(500, 1000))
	require.Equal(t, 100.0, SavingsRate(1, 0))
	require.Equal(t, 0.0, SavingsRate(0, -10))
}
