package planner

import (
	"time"

	"finmentor/internal/models"
)

// RecommendationType is the suggested funding strategy for a goal.
type RecommendationType string

const (
	TypeSave   RecommendationType = "save"
	TypeLoan   RecommendationType = "loan"
	TypeHybrid RecommendationType = "hybrid"
	TypeAlert  RecommendationType = "alert"
)

// Recommendation is the advice for a single goal.
type Recommendation struct {
	GoalID               string             `json:"goalId"`
	Type                 RecommendationType `json:"type"`
	Message              string             `json:"message"`
	Reason               string             `json:"reason"`
	MonthsToDeadline     int                `json:"monthsToDeadline"`
	MonthlySavingsNeeded float64            `json:"monthlySavingsNeeded"`
}

type advice struct {
	message string
	reason  string
}

// tier applies while the goal target is at or below limit. A zero limit
// matches everything.
type tier struct {
	limit float64
	advice
}

var generalAdvice = advice{
	"Smart goal planning with mixed approach",
	"Consider your timeline, interest rates, and opportunity costs for optimal strategy.",
}

var categoryAdvice = map[models.GoalCategory][]tier{
	models.GoalCategoryVehicle: {
		{150000, advice{"Consider a used vehicle or down payment strategy", "Used vehicles often offer better value. Save 40-50% as down payment to reduce EMI burden."}},
		{500000, advice{"Hybrid approach: Save 60% + affordable EMI", "Large vehicle purchases benefit from substantial down payment to keep EMIs manageable."}},
		{0, advice{"Premium vehicle financing with strategic down payment", "Consider 70% down payment + shorter loan term to minimize interest costs."}},
	},
	models.GoalCategoryHome: {
		{500000, advice{"Perfect for down payment or renovation savings", "This amount is ideal for home down payment, renovation, or furniture purchases."}},
		{2000000, advice{"Strategic home investment with partial financing", "Save 60-70% for down payment, finance remaining with home loan benefits."}},
		{0, advice{"Long-term home goal with investment strategy", "Consider SIP in mutual funds for 5+ years, then use as down payment."}},
	},
	models.GoalCategoryTravel: {
		{100000, advice{"Travel fund with smart saving strategies", "Use travel credit cards for rewards, save in high-yield accounts, consider travel insurance."}},
		{0, advice{"Luxury travel with investment-backed approach", "Invest in liquid funds for 1-2 years, use travel rewards cards, plan during off-season."}},
	},
	models.GoalCategoryEducation: {
		{200000, advice{"Education fund with scholarship opportunities", "Research scholarships, apply for education loans with tax benefits, consider part-time work."}},
		{0, advice{"Higher education with strategic financing", "Education loans offer tax benefits, longer repayment terms, and often lower interest rates."}},
	},
	models.GoalCategoryEmergency: {
		{0, advice{"Emergency fund - prioritize this goal", "Aim for 6 months of expenses. Keep in high-yield savings or liquid funds for quick access."}},
	},
	models.GoalCategoryTechnology: {
		{50000, advice{"Tech upgrade with cash purchase", "Avoid financing small tech purchases. Use cashback cards and wait for sales/discounts."}},
		{0, advice{"Premium tech with 0% EMI options", "Many retailers offer 0% EMI on premium tech. Save 50% + use interest-free financing."}},
	},
	models.GoalCategoryBusiness: {
		{300000, advice{"Business startup with bootstrapping approach", "Start small, reinvest profits, consider micro-loans or business credit cards."}},
		{0, advice{"Business expansion with strategic financing", "Mix of savings + business loans. Business loans often have better terms than personal loans."}},
	},
}

func adviceFor(category models.GoalCategory, target float64) advice {
	for _, t := range categoryAdvice[category] {
		if t.limit == 0 || target <= t.limit {
			return t.advice
		}
	}
	return generalAdvice
}

// Thresholds for the financial-situation check.
const (
	strainedDebtRatio   = 50.0
	strainedSavingsRate = 40.0
	nearlyDoneProgress  = 70.0
	shortTimelineMonths = 6
	slowProgress        = 30.0
)

// situationAdvice returns advice that overrides the category table, or
// false when the user's situation needs no special attention.
func situationAdvice(debtRatio, savingsRate, progress float64, months int) (advice, bool) {
	switch {
	case debtRatio > strainedDebtRatio:
		return advice{"Focus on debt reduction first", "Your debt ratio is high. Prioritize paying off existing loans before taking new ones."}, true
	case savingsRate > strainedSavingsRate:
		return advice{"Aggressive saving may strain your budget", "Consider extending timeline or reducing goal amount to maintain financial comfort."}, true
	case progress > nearlyDoneProgress:
		return advice{"Great progress! Stay consistent", "You're close to your goal. Consider increasing monthly savings to reach it faster."}, true
	case months < shortTimelineMonths && progress < slowProgress:
		return advice{"Timeline adjustment needed", "Current timeline may be too aggressive. Consider extending deadline or reducing target amount."}, true
	}
	return advice{}, false
}

// SavingsRate is the monthly saving needed as a percentage of the income left
// after EMIs. With nothing left over, any required saving counts as 100%.
func SavingsRate(monthlyNeeded, availableIncome float64) float64 {
	if availableIncome <= 0 {
		if monthlyNeeded > 0 {
			return 100
		}
		return 0
	}
	return monthlyNeeded / availableIncome * 100
}

// Recommend picks the funding strategy for goal g.
func Recommend(profile models.FinancialProfile, g *models.Goal, now time.Time) Recommendation {
	months := MonthsToDeadline(g.Deadline, now)
	monthly := MonthlySavingsNeeded(g.TargetAmount-g.CurrentAmount, months)
	available := profile.MonthlyIncome - profile.TotalEMI()

	rec := Recommendation{
		GoalID:               g.ID,
		MonthsToDeadline:     months,
		MonthlySavingsNeeded: round2(monthly),
	}

	if a, ok := situationAdvice(DebtToIncomeRatio(profile), SavingsRate(monthly, available), g.Progress(), months); ok {
		rec.Type, rec.Message, rec.Reason = TypeAlert, a.message, a.reason
		return rec
	}

	a := adviceFor(g.Category, g.TargetAmount)
	rec.Message, rec.Reason = a.message, a.reason
	switch {
	case g.TargetAmount <= 200000:
		rec.Type = TypeSave
	case g.TargetAmount > 1000000 || (g.TargetAmount > 500000 && months < 18):
		rec.Type = TypeLoan
	default:
		rec.Type = TypeHybrid
	}
	return rec
}
