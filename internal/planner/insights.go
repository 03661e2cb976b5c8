package planner

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"finmentor/internal/models"
)

// InsightKind classifies an insight for display.
type InsightKind string

const (
	KindWarning InsightKind = "warning"
	KindInfo    InsightKind = "info"
	KindSuccess InsightKind = "success"
	KindAlert   InsightKind = "alert"
)

// Thresholds used by the insight rules.
const (
	highDebtRatio       = 60.0
	moderateDebtRatio   = 40.0
	highInterestRate    = 10.0
	largeGoalsRemaining = 500000.0
	urgentGoalTarget    = 300000.0
	urgentGoalMonths    = 12
)

const monthLength = 30 * 24 * time.Hour

// Insight is a single observation about the user's finances.
type Insight struct {
	Kind           InsightKind `json:"kind"`
	Title          string      `json:"title"`
	Message        string      `json:"message"`
	Recommendation string      `json:"recommendation"`
	GoalID         string      `json:"goalId,omitempty"`
}

// Report is the full planner analysis for one user.
type Report struct {
	MonthlyIncome     float64          `json:"monthlyIncome"`
	TotalEMI          float64          `json:"totalEmi"`
	AvailableIncome   float64          `json:"availableIncome"`
	DebtToIncomeRatio float64          `json:"debtToIncomeRatio"`
	Insights          []Insight        `json:"insights"`
	Recommendations   []Recommendation `json:"recommendations"`
}

// Analyze runs every insight rule and builds a recommendation per goal.
func Analyze(profile models.FinancialProfile, goals []models.Goal, now time.Time) Report {
	emi := profile.TotalEMI()
	recs := make([]Recommendation, 0, len(goals))
	for i := range goals {
		recs = append(recs, Recommend(profile, &goals[i], now))
	}
	return Report{
		MonthlyIncome:     profile.MonthlyIncome,
		TotalEMI:          emi,
		AvailableIncome:   profile.MonthlyIncome - emi,
		DebtToIncomeRatio: round2(DebtToIncomeRatio(profile)),
		Insights:          Insights(profile, goals, now),
		Recommendations:   recs,
	}
}

// DebtToIncomeRatio is total EMI as a percentage of monthly income. With no
// income, any EMI is treated as a 100% burden.
func DebtToIncomeRatio(profile models.FinancialProfile) float64 {
	emi := profile.TotalEMI()
	if profile.MonthlyIncome <= 0 {
		if emi > 0 {
			return 100
		}
		return 0
	}
	return emi / profile.MonthlyIncome * 100
}

// MonthsToDeadline counts 30-day months until deadline, rounded up and
// floored at zero.
func MonthsToDeadline(deadline, now time.Time) int {
	d := deadline.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(float64(d) / float64(monthLength)))
}

// MonthlySavingsNeeded spreads the remaining amount evenly over months.
func MonthlySavingsNeeded(remaining float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	return remaining / float64(months)
}

// Insights evaluates the rule table. The debt-ratio rule always yields
// exactly one insight; the others fire independently.
func Insights(profile models.FinancialProfile, goals []models.Goal, now time.Time) []Insight {
	out := []Insight{debtInsight(profile)}

	if in, ok := highInterestInsight(profile.Loans); ok {
		out = append(out, in)
	}

	var target, current float64
	for _, g := range goals {
		target += g.TargetAmount
		current += g.CurrentAmount
	}
	if remaining := target - current; remaining > largeGoalsRemaining {
		out = append(out, Insight{
			Kind:           KindInfo,
			Title:          "Large Financial Goals",
			Message:        fmt.Sprintf("You need ₹%.1fL more to achieve all your goals.", remaining/100000),
			Recommendation: "For goals above ₹5L, consider a mix of savings and loans. Save for smaller goals, loan for larger ones.",
		})
	}

	for i := range goals {
		g := &goals[i]
		months := MonthsToDeadline(g.Deadline, now)
		if g.TargetAmount <= urgentGoalTarget || months >= urgentGoalMonths {
			continue
		}
		monthly := MonthlySavingsNeeded(g.TargetAmount-g.CurrentAmount, months)
		out = append(out, Insight{
			Kind:           KindWarning,
			Title:          "Urgent Goal: " + g.Name,
			Message:        fmt.Sprintf("You need ₹%s monthly to reach your %s goal.", formatAmount(monthly), g.Name),
			Recommendation: fmt.Sprintf("Consider a loan for %s if it's essential, or extend the deadline to make it more achievable.", g.Name),
			GoalID:         g.ID,
		})
	}
	return out
}

func debtInsight(profile models.FinancialProfile) Insight {
	ratio := DebtToIncomeRatio(profile)
	switch {
	case ratio > highDebtRatio:
		rec := "Prioritize paying off high-interest loans first."
		if l, ok := costliestLoan(profile.Loans); ok {
			rec = fmt.Sprintf("Prioritize paying off high-interest loans first, especially your %s at %s%%.",
				l.Name, humanize.Ftoa(l.InterestRate))
		}
		return Insight{
			Kind:           KindWarning,
			Title:          "High Debt Burden",
			Message:        fmt.Sprintf("Your EMI to income ratio is %.1f%%, which is very high. Consider focusing on debt reduction before taking new loans.", ratio),
			Recommendation: rec,
		}
	case ratio > moderateDebtRatio:
		return Insight{
			Kind:           KindInfo,
			Title:          "Moderate Debt Level",
			Message:        fmt.Sprintf("Your EMI to income ratio is %.1f%%. You have some room for additional loans but should be cautious.", ratio),
			Recommendation: "Consider saving for smaller goals and only take loans for essential purchases.",
		}
	default:
		return Insight{
			Kind:           KindSuccess,
			Title:          "Healthy Debt Level",
			Message:        fmt.Sprintf("Your EMI to income ratio is %.1f%%, which is manageable.", ratio),
			Recommendation: "You have good capacity for additional loans if needed for important goals.",
		}
	}
}

func highInterestInsight(loans []models.Loan) (Insight, bool) {
	n := 0
	for _, l := range loans {
		if l.InterestRate > highInterestRate {
			n++
		}
	}
	if n == 0 {
		return Insight{}, false
	}
	return Insight{
		Kind:           KindWarning,
		Title:          "High-Interest Debt Detected",
		Message:        fmt.Sprintf("You have %d loan(s) with interest rates above 10%%.", n),
		Recommendation: "Focus on paying off high-interest loans before taking new ones. Consider debt consolidation for better rates.",
	}, true
}

// costliestLoan returns the loan with the highest interest rate; the first
// one wins ties.
func costliestLoan(loans []models.Loan) (models.Loan, bool) {
	if len(loans) == 0 {
		return models.Loan{}, false
	}
	best := loans[0]
	for _, l := range loans[1:] {
		if l.InterestRate > best.InterestRate {
			best = l
		}
	}
	return best, true
}

// formatAmount renders v with thousands separators and at most two decimals.
func formatAmount(v float64) string {
	return humanize.CommafWithDigits(round2(v), 2)
}
