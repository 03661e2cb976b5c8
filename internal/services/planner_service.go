package services

import (
	"errors"
	"time"

	apperrors "finmentor/internal/errors"
	"finmentor/internal/logger"
	"finmentor/internal/models"
	"finmentor/internal/planner"
)

// plannerService assembles the planner dashboard from the stores.
type plannerService struct {
	budgets  BudgetServicer
	spending SpendingSummarizer
	goals    GoalServicer
	profiles FinancialProfileProvider
}

// NewPlannerService creates a new PlannerServicer.
func NewPlannerService(budgets BudgetServicer, spending SpendingSummarizer, goals GoalServicer, profiles FinancialProfileProvider) PlannerServicer {
	return &plannerService{
		budgets:  budgets,
		spending: spending,
		goals:    goals,
		profiles: profiles,
	}
}

// Breakdown compares the month's budget with the month's spending. When
// either source fails the view is empty and flagged degraded; a month
// without a budget is not a failure.
func (s *plannerService) Breakdown(userID string, year, month int) (*BudgetBreakdown, error) {
	if err := ValidatePeriod(year, month); err != nil {
		return nil, err
	}

	result := &BudgetBreakdown{
		Year:       year,
		Month:      month,
		Categories: []planner.CategoryView{},
	}
	log := logger.Named("planner")

	var categories []models.BudgetCategory
	budget, err := s.budgets.GetBudget(userID, year, month)
	switch {
	case err == nil:
		result.HasBudget = true
		categories = budget.Categories
	case errors.Is(err, apperrors.ErrBudgetNotFound):
	default:
		log.Warnw("budget fetch failed, returning degraded breakdown", "error", err, "user_id", userID)
		result.Degraded = true
		return result, nil
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	spending, err := s.spending.CategorySpending(userID, from, from.AddDate(0, 1, 0))
	if err != nil {
		log.Warnw("spending summary failed, returning degraded breakdown", "error", err, "user_id", userID)
		result.HasBudget = false
		result.Degraded = true
		return result, nil
	}

	result.Categories = planner.BuildBreakdown(categories, spending)
	result.TotalBudgeted, result.TotalSpent = planner.Totals(result.Categories)
	return result, nil
}

// Insights runs the goal insight heuristic over the user's profile and
// active goals.
func (s *plannerService) Insights(userID string, now time.Time) (*planner.Report, error) {
	profile, err := s.profiles.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.ActiveGoals(userID)
	if err != nil {
		return nil, err
	}
	report := planner.Analyze(*profile, goals, now)
	return &report, nil
}
