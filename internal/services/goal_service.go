package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "finmentor/internal/errors"
	"finmentor/internal/models"
	"finmentor/internal/pagination"
	"finmentor/internal/uuid"
)

// goalService handles savings goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

func validateFilter(filter GoalFilter) error {
	var fields []apperrors.FieldError
	if filter.Status != nil && !filter.Status.Valid() {
		fields = append(fields, apperrors.Field("status", "must be one of active, completed, cancelled"))
	}
	if filter.Category != nil && !filter.Category.Valid() {
		fields = append(fields, apperrors.Field("category", "must be a valid goal category"))
	}
	if filter.Priority != nil && !filter.Priority.Valid() {
		fields = append(fields, apperrors.Field("priority", "must be one of low, medium, high"))
	}
	if len(fields) > 0 {
		return apperrors.Invalid(fields...)
	}
	return nil
}

func (s *goalService) scoped(userID string) *gorm.DB {
	return s.db.Model(&models.Goal{}).Where("user_id = ?", userID)
}

// ListGoals returns one page of the user's goals, newest first.
func (s *goalService) ListGoals(userID string, filter GoalFilter, page pagination.PageRequest) (*GoalPage, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	page.Defaults()

	query := func() *gorm.DB {
		q := s.scoped(userID)
		if filter.Status != nil {
			q = q.Where("status = ?", *filter.Status)
		}
		if filter.Category != nil {
			q = q.Where("category = ?", *filter.Category)
		}
		if filter.Priority != nil {
			q = q.Where("priority = ?", *filter.Priority)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goals := []models.Goal{}
	err := query().Order("created_at DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&goals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	meta := pagination.NewMeta(page, len(goals), total)
	return &GoalPage{
		Goals: goals,
		Pagination: GoalPagination{
			CurrentPage: meta.CurrentPage,
			TotalPages:  meta.TotalPages,
			TotalGoals:  meta.TotalItems,
			HasNext:     meta.HasNext,
			HasPrev:     meta.HasPrev,
		},
	}, nil
}

// GetGoal returns one goal owned by userID.
func (s *goalService) GetGoal(userID, goalID string) (*models.Goal, error) {
	if !uuid.IsValid(goalID) {
		return nil, apperrors.ErrGoalNotFound
	}
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

func validateGoal(g *models.Goal) error {
	var fields []apperrors.FieldError
	if strings.TrimSpace(g.Name) == "" {
		fields = append(fields, apperrors.Field("name", "is required"))
	}
	if fe := validateAmount("targetAmount", g.TargetAmount); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := validateAmount("currentAmount", g.CurrentAmount); fe != nil {
		fields = append(fields, *fe)
	}
	if g.Deadline.IsZero() {
		fields = append(fields, apperrors.Field("deadline", "is required"))
	}
	if !g.Category.Valid() {
		fields = append(fields, apperrors.Field("category", "must be a valid goal category"))
	}
	if !g.Priority.Valid() {
		fields = append(fields, apperrors.Field("priority", "must be one of low, medium, high"))
	}
	if !g.Status.Valid() {
		fields = append(fields, apperrors.Field("status", "must be one of active, completed, cancelled"))
	}
	if len(fields) > 0 {
		return apperrors.Invalid(fields...)
	}
	return nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// CreateGoal stores a new active goal.
func (s *goalService) CreateGoal(userID string, in GoalInput) (*models.Goal, error) {
	priority := in.Priority
	if priority == "" {
		priority = models.GoalPriorityMedium
	}
	goal := &models.Goal{
		UserID:        userID,
		Name:          strings.TrimSpace(in.Name),
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Deadline:      in.Deadline,
		Category:      in.Category,
		Description:   in.Description,
		Priority:      priority,
		Status:        models.GoalStatusActive,
		Tags:          cleanTags(in.Tags),
	}
	if err := validateGoal(goal); err != nil {
		return nil, err
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// UpdateGoal applies the set fields of patch. Progress is recomputed
// but the status never changes implicitly.
func (s *goalService) UpdateGoal(userID, goalID string, patch GoalPatch) (*models.Goal, error) {
	goal, err := s.GetGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	if v, ok := patch.Name.Get(); ok {
		goal.Name = strings.TrimSpace(v)
	}
	if v, ok := patch.TargetAmount.Get(); ok {
		goal.TargetAmount = v
	}
	if v, ok := patch.CurrentAmount.Get(); ok {
		goal.CurrentAmount = v
	}
	if v, ok := patch.Deadline.Get(); ok {
		goal.Deadline = v
	}
	if v, ok := patch.Category.Get(); ok {
		goal.Category = v
	}
	if v, ok := patch.Description.Get(); ok {
		goal.Description = v
	}
	if v, ok := patch.Priority.Get(); ok {
		goal.Priority = v
	}
	if v, ok := patch.Status.Get(); ok {
		goal.Status = v
	}
	if v, ok := patch.Tags.Get(); ok {
		goal.Tags = cleanTags(v)
	}

	if err := validateGoal(goal); err != nil {
		return nil, err
	}
	if err := s.db.Save(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// DeleteGoal soft-deletes a goal.
func (s *goalService) DeleteGoal(userID, goalID string) error {
	goal, err := s.GetGoal(userID, goalID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdateCurrentAmount replaces the saved amount of a goal.
func (s *goalService) UpdateCurrentAmount(userID, goalID string, amount float64) (*models.Goal, error) {
	if fe := validateAmount("currentAmount", amount); fe != nil {
		return nil, apperrors.Invalid(*fe)
	}
	goal, err := s.GetGoal(userID, goalID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(goal).Update("current_amount", amount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goal.CurrentAmount = amount
	goal.ProgressPercentage = goal.Progress()
	return goal, nil
}

var priorityRank = map[models.GoalPriority]int{
	models.GoalPriorityHigh:   0,
	models.GoalPriorityMedium: 1,
	models.GoalPriorityLow:    2,
}

// SummaryStats aggregates the user's goals, optionally restricted to one
// status. The three aggregations run concurrently.
func (s *goalService) SummaryStats(userID string, status *models.GoalStatus) (*GoalStats, error) {
	if err := validateFilter(GoalFilter{Status: status}); err != nil {
		return nil, err
	}

	base := func() *gorm.DB {
		q := s.scoped(userID)
		if status != nil {
			q = q.Where("status = ?", *status)
		}
		return q
	}

	stats := &GoalStats{
		CategoryBreakdown: []GoalCategoryStats{},
		PriorityBreakdown: []GoalPriorityStats{},
	}

	var g errgroup.Group
	g.Go(func() error {
		return base().Select(
			"COUNT(*) AS total_goals, " +
				"COALESCE(SUM(target_amount), 0) AS total_target_amount, " +
				"COALESCE(SUM(current_amount), 0) AS total_current_amount, " +
				"COALESCE(AVG(CASE WHEN target_amount > 0 THEN current_amount * 100.0 / target_amount ELSE 0 END), 0) AS avg_progress",
		).Scan(&stats.Summary).Error
	})
	g.Go(func() error {
		return base().Select(
			"category, COUNT(*) AS count, " +
				"COALESCE(SUM(target_amount), 0) AS total_target_amount, " +
				"COALESCE(SUM(current_amount), 0) AS total_current_amount",
		).Group("category").Order("total_target_amount DESC, category").Scan(&stats.CategoryBreakdown).Error
	})
	g.Go(func() error {
		return base().Select(
			"priority, COUNT(*) AS count, " +
				"COALESCE(SUM(target_amount), 0) AS total_target_amount, " +
				"COALESCE(SUM(current_amount), 0) AS total_current_amount",
		).Group("priority").Scan(&stats.PriorityBreakdown).Error
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if stats.CategoryBreakdown == nil {
		stats.CategoryBreakdown = []GoalCategoryStats{}
	}
	if stats.PriorityBreakdown == nil {
		stats.PriorityBreakdown = []GoalPriorityStats{}
	}
	// Overfunded goals offset the rest.
	stats.Summary.TotalRemainingAmount = stats.Summary.TotalTargetAmount - stats.Summary.TotalCurrentAmount
	stats.Summary.AvgProgress = decimal.NewFromFloat(stats.Summary.AvgProgress).Round(2).InexactFloat64()
	sort.SliceStable(stats.PriorityBreakdown, func(i, j int) bool {
		return priorityRank[stats.PriorityBreakdown[i].Priority] < priorityRank[stats.PriorityBreakdown[j].Priority]
	})
	return stats, nil
}

// ActiveGoals returns every active goal of the user, newest first.
func (s *goalService) ActiveGoals(userID string) ([]models.Goal, error) {
	goals := []models.Goal{}
	err := s.db.Where("user_id = ? AND status = ?", userID, models.GoalStatusActive).
		Order("created_at DESC, id DESC").
		Find(&goals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}
