package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "finmentor/internal/errors"
	"finmentor/internal/models"
	"finmentor/internal/planner"
)

const maxListedBudgets = 12

// budgetService handles monthly budget business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// ValidatePeriod checks that year and month address a calendar month.
func ValidatePeriod(year, month int) error {
	var fields []apperrors.FieldError
	if year < 1 || year > 9999 {
		fields = append(fields, apperrors.Field("year", "must be a valid year"))
	}
	if month < 1 || month > 12 {
		fields = append(fields, apperrors.Field("month", "must be between 1 and 12"))
	}
	if len(fields) > 0 {
		return apperrors.Invalid(fields...)
	}
	return nil
}

func validateAmount(field string, amount float64) *apperrors.FieldError {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		fe := apperrors.Field(field, "must be a number")
		return &fe
	}
	if amount < 0 {
		fe := apperrors.Field(field, "must not be negative")
		return &fe
	}
	return nil
}

func validateCategories(categories []models.BudgetCategory) error {
	if len(categories) == 0 {
		return apperrors.Invalid(apperrors.Field("categories", "must contain at least one category"))
	}
	var fields []apperrors.FieldError
	for i, c := range categories {
		if strings.TrimSpace(c.Name) == "" {
			fields = append(fields, apperrors.Field(fmt.Sprintf("categories[%d].name", i), "is required"))
		}
		if fe := validateAmount(fmt.Sprintf("categories[%d].amount", i), c.Amount); fe != nil {
			fields = append(fields, *fe)
		}
	}
	if len(fields) > 0 {
		return apperrors.Invalid(fields...)
	}
	return nil
}

// GetBudget returns the budget for (year, month).
func (s *budgetService) GetBudget(userID string, year, month int) (*models.Budget, error) {
	if err := ValidatePeriod(year, month); err != nil {
		return nil, err
	}
	return s.find(s.db, userID, year, month)
}

func (s *budgetService) find(tx *gorm.DB, userID string, year, month int) (*models.Budget, error) {
	var budget models.Budget
	err := tx.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// ListBudgets returns the most recent budgets, newest month first.
func (s *budgetService) ListBudgets(userID string) ([]models.Budget, error) {
	budgets := []models.Budget{}
	err := s.db.Where("user_id = ?", userID).
		Order("year DESC, month DESC").
		Limit(maxListedBudgets).
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// UpsertBudget creates the budget for (year, month) or replaces its
// category list. The total is recomputed in the same statement.
func (s *budgetService) UpsertBudget(userID string, year, month int, categories []models.BudgetCategory) (*models.Budget, error) {
	if err := ValidatePeriod(year, month); err != nil {
		return nil, err
	}
	if err := validateCategories(categories); err != nil {
		return nil, err
	}

	cleaned := make([]models.BudgetCategory, len(categories))
	for i, c := range categories {
		cleaned[i] = models.BudgetCategory{Name: strings.TrimSpace(c.Name), Amount: c.Amount}
	}

	budget := &models.Budget{UserID: userID, Year: year, Month: month, Categories: cleaned}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"categories", "total_amount", "updated_at"}),
	}).Create(budget).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.find(s.db, userID, year, month)
}

// UpsertCategoryAmount sets the amount of one category, appending it when
// the budget has no category of that name. Names match case-insensitively.
func (s *budgetService) UpsertCategoryAmount(userID string, year, month int, name string, amount float64) (*models.Budget, error) {
	if err := ValidatePeriod(year, month); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	var fields []apperrors.FieldError
	if name == "" {
		fields = append(fields, apperrors.Field("categoryName", "is required"))
	}
	if fe := validateAmount("amount", amount); fe != nil {
		fields = append(fields, *fe)
	}
	if len(fields) > 0 {
		return nil, apperrors.Invalid(fields...)
	}

	var result *models.Budget
	err := s.db.Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		budget, err := s.find(q, userID, year, month)
		if err != nil {
			return err
		}

		key := planner.NormalizeKey(name)
		found := false
		for i := range budget.Categories {
			if planner.NormalizeKey(budget.Categories[i].Name) == key {
				budget.Categories[i].Amount = amount
				found = true
				break
			}
		}
		if !found {
			budget.Categories = append(budget.Categories, models.BudgetCategory{Name: name, Amount: amount})
		}

		if err := tx.Save(budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result = budget
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteBudget removes the budget for (year, month).
func (s *budgetService) DeleteBudget(userID string, year, month int) error {
	if err := ValidatePeriod(year, month); err != nil {
		return err
	}
	res := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).Delete(&models.Budget{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}
