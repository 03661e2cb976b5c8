package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finmentor/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBudget creates a budget for (year, month) with the given categories.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID string, year, month int, categories ...models.BudgetCategory) *models.Budget {
	t.Helper()

	if len(categories) == 0 {
		categories = []models.BudgetCategory{{Name: "food", Amount: 10000}}
	}
	budget := &models.Budget{
		UserID:     userID,
		Year:       year,
		Month:      month,
		Categories: categories,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// GoalOption customizes a fixture goal before it is saved.
type GoalOption func(*models.Goal)

// WithGoalAmounts sets target and current amounts.
func WithGoalAmounts(target, current float64) GoalOption {
	return func(g *models.Goal) {
		g.TargetAmount = target
		g.CurrentAmount = current
	}
}

// WithGoalCategory sets the goal category.
func WithGoalCategory(c models.GoalCategory) GoalOption {
	return func(g *models.Goal) { g.Category = c }
}

// WithGoalPriority sets the goal priority.
func WithGoalPriority(p models.GoalPriority) GoalOption {
	return func(g *models.Goal) { g.Priority = p }
}

// WithGoalStatus sets the goal status.
func WithGoalStatus(s models.GoalStatus) GoalOption {
	return func(g *models.Goal) { g.Status = s }
}

// CreateTestGoal creates an active, medium-priority travel goal.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, opts ...GoalOption) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: 100000,
		Deadline:     time.Now().AddDate(1, 0, 0).UTC().Truncate(time.Second),
		Category:     models.GoalCategoryTravel,
		Priority:     models.GoalPriorityMedium,
		Status:       models.GoalStatusActive,
		Tags:         []string{},
	}
	for _, opt := range opts {
		opt(goal)
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestTransaction creates a transaction of the given type, category and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, category string, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:   userID,
		Type:     txType,
		Category: category,
		Amount:   amount,
		Date:     date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestProfile stores a financial profile for userID.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID string, income float64, loans ...models.Loan) *models.FinancialProfile {
	t.Helper()

	p := &models.FinancialProfile{UserID: userID, MonthlyIncome: income, Loans: loans}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return p
}
