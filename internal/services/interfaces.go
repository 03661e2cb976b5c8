package services

import (
	"time"

	"finmentor/internal/models"
	"finmentor/internal/optional"
	"finmentor/internal/pagination"
	"finmentor/internal/planner"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID string, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// BudgetServicer defines the contract for monthly budgets. A budget is
// addressed by (user, year, month).
type BudgetServicer interface {
	GetBudget(userID string, year, month int) (*models.Budget, error)
	ListBudgets(userID string) ([]models.Budget, error)
	UpsertBudget(userID string, year, month int, categories []models.BudgetCategory) (*models.Budget, error)
	UpsertCategoryAmount(userID string, year, month int, name string, amount float64) (*models.Budget, error)
	DeleteBudget(userID string, year, month int) error
}

// GoalFilter holds optional filters for listing goals.
type GoalFilter struct {
	Status   *models.GoalStatus
	Category *models.GoalCategory
	Priority *models.GoalPriority
}

// GoalInput holds the fields for a new goal. Zero Priority means medium.
type GoalInput struct {
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	Deadline      time.Time
	Category      models.GoalCategory
	Description   string
	Priority      models.GoalPriority
	Tags          []string
}

// GoalPatch lists the goal fields to change. Unset fields are left alone.
type GoalPatch struct {
	Name          optional.Value[string]
	TargetAmount  optional.Value[float64]
	CurrentAmount optional.Value[float64]
	Deadline      optional.Value[time.Time]
	Category      optional.Value[models.GoalCategory]
	Description   optional.Value[string]
	Priority      optional.Value[models.GoalPriority]
	Status        optional.Value[models.GoalStatus]
	Tags          optional.Value[[]string]
}

// GoalPagination is the pagination block of a goal listing.
type GoalPagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalGoals  int64 `json:"totalGoals"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// GoalPage is one page of goals.
type GoalPage struct {
	Goals      []models.Goal  `json:"goals"`
	Pagination GoalPagination `json:"pagination"`
}

// GoalSummary aggregates every goal matching a stats filter.
type GoalSummary struct {
	TotalGoals           int64   `json:"totalGoals"`
	TotalTargetAmount    float64 `json:"totalTargetAmount"`
	TotalCurrentAmount   float64 `json:"totalCurrentAmount"`
	AvgProgress          float64 `json:"avgProgress"`
	TotalRemainingAmount float64 `json:"totalRemainingAmount"`
}

// GoalCategoryStats aggregates goals of one category.
type GoalCategoryStats struct {
	Category           models.GoalCategory `json:"category"`
	Count              int64               `json:"count"`
	TotalTargetAmount  float64             `json:"totalTargetAmount"`
	TotalCurrentAmount float64             `json:"totalCurrentAmount"`
}

// GoalPriorityStats aggregates goals of one priority.
type GoalPriorityStats struct {
	Priority           models.GoalPriority `json:"priority"`
	Count              int64               `json:"count"`
	TotalTargetAmount  float64             `json:"totalTargetAmount"`
	TotalCurrentAmount float64             `json:"totalCurrentAmount"`
}

// GoalStats is the response of the goal statistics summary.
type GoalStats struct {
	Summary           GoalSummary         `json:"summary"`
	CategoryBreakdown []GoalCategoryStats `json:"categoryBreakdown"`
	PriorityBreakdown []GoalPriorityStats `json:"priorityBreakdown"`
}

// GoalServicer defines the contract for savings goals.
type GoalServicer interface {
	ListGoals(userID string, filter GoalFilter, page pagination.PageRequest) (*GoalPage, error)
	GetGoal(userID, goalID string) (*models.Goal, error)
	CreateGoal(userID string, in GoalInput) (*models.Goal, error)
	UpdateGoal(userID, goalID string, patch GoalPatch) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
	UpdateCurrentAmount(userID, goalID string, amount float64) (*models.Goal, error)
	SummaryStats(userID string, status *models.GoalStatus) (*GoalStats, error)
	ActiveGoals(userID string) ([]models.Goal, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
	Category string
}

// TransactionInput holds the fields for a new transaction. A zero Date means now.
type TransactionInput struct {
	Type        models.TransactionType
	Category    string
	Amount      float64
	Description string
	Date        time.Time
}

// CategoryTotal is the total of one (category, type) pair.
type CategoryTotal struct {
	Category string                 `json:"category"`
	Type     models.TransactionType `json:"type"`
	Total    float64                `json:"total"`
	Count    int64                  `json:"count"`
}

// TransactionSummary aggregates transactions over a date range.
type TransactionSummary struct {
	From              time.Time       `json:"from"`
	To                time.Time       `json:"to"`
	TotalIncome       float64         `json:"totalIncome"`
	TotalExpense      float64         `json:"totalExpense"`
	Net               float64         `json:"net"`
	CategoryBreakdown []CategoryTotal `json:"categoryBreakdown"`
}

// SpendingSummarizer supplies per-category spending for a period. Keys are
// lower-cased category names; income categories are never included.
type SpendingSummarizer interface {
	CategorySpending(userID string, from, to time.Time) (map[string]float64, error)
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	SpendingSummarizer
	CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error)
	ListTransactions(userID string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransaction(userID, transactionID string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	Summary(userID string, from, to time.Time) (*TransactionSummary, error)
}

// FinancialProfileProvider supplies the income and loans the planner runs on.
type FinancialProfileProvider interface {
	GetProfile(userID string) (*models.FinancialProfile, error)
}

// ProfileServicer reads and stores financial profiles.
type ProfileServicer interface {
	FinancialProfileProvider
	UpsertProfile(userID string, monthlyIncome float64, loans []models.Loan) (*models.FinancialProfile, error)
}

// BudgetBreakdown is the budget-vs-spend view of one month.
type BudgetBreakdown struct {
	Year          int                    `json:"year"`
	Month         int                    `json:"month"`
	HasBudget     bool                   `json:"hasBudget"`
	Categories    []planner.CategoryView `json:"categories"`
	TotalBudgeted float64                `json:"totalBudgeted"`
	TotalSpent    float64                `json:"totalSpent"`
	Degraded      bool                   `json:"degraded"`
}

// PlannerServicer builds the planner dashboard.
type PlannerServicer interface {
	Breakdown(userID string, year, month int) (*BudgetBreakdown, error)
	Insights(userID string, now time.Time) (*planner.Report, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
