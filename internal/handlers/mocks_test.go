package handlers

import (
	"time"

	"finmentor/internal/models"
	"finmentor/internal/pagination"
	"finmentor/internal/planner"
	"finmentor/internal/services"
)

// --- mock services ---

type mockUserService struct {
	createUserFn            func(email, password, firstName, lastName string) (*models.User, error)
	getUserByEmailFn        func(email string) (*models.User, error)
	getUserByIDFn           func(id string) (*models.User, error)
	verifyPasswordFn        func(user *models.User, password string) bool
	attemptLoginFn          func(email, password string) (*models.User, error)
	storeRefreshTokenHashFn func(userID string, tokenHash string) error
	getRefreshTokenHashFn   func(userID string) (string, error)
}

var _ services.UserServicer = (*mockUserService)(nil)

func (m *mockUserService) CreateUser(email, password, firstName, lastName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, firstName, lastName)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{Base: models.Base{ID: id}}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) StoreRefreshTokenHash(userID string, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(userID, tokenHash)
	}
	return nil
}

func (m *mockUserService) GetRefreshTokenHash(userID string) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(userID)
	}
	return "", nil
}

type auditCall struct {
	userID, action, resourceType, resourceID string
}

type mockAuditService struct {
	calls []auditCall
}

var _ services.AuditServicer = (*mockAuditService)(nil)

func (m *mockAuditService) Log(userID, action, resourceType, resourceID, _ string, _ map[string]any) {
	m.calls = append(m.calls, auditCall{userID, action, resourceType, resourceID})
}

type mockBudgetService struct {
	getBudgetFn            func(userID string, year, month int) (*models.Budget, error)
	listBudgetsFn          func(userID string) ([]models.Budget, error)
	upsertBudgetFn         func(userID string, year, month int, categories []models.BudgetCategory) (*models.Budget, error)
	upsertCategoryAmountFn func(userID string, year, month int, name string, amount float64) (*models.Budget, error)
	deleteBudgetFn         func(userID string, year, month int) error
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func (m *mockBudgetService) GetBudget(userID string, year, month int) (*models.Budget, error) {
	if m.getBudgetFn != nil {
		return m.getBudgetFn(userID, year, month)
	}
	return &models.Budget{UserID: userID, Year: year, Month: month}, nil
}

func (m *mockBudgetService) ListBudgets(userID string) ([]models.Budget, error) {
	if m.listBudgetsFn != nil {
		return m.listBudgetsFn(userID)
	}
	return []models.Budget{}, nil
}

func (m *mockBudgetService) UpsertBudget(userID string, year, month int, categories []models.BudgetCategory) (*models.Budget, error) {
	if m.upsertBudgetFn != nil {
		return m.upsertBudgetFn(userID, year, month, categories)
	}
	return &models.Budget{UserID: userID, Year: year, Month: month, Categories: categories}, nil
}

func (m *mockBudgetService) UpsertCategoryAmount(userID string, year, month int, name string, amount float64) (*models.Budget, error) {
	if m.upsertCategoryAmountFn != nil {
		return m.upsertCategoryAmountFn(userID, year, month, name, amount)
	}
	return &models.Budget{UserID: userID, Year: year, Month: month}, nil
}

func (m *mockBudgetService) DeleteBudget(userID string, year, month int) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(userID, year, month)
	}
	return nil
}

type mockGoalService struct {
	listGoalsFn           func(userID string, filter services.GoalFilter, page pagination.PageRequest) (*services.GoalPage, error)
	getGoalFn             func(userID, goalID string) (*models.Goal, error)
	createGoalFn          func(userID string, in services.GoalInput) (*models.Goal, error)
	updateGoalFn          func(userID, goalID string, patch services.GoalPatch) (*models.Goal, error)
	deleteGoalFn          func(userID, goalID string) error
	updateCurrentAmountFn func(userID, goalID string, amount float64) (*models.Goal, error)
	summaryStatsFn        func(userID string, status *models.GoalStatus) (*services.GoalStats, error)
	activeGoalsFn         func(userID string) ([]models.Goal, error)
}

var _ services.GoalServicer = (*mockGoalService)(nil)

func (m *mockGoalService) ListGoals(userID string, filter services.GoalFilter, page pagination.PageRequest) (*services.GoalPage, error) {
	if m.listGoalsFn != nil {
		return m.listGoalsFn(userID, filter, page)
	}
	return &services.GoalPage{Goals: []models.Goal{}}, nil
}

func (m *mockGoalService) GetGoal(userID, goalID string) (*models.Goal, error) {
	if m.getGoalFn != nil {
		return m.getGoalFn(userID, goalID)
	}
	return &models.Goal{Base: models.Base{ID: goalID}, UserID: userID}, nil
}

func (m *mockGoalService) CreateGoal(userID string, in services.GoalInput) (*models.Goal, error) {
	if m.createGoalFn != nil {
		return m.createGoalFn(userID, in)
	}
	return &models.Goal{UserID: userID, Name: in.Name}, nil
}

func (m *mockGoalService) UpdateGoal(userID, goalID string, patch services.GoalPatch) (*models.Goal, error) {
	if m.updateGoalFn != nil {
		return m.updateGoalFn(userID, goalID, patch)
	}
	return &models.Goal{Base: models.Base{ID: goalID}, UserID: userID}, nil
}

func (m *mockGoalService) DeleteGoal(userID, goalID string) error {
	if m.deleteGoalFn != nil {
		return m.deleteGoalFn(userID, goalID)
	}
	return nil
}

func (m *mockGoalService) UpdateCurrentAmount(userID, goalID string, amount float64) (*models.Goal, error) {
	if m.updateCurrentAmountFn != nil {
		return m.updateCurrentAmountFn(userID, goalID, amount)
	}
	return &models.Goal{Base: models.Base{ID: goalID}, UserID: userID, CurrentAmount: amount}, nil
}

func (m *mockGoalService) SummaryStats(userID string, status *models.GoalStatus) (*services.GoalStats, error) {
	if m.summaryStatsFn != nil {
		return m.summaryStatsFn(userID, status)
	}
	return &services.GoalStats{}, nil
}

func (m *mockGoalService) ActiveGoals(userID string) ([]models.Goal, error) {
	if m.activeGoalsFn != nil {
		return m.activeGoalsFn(userID)
	}
	return []models.Goal{}, nil
}

type mockTransactionService struct {
	createTransactionFn func(userID string, in services.TransactionInput) (*models.Transaction, error)
	listTransactionsFn  func(userID string, filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	getTransactionFn    func(userID, transactionID string) (*models.Transaction, error)
	deleteTransactionFn func(userID, transactionID string) error
	summaryFn           func(userID string, from, to time.Time) (*services.TransactionSummary, error)
	categorySpendingFn  func(userID string, from, to time.Time) (map[string]float64, error)
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func (m *mockTransactionService) CreateTransaction(userID string, in services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, in)
	}
	return &models.Transaction{UserID: userID, Type: in.Type, Category: in.Category, Amount: in.Amount}, nil
}

func (m *mockTransactionService) ListTransactions(userID string, filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(userID, filter, page)
	}
	resp := pagination.NewPageResponse[models.Transaction](nil, page, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransaction(userID, transactionID string) (*models.Transaction, error) {
	if m.getTransactionFn != nil {
		return m.getTransactionFn(userID, transactionID)
	}
	return &models.Transaction{Base: models.Base{ID: transactionID}, UserID: userID}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, transactionID string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return nil
}

func (m *mockTransactionService) Summary(userID string, from, to time.Time) (*services.TransactionSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(userID, from, to)
	}
	return &services.TransactionSummary{From: from, To: to, CategoryBreakdown: []services.CategoryTotal{}}, nil
}

func (m *mockTransactionService) CategorySpending(userID string, from, to time.Time) (map[string]float64, error) {
	if m.categorySpendingFn != nil {
		return m.categorySpendingFn(userID, from, to)
	}
	return map[string]float64{}, nil
}

type mockProfileService struct {
	getProfileFn    func(userID string) (*models.FinancialProfile, error)
	upsertProfileFn func(userID string, monthlyIncome float64, loans []models.Loan) (*models.FinancialProfile, error)
}

var _ services.ProfileServicer = (*mockProfileService)(nil)

func (m *mockProfileService) GetProfile(userID string) (*models.FinancialProfile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(userID)
	}
	return &models.FinancialProfile{UserID: userID, Loans: []models.Loan{}, IsDefault: true}, nil
}

func (m *mockProfileService) UpsertProfile(userID string, monthlyIncome float64, loans []models.Loan) (*models.FinancialProfile, error) {
	if m.upsertProfileFn != nil {
		return m.upsertProfileFn(userID, monthlyIncome, loans)
	}
	return &models.FinancialProfile{UserID: userID, MonthlyIncome: monthlyIncome, Loans: loans}, nil
}

type mockPlannerService struct {
	breakdownFn func(userID string, year, month int) (*services.BudgetBreakdown, error)
	insightsFn  func(userID string, now time.Time) (*planner.Report, error)
}

var _ services.PlannerServicer = (*mockPlannerService)(nil)

func (m *mockPlannerService) Breakdown(userID string, year, month int) (*services.BudgetBreakdown, error) {
	if m.breakdownFn != nil {
		return m.breakdownFn(userID, year, month)
	}
	return &services.BudgetBreakdown{Year: year, Month: month, Categories: []planner.CategoryView{}}, nil
}

func (m *mockPlannerService) Insights(userID string, now time.Time) (*planner.Report, error) {
	if m.insightsFn != nil {
		return m.insightsFn(userID, now)
	}
	return &planner.Report{}, nil
}
