package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "finmentor/internal/errors"
	"finmentor/internal/models"
	"finmentor/internal/pagination"
	"finmentor/internal/planner"
	"finmentor/internal/uuid"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a new income or expense entry.
func (s *transactionService) CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error) {
	var fields []apperrors.FieldError
	if !in.Type.Valid() {
		fields = append(fields, apperrors.Field("type", "must be one of income, expense"))
	}
	category := planner.NormalizeKey(in.Category)
	if category == "" {
		fields = append(fields, apperrors.Field("category", "is required"))
	}
	if fe := validateAmount("amount", in.Amount); fe != nil {
		fields = append(fields, *fe)
	} else if in.Amount == 0 {
		fields = append(fields, apperrors.Field("amount", "must be greater than zero"))
	}
	if len(fields) > 0 {
		return nil, apperrors.Invalid(fields...)
	}

	// Default date to now if not provided
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Type:        in.Type,
		Category:    category,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Date:        date.UTC(),
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// ListTransactions retrieves a paginated, filtered list of the user's transactions.
func (s *transactionService) ListTransactions(userID string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, apperrors.Invalid(apperrors.Field("type", "must be one of income, expense"))
	}
	page.Defaults()

	base := func() *gorm.DB {
		q := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
		return applyTransactionFilters(q, filter)
	}

	var totalItems int64
	if err := base().Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base().Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", f.FromDate.UTC())
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", f.ToDate.UTC())
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if c := planner.NormalizeKey(f.Category); c != "" {
		q = q.Where("category = ?", c)
	}
	return q
}

// GetTransaction retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransaction(userID, transactionID string) (*models.Transaction, error) {
	if !uuid.IsValid(transactionID) {
		return nil, apperrors.ErrTransactionNotFound
	}
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// DeleteTransaction soft-deletes a transaction.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransaction(userID, transactionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func validateRange(from, to time.Time) error {
	if !to.After(from) {
		return apperrors.Invalid(apperrors.Field("to", "must be after from"))
	}
	return nil
}

// Summary totals the user's transactions in [from, to) per type and per
// (category, type), largest totals first.
func (s *transactionService) Summary(userID string, from, to time.Time) (*TransactionSummary, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	rows := []CategoryTotal{}
	err := s.db.Model(&models.Transaction{}).
		Select("category, type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from.UTC(), to.UTC()).
		Group("category, type").
		Order("total DESC, category").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &TransactionSummary{From: from, To: to, CategoryBreakdown: rows}
	for _, r := range rows {
		switch r.Type {
		case models.TransactionTypeIncome:
			summary.TotalIncome += r.Total
		case models.TransactionTypeExpense:
			summary.TotalExpense += r.Total
		}
	}
	summary.Net = summary.TotalIncome - summary.TotalExpense
	return summary, nil
}

// CategorySpending returns expense totals in [from, to) keyed by category.
// Income category keys are dropped even when recorded as expenses.
func (s *transactionService) CategorySpending(userID string, from, to time.Time) (map[string]float64, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	var rows []struct {
		Category string
		Total    float64
	}
	err := s.db.Model(&models.Transaction{}).
		Select("category, COALESCE(SUM(ABS(amount)), 0) AS total").
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?", userID, models.TransactionTypeExpense, from.UTC(), to.UTC()).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	spending := make(map[string]float64, len(rows))
	for _, r := range rows {
		key := planner.NormalizeKey(r.Category)
		if planner.IncomeCategories[key] {
			continue
		}
		spending[key] += r.Total
	}
	return spending, nil
}
