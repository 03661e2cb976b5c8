package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finmentor/internal/models"
	"finmentor/internal/pagination"
	"finmentor/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Type        string   `json:"type" binding:"required,transaction_type"`
	Category    string   `json:"category" binding:"required,max=100"`
	Amount      *float64 `json:"amount" binding:"required,gt=0"`
	Description string   `json:"description" binding:"max=500"`
	Date        string   `json:"date"`
}

// ListTransactionsQuery holds the paging parameters of ListTransactions.
// Filters are read separately by parseTransactionFilter.
type ListTransactionsQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record an income or expense entry. The date defaults to now.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} map[string]models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	var date time.Time
	if req.Date != "" {
		date, err = parseDate("date", req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
	}

	transaction, err := h.transactionService.CreateTransaction(userID, services.TransactionInput{
		Type:        models.TransactionType(req.Type),
		Category:    req.Category,
		Amount:      *req.Amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create", "transaction", transaction.ID, c.ClientIP(),
		map[string]any{"type": transaction.Type, "amount": transaction.Amount, "category": transaction.Category})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions handles the retrieval of the user's transactions
// @Summary     List transactions
// @Description Get a paginated list of the user's transactions, newest first, with optional filters
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page     query int    false "Page number (default 1)"
// @Param       limit    query int    false "Items per page (default 10, max 100)"
// @Param       from     query string false "Earliest date (YYYY-MM-DD or RFC3339)"
// @Param       to       query string false "Latest date, inclusive (YYYY-MM-DD or RFC3339)"
// @Param       type     query string false "income or expense"
// @Param       category query string false "Category key"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ListTransactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	page := pagination.PageRequest{Page: q.Page, Limit: q.Limit}
	page.Defaults()

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	from, err := parseOptionalDate("from", c.Query("from"))
	if err != nil {
		return filter, err
	}
	filter.FromDate = from

	if raw := c.Query("to"); raw != "" {
		to, err := parseDate("to", raw)
		if err != nil {
			return filter, err
		}
		// A bare date covers the whole day.
		if isDateOnly(raw) {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		filter.ToDate = &to
	}

	if v := c.Query("type"); v != "" {
		txType, err := models.ParseTransactionType(v)
		if err != nil {
			return filter, bindError(err)
		}
		filter.Type = &txType
	}

	filter.Category = c.Query("category")
	return filter, nil
}

// summaryRange reads the from/to query of the summary endpoint as a
// half-open range. It defaults to the current calendar month.
func summaryRange(c *gin.Context, now time.Time) (from, to time.Time, err error) {
	now = now.UTC()
	from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, 0)

	if raw := c.Query("from"); raw != "" {
		if from, err = parseDate("from", raw); err != nil {
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = parseDate("to", raw); err != nil {
			return
		}
		if isDateOnly(raw) {
			to = to.AddDate(0, 0, 1)
		}
	}
	return from, to, nil
}

func isDateOnly(raw string) bool {
	return len(raw) == len(dateLayout)
}

// TransactionSummary totals the user's transactions over a period
// @Summary     Transaction summary
// @Description Income, expense and net totals plus a per-category breakdown. Defaults to the current month.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       from query string false "Start date (YYYY-MM-DD or RFC3339)"
// @Param       to   query string false "End date, inclusive for YYYY-MM-DD (YYYY-MM-DD or RFC3339)"
// @Success     200 {object} services.TransactionSummary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/summary [get]
func (h *TransactionHandler) TransactionSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	from, to, err := summaryRange(c, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.transactionService.Summary(userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetTransaction handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]models.Transaction "Transaction details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransaction(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID := c.Param("id")
	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "delete", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted successfully"})
}
