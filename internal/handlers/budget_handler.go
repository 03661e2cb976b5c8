package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finmentor/internal/models"
	"finmentor/internal/services"
)

// BudgetHandler handles monthly budget requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// BudgetCategoryRequest is one category line of a budget.
type BudgetCategoryRequest struct {
	Name   string   `json:"name" binding:"required,max=100"`
	Amount *float64 `json:"amount" binding:"required,gte=0"`
}

// UpsertBudgetRequest represents the payload for creating or replacing a month's budget.
type UpsertBudgetRequest struct {
	Year       int                     `json:"year" binding:"required"`
	Month      int                     `json:"month" binding:"required,min=1,max=12"`
	Categories []BudgetCategoryRequest `json:"categories" binding:"required,min=1,dive"`
}

// CategoryAmountRequest sets the amount of one budget category.
type CategoryAmountRequest struct {
	Amount *float64 `json:"amount" binding:"required,gte=0"`
}

// GetBudget returns the budget of one month.
// @Summary     Get a monthly budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       year  path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {object} models.Budget
// @Failure     400 {object} ErrorResponse "Invalid year or month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{year}/{month} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudget(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// ListBudgets returns the user's twelve most recent budgets.
// @Summary     List budgets
// @Description Up to 12 most recent budgets, newest month first
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Budget
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.ListBudgets(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// UpsertBudget creates a month's budget or replaces its categories.
// @Summary     Create or replace a monthly budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpsertBudgetRequest true "Budget"
// @Success     200 {object} models.Budget
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) UpsertBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpsertBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	categories := make([]models.BudgetCategory, len(req.Categories))
	for i, cat := range req.Categories {
		categories[i] = models.BudgetCategory{Name: cat.Name, Amount: *cat.Amount}
	}

	budget, err := h.budgetService.UpsertBudget(userID, req.Year, req.Month, categories)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "upsert", "budget", budget.ID, c.ClientIP(),
		map[string]any{"year": req.Year, "month": req.Month, "totalAmount": budget.TotalAmount})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpsertCategoryAmount sets the amount of one category in a month's budget.
// @Summary     Set a budget category amount
// @Description Overwrites the named category (case-insensitive) or appends it
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year         path int    true "Year"
// @Param       month        path int    true "Month (1-12)"
// @Param       categoryName path string true "Category name"
// @Param       request      body CategoryAmountRequest true "Amount"
// @Success     200 {object} models.Budget
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{year}/{month}/category/{categoryName} [put]
func (h *BudgetHandler) UpsertCategoryAmount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	name := c.Param("categoryName")

	var req CategoryAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	budget, err := h.budgetService.UpsertCategoryAmount(userID, year, month, name, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "update", "budget", budget.ID, c.ClientIP(),
		map[string]any{"category": name, "amount": *req.Amount})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget removes a month's budget.
// @Summary     Delete a monthly budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       year  path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Invalid year or month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{year}/{month} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(userID, year, month); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "delete", "budget", "", c.ClientIP(),
		map[string]any{"year": year, "month": month})

	c.JSON(http.StatusOK, MessageResponse{Message: "Budget deleted successfully"})
}
