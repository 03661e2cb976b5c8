package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finmentor/internal/services"
)

// PlannerHandler serves the planner dashboard.
type PlannerHandler struct {
	plannerService services.PlannerServicer
	now            func() time.Time
}

// NewPlannerHandler creates a new PlannerHandler.
func NewPlannerHandler(plannerService services.PlannerServicer) *PlannerHandler {
	return &PlannerHandler{plannerService: plannerService, now: time.Now}
}

// Breakdown returns the budget-vs-spend view of one month
// @Summary     Budget breakdown
// @Description Budgeted and spent amounts per category for a month. Defaults to the current month. A degraded flag marks a view that could not be computed.
// @Tags        planner
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int false "Year (default current)"
// @Param       month query int false "Month 1-12 (default current)"
// @Success     200 {object} services.BudgetBreakdown "Breakdown"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /planner/breakdown [get]
func (h *PlannerHandler) Breakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := h.now().UTC()
	year, month := now.Year(), int(now.Month())
	if raw := c.Query("year"); raw != "" {
		if year, err = parseIntParam("year", raw); err != nil {
			respondWithError(c, err)
			return
		}
	}
	if raw := c.Query("month"); raw != "" {
		if month, err = parseIntParam("month", raw); err != nil {
			respondWithError(c, err)
			return
		}
	}

	view, err := h.plannerService.Breakdown(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Insights returns debt insights and per-goal recommendations
// @Summary     Planner insights
// @Description Debt-to-income analysis, rule-based insights and a recommendation for every active goal
// @Tags        planner
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} planner.Report "Insights"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planner/insights [get]
func (h *PlannerHandler) Insights(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.plannerService.Insights(userID, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
