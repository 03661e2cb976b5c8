package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finmentor/internal/models"
	"finmentor/internal/optional"
	"finmentor/internal/pagination"
	"finmentor/internal/services"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	Name          string   `json:"name" binding:"required,max=200"`
	TargetAmount  *float64 `json:"targetAmount" binding:"required,gte=0"`
	CurrentAmount *float64 `json:"currentAmount" binding:"omitempty,gte=0"`
	Deadline      string   `json:"deadline" binding:"required"`
	Category      string   `json:"category" binding:"required,goal_category"`
	Description   string   `json:"description" binding:"max=1000"`
	Priority      string   `json:"priority" binding:"omitempty,goal_priority"`
	Tags          []string `json:"tags" binding:"max=20,dive,max=50"`
}

// UpdateGoalRequest lists the goal fields to change. Absent or null fields
// are left untouched.
type UpdateGoalRequest struct {
	Name          optional.Value[string]              `json:"name" swaggertype:"string"`
	TargetAmount  optional.Value[float64]             `json:"targetAmount" swaggertype:"number"`
	CurrentAmount optional.Value[float64]             `json:"currentAmount" swaggertype:"number"`
	Deadline      optional.Value[string]              `json:"deadline" swaggertype:"string"`
	Category      optional.Value[models.GoalCategory] `json:"category" swaggertype:"string"`
	Description   optional.Value[string]              `json:"description" swaggertype:"string"`
	Priority      optional.Value[models.GoalPriority] `json:"priority" swaggertype:"string"`
	Status        optional.Value[models.GoalStatus]   `json:"status" swaggertype:"string"`
	Tags          optional.Value[[]string]            `json:"tags" swaggertype:"array,string"`
}

// UpdateAmountRequest replaces a goal's saved amount.
type UpdateAmountRequest struct {
	Amount *float64 `json:"amount" binding:"required,gte=0"`
}

// ListGoalsQuery holds the filters and paging accepted by ListGoals.
// Out-of-range page and limit values are clamped rather than rejected.
type ListGoalsQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Status   string `form:"status" binding:"omitempty,goal_status"`
	Category string `form:"category" binding:"omitempty,goal_category"`
	Priority string `form:"priority" binding:"omitempty,goal_priority"`
}

// GoalStatsQuery holds the optional status filter of the stats summary.
type GoalStatsQuery struct {
	Status string `form:"status" binding:"omitempty,goal_status"`
}

func (r *UpdateGoalRequest) toPatch() (services.GoalPatch, error) {
	patch := services.GoalPatch{
		Name:          r.Name,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		Category:      r.Category,
		Description:   r.Description,
		Priority:      r.Priority,
		Status:        r.Status,
		Tags:          r.Tags,
	}
	if raw, ok := r.Deadline.Get(); ok {
		d, err := parseDate("deadline", raw)
		if err != nil {
			return services.GoalPatch{}, err
		}
		patch.Deadline = optional.Some(d)
	}
	return patch, nil
}

func enumPtr[T ~string](s string) *T {
	if s == "" {
		return nil
	}
	v := T(s)
	return &v
}

// ListGoals returns a filtered page of the user's goals
// @Summary     List goals
// @Description List goals newest first, optionally filtered by status, category and priority
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       status   query string false "Goal status"
// @Param       category query string false "Goal category"
// @Param       priority query string false "Goal priority"
// @Param       page     query int    false "Page number (default 1)"
// @Param       limit    query int    false "Page size (default 10, max 100)"
// @Success     200 {object} services.GoalPage "Goals page"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ListGoalsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	page := pagination.PageRequest{Page: q.Page, Limit: q.Limit}
	page.Defaults()

	filter := services.GoalFilter{
		Status:   enumPtr[models.GoalStatus](q.Status),
		Category: enumPtr[models.GoalCategory](q.Category),
		Priority: enumPtr[models.GoalPriority](q.Priority),
	}
	result, err := h.goalService.ListGoals(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGoal returns a single goal
// @Summary     Get goal
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} map[string]models.Goal "Goal"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoal(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// CreateGoal creates a savings goal
// @Summary     Create goal
// @Description Create a savings goal. Priority defaults to medium and status to active.
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} map[string]models.Goal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	deadline, err := parseDate("deadline", req.Deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	in := services.GoalInput{
		Name:         req.Name,
		TargetAmount: *req.TargetAmount,
		Deadline:     deadline,
		Category:     models.GoalCategory(req.Category),
		Description:  req.Description,
		Priority:     models.GoalPriority(req.Priority),
		Tags:         req.Tags,
	}
	if req.CurrentAmount != nil {
		in.CurrentAmount = *req.CurrentAmount
	}

	goal, err := h.goalService.CreateGoal(userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create", "goal", goal.ID, c.ClientIP(),
		map[string]any{"name": goal.Name, "targetAmount": goal.TargetAmount, "category": goal.Category})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// UpdateGoal applies a partial update to a goal
// @Summary     Update goal
// @Description Change only the fields present in the body. An empty description is allowed; an empty name is not.
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Goal ID"
// @Param       request body UpdateGoalRequest true "Fields to change"
// @Success     200 {object} map[string]models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.UpdateGoal(userID, c.Param("id"), patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "update", "goal", goal.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal removes a goal
// @Summary     Delete goal
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID := c.Param("id")
	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "delete", "goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Goal deleted successfully"})
}

// UpdateGoalAmount replaces the amount saved towards a goal
// @Summary     Update saved amount
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Goal ID"
// @Param       request body UpdateAmountRequest true "New saved amount"
// @Success     200 {object} map[string]models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/amount [put]
func (h *GoalHandler) UpdateGoalAmount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	goal, err := h.goalService.UpdateCurrentAmount(userID, c.Param("id"), *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "update", "goal", goal.ID, c.ClientIP(),
		map[string]any{"currentAmount": goal.CurrentAmount})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// GoalStats returns aggregate statistics over the user's goals
// @Summary     Goal statistics
// @Description Totals, average progress and category/priority breakdowns
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       status query string false "Only include goals with this status"
// @Success     200 {object} services.GoalStats "Statistics"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/stats/summary [get]
func (h *GoalHandler) GoalStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q GoalStatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	stats, err := h.goalService.SummaryStats(userID, enumPtr[models.GoalStatus](q.Status))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
