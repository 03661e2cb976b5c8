package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finmentor/internal/models"
	"finmentor/internal/services"
)

// ProfileHandler serves financial profiles to users and to the ingestion
// pipeline.
type ProfileHandler struct {
	profileService services.ProfileServicer
	auditService   services.AuditServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer, auditService services.AuditServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, auditService: auditService}
}

// LoanRequest is one loan in a profile update.
type LoanRequest struct {
	Name             string  `json:"name" binding:"required,max=100"`
	Principal        float64 `json:"principal" binding:"gte=0"`
	RemainingBalance float64 `json:"remainingBalance" binding:"gte=0"`
	EMIAmount        float64 `json:"emiAmount" binding:"gte=0"`
	InterestRate     float64 `json:"interestRate" binding:"gte=0,lte=100"`
	Tenure           int     `json:"tenure" binding:"gte=0"`
	RemainingTenure  int     `json:"remainingTenure" binding:"gte=0"`
}

// UpsertProfileRequest replaces a user's financial profile.
type UpsertProfileRequest struct {
	MonthlyIncome *float64      `json:"monthlyIncome" binding:"required,gte=0"`
	Loans         []LoanRequest `json:"loans" binding:"max=50,dive"`
}

func (r *UpsertProfileRequest) loans() []models.Loan {
	out := make([]models.Loan, 0, len(r.Loans))
	for _, l := range r.Loans {
		out = append(out, models.Loan{
			Name:             l.Name,
			Principal:        l.Principal,
			RemainingBalance: l.RemainingBalance,
			EMIAmount:        l.EMIAmount,
			InterestRate:     l.InterestRate,
			Tenure:           l.Tenure,
			RemainingTenure:  l.RemainingTenure,
		})
	}
	return out
}

// GetFinancialProfile returns the caller's financial profile
// @Summary     Get financial profile
// @Description Income and loans used by the planner. Users without a stored profile get the default one, flagged isDefault.
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]models.FinancialProfile "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile/financial [get]
func (h *ProfileHandler) GetFinancialProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateFinancialProfile replaces the caller's financial profile
// @Summary     Update financial profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpsertProfileRequest true "Profile"
// @Success     200 {object} map[string]models.FinancialProfile "Profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile/financial [put]
func (h *ProfileHandler) UpdateFinancialProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.upsert(c, userID, userID)
}

// IngestProfile stores a profile delivered by the ingestion pipeline
// @Summary     Ingest financial profile
// @Description Pipeline endpoint authenticated by X-API-Key
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       userId  path string               true "User ID"
// @Param       request body UpsertProfileRequest true "Profile"
// @Success     200 {object} map[string]models.FinancialProfile "Profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     503 {object} ErrorResponse "Pipeline not configured"
// @Router      /pipeline/profiles/{userId} [put]
func (h *ProfileHandler) IngestProfile(c *gin.Context) {
	userID := c.Param("userId")
	h.upsert(c, userID, "pipeline")
}

func (h *ProfileHandler) upsert(c *gin.Context, userID, actor string) {
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	profile, err := h.profileService.UpsertProfile(userID, *req.MonthlyIncome, req.loans())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "upsert", "financial_profile", profile.ID, c.ClientIP(),
		map[string]any{"actor": actor, "monthlyIncome": profile.MonthlyIncome, "loans": len(profile.Loans)})

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
