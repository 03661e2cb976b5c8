package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finmentor/internal/taxplan"
)

// TaxEstimateQuery holds the optional estimator inputs. Missing values use
// the sample figures.
type TaxEstimateQuery struct {
	GrossIncome *float64 `form:"grossIncome" binding:"omitempty,gte=0"`
	Section80C  *float64 `form:"section80C" binding:"omitempty,gte=0"`
	Section80D  *float64 `form:"section80D" binding:"omitempty,gte=0"`
}

// TaxEstimateResponse is the estimate plus the tax-saving instruments.
type TaxEstimateResponse struct {
	Estimate taxplan.Estimate `json:"estimate"`
	Options  []taxplan.Option `json:"options"`
}

// TaxEstimate computes the tax position for the supplied figures
// @Summary     Tax estimate
// @Description Slab tax after the standard deduction, 80C and 80D, and the saving available from unused 80C headroom
// @Tags        tax
// @Produce     json
// @Security    BearerAuth
// @Param       grossIncome query number false "Annual gross income (default 850000)"
// @Param       section80C  query number false "80C investments (default 85000)"
// @Param       section80D  query number false "80D premiums (default 15000)"
// @Success     200 {object} TaxEstimateResponse "Estimate"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /tax/estimate [get]
func TaxEstimate(c *gin.Context) {
	var q TaxEstimateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	in := taxplan.DefaultInput()
	if q.GrossIncome != nil {
		in.GrossIncome = *q.GrossIncome
	}
	if q.Section80C != nil {
		in.Section80C = *q.Section80C
	}
	if q.Section80D != nil {
		in.Section80D = *q.Section80D
	}

	c.JSON(http.StatusOK, TaxEstimateResponse{Estimate: taxplan.Calculate(in), Options: taxplan.Options()})
}
