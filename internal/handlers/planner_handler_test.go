package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finmentor/internal/errors"
	"finmentor/internal/planner"
	"finmentor/internal/services"
)

var fixedNow = time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC)

func setupPlannerRouter(svc services.PlannerServicer) *gin.Engine {
	h := NewPlannerHandler(svc)
	h.now = func() time.Time { return fixedNow }
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/planner/breakdown", h.Breakdown)
	auth.GET("/planner/insights", h.Insights)
	return r
}

func TestPlannerHandler_Breakdown(t *testing.T) {
	t.Run("defaults to current month", func(t *testing.T) {
		var gotYear, gotMonth int
		svc := &mockPlannerService{
			breakdownFn: func(_ string, year, month int) (*services.BudgetBreakdown, error) {
				gotYear, gotMonth = year, month
				return &services.BudgetBreakdown{Year: year, Month: month, Categories: []planner.CategoryView{}}, nil
			},
		}
		r := setupPlannerRouter(svc)

		rec := doRequest(r, "GET", "/planner/breakdown", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotYear != 2024 || gotMonth != 5 {
			t.Errorf("expected 2024-5, got %d-%d", gotYear, gotMonth)
		}
	})

	t.Run("passes explicit period", func(t *testing.T) {
		var gotMonth int
		svc := &mockPlannerService{
			breakdownFn: func(_ string, year, month int) (*services.BudgetBreakdown, error) {
				gotMonth = month
				return &services.BudgetBreakdown{Year: year, Month: month, Degraded: true, Categories: []planner.CategoryView{}}, nil
			},
		}
		r := setupPlannerRouter(svc)

		rec := doRequest(r, "GET", "/planner/breakdown?year=2023&month=11", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonth != 11 {
			t.Errorf("expected month 11, got %d", gotMonth)
		}
		if parseJSON(t, rec)["degraded"] != true {
			t.Error("expected degraded flag in body")
		}
	})

	t.Run("returns 400 on non-integer month", func(t *testing.T) {
		r := setupPlannerRouter(&mockPlannerService{})

		rec := doRequest(r, "GET", "/planner/breakdown?month=may", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("surfaces period validation", func(t *testing.T) {
		svc := &mockPlannerService{
			breakdownFn: func(string, int, int) (*services.BudgetBreakdown, error) {
				return nil, apperrors.Invalid(apperrors.Field("month", "must be between 1 and 12"))
			},
		}
		r := setupPlannerRouter(svc)

		rec := doRequest(r, "GET", "/planner/breakdown?month=13", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPlannerHandler_Insights(t *testing.T) {
	var gotNow time.Time
	svc := &mockPlannerService{
		insightsFn: func(_ string, now time.Time) (*planner.Report, error) {
			gotNow = now
			return &planner.Report{MonthlyIncome: 85000, Insights: []planner.Insight{{Kind: planner.KindSuccess}}}, nil
		},
	}
	r := setupPlannerRouter(svc)

	rec := doRequest(r, "GET", "/planner/insights", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !gotNow.Equal(fixedNow) {
		t.Errorf("expected handler clock, got %v", gotNow)
	}
	if body := parseJSON(t, rec); body["monthlyIncome"] != 85000.0 {
		t.Errorf("unexpected body %v", body)
	}
}
