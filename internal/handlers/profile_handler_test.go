package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finmentor/internal/errors"
	"finmentor/internal/models"
)

func setupProfileRouter(handler *ProfileHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/profile/financial", handler.GetFinancialProfile)
	auth.PUT("/profile/financial", handler.UpdateFinancialProfile)
	r.PUT("/pipeline/profiles/:userId", handler.IngestProfile)
	return r
}

func TestProfileHandler_GetFinancialProfile(t *testing.T) {
	r := setupProfileRouter(NewProfileHandler(&mockProfileService{}, &mockAuditService{}))

	rec := doRequest(r, "GET", "/profile/financial", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	profile := parseJSON(t, rec)["profile"].(map[string]interface{})
	if profile["isDefault"] != true || profile["userId"] != testUserID {
		t.Errorf("unexpected profile %v", profile)
	}
}

func TestProfileHandler_UpdateFinancialProfile(t *testing.T) {
	t.Run("returns 200 and stores loans", func(t *testing.T) {
		var gotIncome float64
		var gotLoans []models.Loan
		svc := &mockProfileService{
			upsertProfileFn: func(userID string, income float64, loans []models.Loan) (*models.FinancialProfile, error) {
				gotIncome, gotLoans = income, loans
				return &models.FinancialProfile{Base: models.Base{ID: "p-1"}, UserID: userID, MonthlyIncome: income, Loans: loans}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupProfileRouter(NewProfileHandler(svc, audit))

		rec := doRequest(r, "PUT", "/profile/financial",
			`{"monthlyIncome":90000,"loans":[{"name":"Car Loan","emiAmount":15000,"interestRate":9.2,"tenure":60,"remainingTenure":30}]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotIncome != 90000 || len(gotLoans) != 1 || gotLoans[0].EMIAmount != 15000 {
			t.Errorf("unexpected upsert %v %+v", gotIncome, gotLoans)
		}
		if len(audit.calls) != 1 || audit.calls[0].resourceType != "financial_profile" {
			t.Errorf("unexpected audit calls %+v", audit.calls)
		}
	})

	t.Run("accepts an empty loan list", func(t *testing.T) {
		var gotLoans []models.Loan
		svc := &mockProfileService{
			upsertProfileFn: func(userID string, income float64, loans []models.Loan) (*models.FinancialProfile, error) {
				gotLoans = loans
				return &models.FinancialProfile{UserID: userID, MonthlyIncome: income, Loans: loans}, nil
			},
		}
		r := setupProfileRouter(NewProfileHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/profile/financial", `{"monthlyIncome":0}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotLoans == nil || len(gotLoans) != 0 {
			t.Errorf("expected empty non-nil loans, got %#v", gotLoans)
		}
	})

	t.Run("returns 400 on negative income", func(t *testing.T) {
		r := setupProfileRouter(NewProfileHandler(&mockProfileService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/profile/financial", `{"monthlyIncome":-10}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unnamed loan", func(t *testing.T) {
		r := setupProfileRouter(NewProfileHandler(&mockProfileService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/profile/financial", `{"monthlyIncome":100,"loans":[{"emiAmount":5}]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestProfileHandler_IngestProfile(t *testing.T) {
	t.Run("stores for the path user", func(t *testing.T) {
		var gotUser string
		svc := &mockProfileService{
			upsertProfileFn: func(userID string, income float64, loans []models.Loan) (*models.FinancialProfile, error) {
				gotUser = userID
				return &models.FinancialProfile{UserID: userID, MonthlyIncome: income, Loans: loans}, nil
			},
		}
		r := setupProfileRouter(NewProfileHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/pipeline/profiles/"+testUserID, `{"monthlyIncome":50000,"loans":[]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotUser != testUserID {
			t.Errorf("expected path user, got %q", gotUser)
		}
	})

	t.Run("returns 404 for unknown user", func(t *testing.T) {
		svc := &mockProfileService{
			upsertProfileFn: func(string, float64, []models.Loan) (*models.FinancialProfile, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		r := setupProfileRouter(NewProfileHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/pipeline/profiles/"+testUserID, `{"monthlyIncome":50000}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "USER_NOT_FOUND")
	})
}
