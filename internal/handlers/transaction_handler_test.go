package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finmentor/internal/errors"
	"finmentor/internal/models"
	"finmentor/internal/pagination"
	"finmentor/internal/services"
)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.GET("/transactions", handler.ListTransactions)
	auth.GET("/transactions/summary", handler.TransactionSummary)
	auth.GET("/transactions/:id", handler.GetTransaction)
	auth.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got services.TransactionInput
		svc := &mockTransactionService{
			createTransactionFn: func(userID string, in services.TransactionInput) (*models.Transaction, error) {
				got = in
				return &models.Transaction{Base: models.Base{ID: "tx-1"}, UserID: userID, Type: in.Type,
					Category: "food", Amount: in.Amount, Date: in.Date}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(svc, audit))

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"expense","category":"Food","amount":450.5,"date":"2024-03-10"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Type != models.TransactionTypeExpense || got.Amount != 450.5 || got.Date.Day() != 10 {
			t.Errorf("unexpected input %+v", got)
		}
		if len(audit.calls) != 1 || audit.calls[0].resourceID != "tx-1" {
			t.Errorf("unexpected audit calls %+v", audit.calls)
		}
	})

	t.Run("leaves date zero when omitted", func(t *testing.T) {
		var got services.TransactionInput
		svc := &mockTransactionService{
			createTransactionFn: func(userID string, in services.TransactionInput) (*models.Transaction, error) {
				got = in
				return &models.Transaction{UserID: userID}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"type":"income","category":"salary","amount":1000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if !got.Date.IsZero() {
			t.Errorf("expected zero date, got %v", got.Date)
		}
	})

	t.Run("returns 400 on zero amount", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"type":"expense","category":"food","amount":0}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if fields := detailFields(t, parseJSON(t, rec)); len(fields) != 1 || fields[0] != "amount" {
			t.Errorf("expected amount detail, got %v", fields)
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"type":"transfer","category":"food","amount":10}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if fields := detailFields(t, parseJSON(t, rec)); len(fields) != 1 || fields[0] != "type" {
			t.Errorf("expected type detail, got %v", fields)
		}
	})
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("parses filters", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		var gotPage pagination.PageRequest
		svc := &mockTransactionService{
			listTransactionsFn: func(_ string, filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				gotFilter, gotPage = filter, page
				resp := pagination.NewPageResponse[models.Transaction](nil, page, 0)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions?from=2024-03-01&to=2024-03-31&type=expense&category=food&page=2&limit=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.FromDate == nil || !gotFilter.FromDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected from %v", gotFilter.FromDate)
		}
		wantTo := time.Date(2024, 3, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
		if gotFilter.ToDate == nil || !gotFilter.ToDate.Equal(wantTo) {
			t.Errorf("expected to at end of day, got %v", gotFilter.ToDate)
		}
		if gotFilter.Type == nil || *gotFilter.Type != models.TransactionTypeExpense || gotFilter.Category != "food" {
			t.Errorf("unexpected filter %+v", gotFilter)
		}
		if gotPage.Page != 2 || gotPage.Limit != 5 {
			t.Errorf("unexpected page %+v", gotPage)
		}
		if _, ok := parseJSON(t, rec)["pagination"]; !ok {
			t.Error("expected pagination block")
		}
	})

	t.Run("returns 400 on bad type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions?type=refund", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions?from=yesterday", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if fields := detailFields(t, parseJSON(t, rec)); len(fields) != 1 || fields[0] != "from" {
			t.Errorf("expected from detail, got %v", fields)
		}
	})
}

func TestSummaryRange(t *testing.T) {
	now := time.Date(2024, 2, 17, 15, 0, 0, 0, time.UTC)

	t.Run("defaults to current month", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/transactions/summary", nil)

		from, to, err := summaryRange(c, now)
		if err != nil {
			t.Fatal(err)
		}
		if !from.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) || !to.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("got [%v, %v)", from, to)
		}
	})

	t.Run("date-only to includes that day", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/transactions/summary?from=2024-01-01&to=2024-01-31", nil)

		_, to, err := summaryRange(c, now)
		if err != nil {
			t.Fatal(err)
		}
		if !to.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expected exclusive end 2024-02-01, got %v", to)
		}
	})
}

func TestTransactionHandler_TransactionSummary(t *testing.T) {
	t.Run("surfaces range validation", func(t *testing.T) {
		svc := &mockTransactionService{
			summaryFn: func(string, time.Time, time.Time) (*services.TransactionSummary, error) {
				return nil, apperrors.Invalid(apperrors.Field("to", "must be after from"))
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/summary?from=2024-03-01T00:00:00Z&to=2024-02-01T00:00:00Z", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 200 with totals", func(t *testing.T) {
		svc := &mockTransactionService{
			summaryFn: func(_ string, from, to time.Time) (*services.TransactionSummary, error) {
				return &services.TransactionSummary{From: from, To: to, TotalIncome: 5000, TotalExpense: 1200, Net: 3800,
					CategoryBreakdown: []services.CategoryTotal{}}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body := parseJSON(t, rec); body["net"] != 3800.0 {
			t.Errorf("expected net 3800, got %v", body["net"])
		}
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	svc := &mockTransactionService{
		getTransactionFn: func(string, string) (*models.Transaction, error) {
			return nil, apperrors.ErrTransactionNotFound
		},
	}
	r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/transactions/not-a-uuid", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 200", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, audit))

		rec := doRequest(r, "DELETE", "/transactions/tx-9", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(audit.calls) != 1 || audit.calls[0].action != "delete" {
			t.Errorf("unexpected audit calls %+v", audit.calls)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockTransactionService{
			deleteTransactionFn: func(string, string) error { return apperrors.ErrTransactionNotFound },
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/transactions/tx-9", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
