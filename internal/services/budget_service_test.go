package services

import (
	"math"
	"testing"

	"finmentor/internal/models"
	"finmentor/internal/testutil"
)

func TestUpsertBudget(t *testing.T) {
	t.Run("creates_with_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		b, err := svc.UpsertBudget(user.ID, 2024, 3, []models.BudgetCategory{
			{Name: "Food", Amount: 12000},
			{Name: " Rent ", Amount: 25000},
		})
		testutil.AssertNoError(t, err)

		if b.TotalAmount != 37000 {
			t.Errorf("expected total 37000, got %v", b.TotalAmount)
		}
		if b.Categories[1].Name != "Rent" {
			t.Errorf("expected trimmed name Rent, got %q", b.Categories[1].Name)
		}
	})

	t.Run("replaces_existing_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		first, err := svc.UpsertBudget(user.ID, 2024, 3, []models.BudgetCategory{{Name: "Food", Amount: 100}})
		testutil.AssertNoError(t, err)
		second, err := svc.UpsertBudget(user.ID, 2024, 3, []models.BudgetCategory{{Name: "Travel", Amount: 500}})
		testutil.AssertNoError(t, err)

		if first.ID != second.ID {
			t.Errorf("expected same budget row, got %s and %s", first.ID, second.ID)
		}
		if len(second.Categories) != 1 || second.Categories[0].Name != "Travel" {
			t.Errorf("expected categories replaced, got %+v", second.Categories)
		}
		if second.TotalAmount != 500 {
			t.Errorf("expected total 500, got %v", second.TotalAmount)
		}

		var count int64
		db.Model(&models.Budget{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 budget row, got %d", count)
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpsertBudget(user.ID, 2024, 13, []models.BudgetCategory{{Name: "Food", Amount: 1}})
		testutil.AssertFieldError(t, err, "month")
	})

	t.Run("empty_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpsertBudget(user.ID, 2024, 1, nil)
		testutil.AssertFieldError(t, err, "categories")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpsertBudget(user.ID, 2024, 1, []models.BudgetCategory{{Name: "Food", Amount: -1}})
		testutil.AssertFieldError(t, err, "categories[0].amount")
	})

	t.Run("nan_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpsertBudget(user.ID, 2024, 1, []models.BudgetCategory{{Name: "Food", Amount: math.NaN()}})
		testutil.AssertFieldError(t, err, "categories[0].amount")
	})
}

func TestGetBudget(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestBudget(t, db, user.ID, 2024, 5)

		b, err := svc.GetBudget(user.ID, 2024, 5)
		testutil.AssertNoError(t, err)
		if b.ID != created.ID {
			t.Errorf("expected budget %s, got %s", created.ID, b.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetBudget(user.ID, 2024, 5)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("other_users_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, owner.ID, 2024, 5)

		_, err := svc.GetBudget(other.ID, 2024, 5)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestListBudgets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestBudget(t, db, user.ID, 2023, 12)
	testutil.CreateTestBudget(t, db, user.ID, 2024, 2)
	testutil.CreateTestBudget(t, db, user.ID, 2024, 1)

	budgets, err := svc.ListBudgets(user.ID)
	testutil.AssertNoError(t, err)

	if len(budgets) != 3 {
		t.Fatalf("expected 3 budgets, got %d", len(budgets))
	}
	if budgets[0].Year != 2024 || budgets[0].Month != 2 {
		t.Errorf("expected newest first, got %d-%d", budgets[0].Year, budgets[0].Month)
	}
	if budgets[2].Year != 2023 {
		t.Errorf("expected oldest last, got %d-%d", budgets[2].Year, budgets[2].Month)
	}
}

func TestUpsertCategoryAmount(t *testing.T) {
	t.Run("updates_existing_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, user.ID, 2024, 4,
			models.BudgetCategory{Name: "Food", Amount: 1000},
			models.BudgetCategory{Name: "Rent", Amount: 2000},
		)

		b, err := svc.UpsertCategoryAmount(user.ID, 2024, 4, "food", 1500)
		testutil.AssertNoError(t, err)

		if len(b.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(b.Categories))
		}
		if b.Categories[0].Name != "Food" || b.Categories[0].Amount != 1500 {
			t.Errorf("expected Food=1500, got %+v", b.Categories[0])
		}
		if b.TotalAmount != 3500 {
			t.Errorf("expected total 3500, got %v", b.TotalAmount)
		}
	})

	t.Run("appends_new_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, user.ID, 2024, 4)

		b, err := svc.UpsertCategoryAmount(user.ID, 2024, 4, "Travel", 4000)
		testutil.AssertNoError(t, err)

		if len(b.Categories) != 2 || b.Categories[1].Name != "Travel" {
			t.Errorf("expected Travel appended, got %+v", b.Categories)
		}

		stored, err := svc.GetBudget(user.ID, 2024, 4)
		testutil.AssertNoError(t, err)
		if stored.TotalAmount != 14000 {
			t.Errorf("expected persisted total 14000, got %v", stored.TotalAmount)
		}
	})

	t.Run("missing_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpsertCategoryAmount(user.ID, 2024, 4, "Food", 10)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("blank_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpsertCategoryAmount(user.ID, 2024, 4, "  ", 10)
		testutil.AssertFieldError(t, err, "categoryName")
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, user.ID, 2024, 6)

		testutil.AssertNoError(t, svc.DeleteBudget(user.ID, 2024, 6))

		_, err := svc.GetBudget(user.ID, 2024, 6)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteBudget(user.ID, 2024, 6)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}
