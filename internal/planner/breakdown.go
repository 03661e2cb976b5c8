// Package planner turns budgets, spending and goals into the planner
// dashboard: a budget-vs-spend breakdown, debt insights and per-goal
// recommendations. Everything here is pure; callers supply the data.
package planner

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"finmentor/internal/models"
)

// IncomeCategories are spending keys that represent money coming in and are
// never shown against a budget.
var IncomeCategories = map[string]bool{
	"salary":       true,
	"freelance":    true,
	"investment":   true,
	"business":     true,
	"other-income": true,
}

// CategoryView is one row of the budget-vs-spend breakdown.
type CategoryView struct {
	Key          string  `json:"key"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Spent        float64 `json:"spent"`
	Percentage   float64 `json:"percentage"`
	IsOverBudget bool    `json:"isOverBudget"`
}

// Percentage returns spent as a share of budgeted. Without a budget any
// spending counts as 100%.
func Percentage(budgeted, spent float64) float64 {
	if budgeted > 0 {
		return spent / budgeted * 100
	}
	if spent > 0 {
		return 100
	}
	return 0
}

// NormalizeKey lower-cases and trims a category name for matching.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BuildBreakdown merges budget categories with observed spending.
//
// Budgeted rows come first, in budget order. Every spending key with a
// positive total and no matching budget row follows as a synthesized row
// with a zero budget, ordered by key. Keys in spending are expected to be
// normalized already.
func BuildBreakdown(categories []models.BudgetCategory, spending map[string]float64) []CategoryView {
	rows := make([]CategoryView, 0, len(categories)+len(spending))
	budgeted := make(map[string]bool, len(categories))

	for _, c := range categories {
		key := NormalizeKey(c.Name)
		budgeted[key] = true
		rows = append(rows, newView(key, displayName(c.Name), c.Amount, spending[key]))
	}

	extra := make([]string, 0, len(spending))
	for key, spent := range spending {
		if budgeted[key] || spent <= 0 {
			continue
		}
		extra = append(extra, key)
	}
	sort.Strings(extra)

	for _, key := range extra {
		rows = append(rows, newView(key, displayName(key), 0, spending[key]))
	}
	return rows
}

func newView(key, name string, amount, spent float64) CategoryView {
	pct := Percentage(amount, spent)
	return CategoryView{
		Key:          key,
		Name:         name,
		Amount:       amount,
		Spent:        spent,
		Percentage:   round2(pct),
		IsOverBudget: pct > 100,
	}
}

// displayName upper-cases the first letter, leaving the rest untouched.
func displayName(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Totals sums the budgeted and spent columns of a breakdown.
func Totals(rows []CategoryView) (budgeted, spent float64) {
	b, s := decimal.Zero, decimal.Zero
	for _, r := range rows {
		b = b.Add(decimal.NewFromFloat(r.Amount))
		s = s.Add(decimal.NewFromFloat(r.Spent))
	}
	return b.InexactFloat64(), s.InexactFloat64()
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
