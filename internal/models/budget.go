package models

import (
	"gorm.io/gorm"
)

// BudgetCategory is a single named allocation inside a monthly budget.
type BudgetCategory struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Budget is a user's plan for one calendar month. There is at most one
// budget per (user, year, month).
type Budget struct {
	Base
	UserID      string           `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_period" json:"userId"`
	Year        int              `gorm:"not null;uniqueIndex:idx_budgets_user_period" json:"year"`
	Month       int              `gorm:"not null;uniqueIndex:idx_budgets_user_period" json:"month"`
	Categories  []BudgetCategory `gorm:"type:jsonb;serializer:json;not null" json:"categories"`
	TotalAmount float64          `gorm:"not null;default:0" json:"totalAmount"`
}

// BeforeSave keeps TotalAmount in step with the category list.
func (b *Budget) BeforeSave(tx *gorm.DB) error {
	b.TotalAmount = b.SumCategories()
	return nil
}

// SumCategories returns the sum of all category amounts.
func (b *Budget) SumCategories() float64 {
	var total float64
	for _, c := range b.Categories {
		total += c.Amount
	}
	return total
}
