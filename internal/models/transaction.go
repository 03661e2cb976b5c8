package models

import "time"

// Transaction represents a single income or expense entry.
type Transaction struct {
	Base
	SoftDelete
	UserID      string          `gorm:"type:uuid;not null;index:idx_transactions_user_date" json:"userId"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Category    string          `gorm:"not null;index" json:"category"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null;index:idx_transactions_user_date" json:"date"`
}
