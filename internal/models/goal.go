package models

import (
	"time"

	"gorm.io/gorm"
)

// Goal is a savings target owned by a single user.
type Goal struct {
	Base
	SoftDelete
	UserID        string       `gorm:"type:uuid;not null;index" json:"userId"`
	Name          string       `gorm:"not null" json:"name"`
	TargetAmount  float64      `gorm:"not null" json:"targetAmount"`
	CurrentAmount float64      `gorm:"not null;default:0" json:"currentAmount"`
	Deadline      time.Time    `gorm:"not null" json:"deadline"`
	Category      GoalCategory `gorm:"not null;index" json:"category"`
	Description   string       `json:"description"`
	Priority      GoalPriority `gorm:"not null;default:medium" json:"priority"`
	Status        GoalStatus   `gorm:"not null;default:active;index" json:"status"`
	Tags          []string     `gorm:"type:jsonb;serializer:json" json:"tags"`

	ProgressPercentage float64 `gorm:"-" json:"progressPercentage"`
}

// Progress returns current/target as a percentage, or 0 when the target is 0.
func (g *Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}

// Remaining returns how much is left to save, never negative.
func (g *Goal) Remaining() float64 {
	if r := g.TargetAmount - g.CurrentAmount; r > 0 {
		return r
	}
	return 0
}

// AfterFind fills in the derived progress percentage.
func (g *Goal) AfterFind(tx *gorm.DB) error {
	g.ProgressPercentage = g.Progress()
	return nil
}

// AfterSave keeps the derived progress percentage fresh on returned records.
func (g *Goal) AfterSave(tx *gorm.DB) error {
	g.ProgressPercentage = g.Progress()
	return nil
}
