package models

// Loan is an outstanding loan as seen by the planner.
type Loan struct {
	Name             string  `json:"name" toml:"name"`
	Principal        float64 `json:"principal" toml:"principal"`
	RemainingBalance float64 `json:"remainingBalance" toml:"remaining_balance"`
	EMIAmount        float64 `json:"emiAmount" toml:"emi_amount"`
	InterestRate     float64 `json:"interestRate" toml:"interest_rate"`
	Tenure           int     `json:"tenure" toml:"tenure"`
	RemainingTenure  int     `json:"remainingTenure" toml:"remaining_tenure"`
}

// FinancialProfile holds the income and loan data a user's planner runs on.
type FinancialProfile struct {
	Base
	UserID        string  `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	MonthlyIncome float64 `gorm:"not null;default:0" json:"monthlyIncome" toml:"monthly_income"`
	Loans         []Loan  `gorm:"type:jsonb;serializer:json" json:"loans" toml:"loans"`

	// IsDefault marks a profile synthesized from defaults rather than stored.
	IsDefault bool `gorm:"-" json:"isDefault"`
}

// TotalEMI sums the monthly instalments of every loan.
func (p *FinancialProfile) TotalEMI() float64 {
	var total float64
	for _, l := range p.Loans {
		total += l.EMIAmount
	}
	return total
}
