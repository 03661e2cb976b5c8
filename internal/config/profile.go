package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"finmentor/internal/models"
)

// DefaultProfile is the financial profile used for users that have not
// stored one of their own.
type DefaultProfile struct {
	MonthlyIncome float64       `toml:"monthly_income"`
	Loans         []models.Loan `toml:"loans"`
}

// BuiltinProfile returns the profile used when no profile file exists.
func BuiltinProfile() DefaultProfile {
	return DefaultProfile{
		MonthlyIncome: 85000,
		Loans: []models.Loan{
			{Name: "Home Loan", Principal: 2500000, RemainingBalance: 2100000, EMIAmount: 18500, InterestRate: 8.5, Tenure: 240, RemainingTenure: 198},
			{Name: "Car Loan", Principal: 800000, RemainingBalance: 320000, EMIAmount: 15200, InterestRate: 9.2, Tenure: 60, RemainingTenure: 18},
			{Name: "Personal Loan", Principal: 300000, RemainingBalance: 180000, EMIAmount: 8500, InterestRate: 12.5, Tenure: 48, RemainingTenure: 24},
		},
	}
}

// LoadProfile reads the default profile from a TOML file at path. A missing
// file yields the built-in profile.
func LoadProfile(path string) (DefaultProfile, error) {
	if path == "" {
		return BuiltinProfile(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return BuiltinProfile(), nil
		}
		return DefaultProfile{}, fmt.Errorf("reading profile: %w", err)
	}

	var p DefaultProfile
	if err := toml.Unmarshal(data, &p); err != nil {
		return DefaultProfile{}, fmt.Errorf("parsing profile: %w", err)
	}
	if err := p.validate(); err != nil {
		return DefaultProfile{}, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return p, nil
}

func (p DefaultProfile) validate() error {
	if p.MonthlyIncome < 0 {
		return fmt.Errorf("monthly_income must not be negative")
	}
	for i, l := range p.Loans {
		if l.EMIAmount < 0 || l.InterestRate < 0 || l.Principal < 0 || l.RemainingBalance < 0 {
			return fmt.Errorf("loan %d (%s) has a negative amount", i, l.Name)
		}
	}
	return nil
}

// ToModel converts the default into an unsaved FinancialProfile for userID.
func (p DefaultProfile) ToModel(userID string) *models.FinancialProfile {
	loans := make([]models.Loan, len(p.Loans))
	copy(loans, p.Loans)
	return &models.FinancialProfile{
		UserID:        userID,
		MonthlyIncome: p.MonthlyIncome,
		Loans:         loans,
	}
}
