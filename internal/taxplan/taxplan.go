// Package taxplan estimates income tax under the simplified slab table and
// lists common tax-saving instruments.
package taxplan

import (
	"github.com/shopspring/decimal"
)

// Display constants for the current financial year.
const (
	FinancialYear     = "2023-24"
	Section80CLimit   = 150000
	StandardDeduction = 50000

	DefaultGrossIncome = 850000
	Default80C         = 85000
	Default80D         = 15000
)

// Input holds the figures a user supplies to the estimator.
type Input struct {
	GrossIncome float64 `json:"grossIncome"`
	Section80C  float64 `json:"section80C"`
	Section80D  float64 `json:"section80D"`
}

// DefaultInput returns the sample figures shown when the user has entered none.
func DefaultInput() Input {
	return Input{GrossIncome: DefaultGrossIncome, Section80C: Default80C, Section80D: Default80D}
}

// Estimate is the computed tax position.
type Estimate struct {
	FinancialYear       string  `json:"financialYear"`
	GrossIncome         float64 `json:"grossIncome"`
	StandardDeduction   float64 `json:"standardDeduction"`
	Section80C          float64 `json:"section80C"`
	Section80CLimit     float64 `json:"section80CLimit"`
	Section80CRemaining float64 `json:"section80CRemaining"`
	Section80D          float64 `json:"section80D"`
	TaxableIncome       float64 `json:"taxableIncome"`
	TaxLiability        float64 `json:"taxLiability"`
	PotentialSavings    float64 `json:"potentialSavings"`
}

type slab struct {
	upTo int64 // 0 means no upper bound
	base int64
	from int64
	rate string
}

var slabs = []slab{
	{upTo: 300000},
	{upTo: 600000, base: 0, from: 300000, rate: "0.05"},
	{upTo: 900000, base: 15000, from: 600000, rate: "0.10"},
	{upTo: 1200000, base: 45000, from: 900000, rate: "0.15"},
	{base: 90000, from: 1200000, rate: "0.20"},
}

// Liability returns the tax due on taxable income.
func Liability(taxable decimal.Decimal) decimal.Decimal {
	for _, s := range slabs {
		if s.upTo != 0 && taxable.GreaterThan(decimal.NewFromInt(s.upTo)) {
			continue
		}
		if s.rate == "" {
			return decimal.Zero
		}
		over := taxable.Sub(decimal.NewFromInt(s.from))
		return decimal.NewFromInt(s.base).Add(over.Mul(decimal.RequireFromString(s.rate)))
	}
	return decimal.Zero
}

// Calculate runs the estimator. 80C claims above the statutory limit are
// capped; negative inputs are treated as zero.
func Calculate(in Input) Estimate {
	gross := nonNegative(in.GrossIncome)
	limit := decimal.NewFromInt(Section80CLimit)
	c80 := decimal.Min(nonNegative(in.Section80C), limit)
	d80 := nonNegative(in.Section80D)
	std := decimal.NewFromInt(StandardDeduction)
	remaining := limit.Sub(c80)

	taxable := gross.Sub(std).Sub(c80).Sub(d80)
	liability := Liability(taxable)
	potential := Liability(taxable.Sub(remaining))

	return Estimate{
		FinancialYear:       FinancialYear,
		GrossIncome:         gross.InexactFloat64(),
		StandardDeduction:   std.InexactFloat64(),
		Section80C:          c80.InexactFloat64(),
		Section80CLimit:     limit.InexactFloat64(),
		Section80CRemaining: remaining.InexactFloat64(),
		Section80D:          d80.InexactFloat64(),
		TaxableIncome:       taxable.InexactFloat64(),
		TaxLiability:        liability.Round(2).InexactFloat64(),
		PotentialSavings:    liability.Sub(potential).Round(2).InexactFloat64(),
	}
}

func nonNegative(v float64) decimal.Decimal {
	if v < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
