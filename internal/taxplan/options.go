package taxplan

// Option is a tax-saving instrument.
type Option struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Section         string `json:"section"`
	Description     string `json:"description"`
	MinInvestment   int    `json:"minInvestment"`
	LockInPeriod    string `json:"lockInPeriod"`
	ExpectedReturns string `json:"expectedReturns"`
	RiskLevel       string `json:"riskLevel"`
	Recommended     bool   `json:"recommended"`
}

var options = []Option{
	{1, "ELSS Mutual Funds", "80C", "Equity Linked Savings Scheme with tax benefits and market returns", 500, "3 years", "12-15%", "High", true},
	{2, "PPF (Public Provident Fund)", "80C", "Government backed tax-free returns with 15-year lock-in", 500, "15 years", "7.1%", "Low", true},
	{3, "National Pension System", "80CCD", "Additional ₹50,000 deduction for retirement planning", 1000, "Till retirement", "10-12%", "Medium", false},
	{4, "Health Insurance", "80D", "Tax deduction up to ₹25,000 for health insurance premiums", 5000, "1 year", "Health coverage", "Low", true},
	{5, "Education Loan Interest", "80E", "Full interest deduction on education loans", 0, "Loan duration", "Tax savings", "Low", false},
	{6, "Tax Saver FD", "80C", "Fixed deposits with 5-year lock-in and guaranteed returns", 100, "5 years", "5.5-6.5%", "Low", false},
}

// Options returns a copy of the instrument list.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}
