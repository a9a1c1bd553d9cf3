package domain

import "github.com/shopspring/decimal"

// TaxPolicy carries the tax constants used by the projection. Rates are
// fractions (0.238 means 23.8%); thresholds are dollar amounts.
type TaxPolicy struct {
	FederalRate              decimal.Decimal `yaml:"federal_rate" json:"federal_rate"` // LTCG + NIIT
	StateRate                decimal.Decimal `yaml:"state_rate" json:"state_rate"`
	CapitalGainsExclusion    decimal.Decimal `yaml:"capital_gains_exclusion" json:"capital_gains_exclusion"`
	FederalLoanLimit         decimal.Decimal `yaml:"federal_loan_limit" json:"federal_loan_limit"`
	StateLoanLimit           decimal.Decimal `yaml:"state_loan_limit" json:"state_loan_limit"`
	FederalStandardDeduction decimal.Decimal `yaml:"federal_standard_deduction" json:"federal_standard_deduction"`
	StateStandardDeduction   decimal.Decimal `yaml:"state_standard_deduction" json:"state_standard_deduction"`
	FederalSALTCap           decimal.Decimal `yaml:"federal_salt_cap" json:"federal_salt_cap"`
}

// DefaultTaxPolicy returns 2024 married-filing-jointly figures: 20% LTCG plus
// 3.8% NIIT federally and 12.3% plus the 1% mental health surcharge at state level.
func DefaultTaxPolicy() TaxPolicy {
	return TaxPolicy{
		FederalRate:              decimal.NewFromFloat(0.238),
		StateRate:                decimal.NewFromFloat(0.133),
		CapitalGainsExclusion:    decimal.NewFromInt(500000),
		FederalLoanLimit:         decimal.NewFromInt(750000),
		StateLoanLimit:           decimal.NewFromInt(1000000),
		FederalStandardDeduction: decimal.NewFromInt(29200),
		StateStandardDeduction:   decimal.NewFromInt(10726),
		FederalSALTCap:           decimal.NewFromInt(10000),
	}
}

// CombinedRate is the federal plus state rate applied to capital gains.
func (tp TaxPolicy) CombinedRate() decimal.Decimal {
	return tp.FederalRate.Add(tp.StateRate)
}

// TaxSavings splits the itemized-deduction benefit by jurisdiction.
type TaxSavings struct {
	Federal decimal.Decimal `json:"federal"`
	State   decimal.Decimal `json:"state"`
}

// Total returns federal plus state savings.
func (ts TaxSavings) Total() decimal.Decimal {
	return ts.Federal.Add(ts.State)
}
