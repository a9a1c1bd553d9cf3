package calculation

import (
	"github.com/rentbuy/rentbuy-calculator/internal/domain"
	rbdecimal "github.com/rentbuy/rentbuy-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Capital gains on a sale use the ORIGINAL purchase price as basis.
//    Reassessment only drives property tax; it never moves the basis.
//    The primary-residence exclusion is subtracted from the whole gain.
//
// 2. Mortgage interest is deductible on the share of the balance under each
//    jurisdiction's loan limit. Federal itemizing adds the SALT cap in place of
//    actual property tax; state itemizing adds the full tax and maintenance
//    amount. Each side only saves money above its own standard deduction.
//
// 3. The renter's account is taxed every year on its unrealized gain at the
//    combined capital gains rate, as if liquidated at that year's end.

// TaxCalculator applies a TaxPolicy to one year's financial state.
type TaxCalculator struct {
	Policy domain.TaxPolicy
}

// NewTaxCalculator creates a calculator using the default policy.
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{Policy: domain.DefaultTaxPolicy()}
}

// NewTaxCalculatorWithPolicy creates a calculator with configurable constants.
func NewTaxCalculatorWithPolicy(policy domain.TaxPolicy) *TaxCalculator {
	return &TaxCalculator{Policy: policy}
}

// CapitalGainsTax returns the gain over basis and the tax due if the home
// sold for salePrice.
func (tc *TaxCalculator) CapitalGainsTax(salePrice, basis decimal.Decimal) (gain, tax decimal.Decimal) {
	gain = rbdecimal.NonNegative(salePrice.Sub(basis))
	taxable := rbdecimal.NonNegative(gain.Sub(tc.Policy.CapitalGainsExclusion))
	return gain, taxable.Mul(tc.Policy.CombinedRate())
}

// DeductibleInterest scales interest down to the portion attributable to a
// balance of at most limit. A zero balance deducts nothing.
func DeductibleInterest(interest, loanBalance, limit decimal.Decimal) decimal.Decimal {
	if !loanBalance.IsPositive() {
		return decimal.Zero
	}
	share := decimal.Min(rbdecimal.One, limit.Div(loanBalance))
	return interest.Mul(share)
}

// DeductionSavings returns the tax saved by itemizing mortgage interest and
// property costs instead of taking each jurisdiction's standard deduction.
func (tc *TaxCalculator) DeductionSavings(interest, loanBalance, taxMaintenance decimal.Decimal) domain.TaxSavings {
	p := tc.Policy

	federalItemized := DeductibleInterest(interest, loanBalance, p.FederalLoanLimit).Add(p.FederalSALTCap)
	stateItemized := DeductibleInterest(interest, loanBalance, p.StateLoanLimit).Add(taxMaintenance)

	return domain.TaxSavings{
		Federal: rbdecimal.NonNegative(federalItemized.Sub(p.FederalStandardDeduction)).Mul(p.FederalRate),
		State:   rbdecimal.NonNegative(stateItemized.Sub(p.StateStandardDeduction)).Mul(p.StateRate),
	}
}

// InvestmentTax returns the tax on the renter's unrealized gain. A balance
// below principal yields a negative figure, which is kept as a credit.
func (tc *TaxCalculator) InvestmentTax(yearEndBalance, totalInvested decimal.Decimal) decimal.Decimal {
	return yearEndBalance.Sub(totalInvested).Mul(tc.Policy.CombinedRate())
}
