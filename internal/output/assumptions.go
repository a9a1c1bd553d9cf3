package output

import (
	"fmt"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
)

// DefaultAssumptions lists the modeling conventions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Mortgage amortized with annual compounding; the annual payment is quoted per month",
	"Home sold at each year end: closing costs and capital gains tax on the purchase-price basis",
	"Renter invests the down payment plus any excess of ownership cost over rent",
	"Renter's account taxed on unrealized gains each year at the combined capital gains rate",
	"Net worths compared in today's dollars; renting is favored only when strictly ahead",
}

// GenerateAssumptions describes the tax policy actually in force.
func GenerateAssumptions(policy domain.TaxPolicy) []string {
	out := append([]string(nil), DefaultAssumptions...)
	return append(out,
		fmt.Sprintf("Capital gains rate: %s federal + %s state = %s",
			FormatPercentage(policy.FederalRate.Mul(decimalHundred)),
			FormatPercentage(policy.StateRate.Mul(decimalHundred)),
			FormatPercentage(policy.CombinedRate().Mul(decimalHundred))),
		fmt.Sprintf("Home sale exclusion: %s", FormatCurrency(policy.CapitalGainsExclusion)),
		fmt.Sprintf("Mortgage interest deductible up to %s (federal) and %s (state) of principal",
			FormatCurrency(policy.FederalLoanLimit), FormatCurrency(policy.StateLoanLimit)),
		fmt.Sprintf("Standard deductions: %s federal, %s state; federal SALT cap %s",
			FormatCurrency(policy.FederalStandardDeduction), FormatCurrency(policy.StateStandardDeduction),
			FormatCurrency(policy.FederalSALTCap)),
	)
}
