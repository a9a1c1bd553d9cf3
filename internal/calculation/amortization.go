package calculation

import (
	"fmt"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
	rbdecimal "github.com/rentbuy/rentbuy-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// AMORTIZATION ASSUMPTIONS:
//
// The loan is amortized with ANNUAL compounding: the annuity formula is fed
// the annual rate and the term in years, and the resulting annual payment is
// divided by 12 only to quote a monthly figure. This mirrors the spreadsheet
// =-PMT(rate, years, loan)/12 the model was calibrated against and differs
// from conventional monthly-compounded mortgage math. Every downstream
// comparison depends on it, so it must not be "corrected" to monthly
// compounding.

// AnnualPayment returns the level yearly payment that fully amortizes
// loanAmount at annualRatePercent over termYears. A non-positive loan amount
// has no payment; a zero rate repays straight-line.
func AnnualPayment(loanAmount, annualRatePercent decimal.Decimal, termYears int) (decimal.Decimal, error) {
	if termYears <= 0 {
		return decimal.Zero, fmt.Errorf("%w: loan term must be positive, got %d", domain.ErrInvalidInput, termYears)
	}
	if !loanAmount.IsPositive() {
		return decimal.Zero, nil
	}

	years := decimal.NewFromInt(int64(termYears))
	if annualRatePercent.IsZero() {
		return loanAmount.Div(years), nil
	}

	rate := rbdecimal.FromPercent(annualRatePercent)
	power := rbdecimal.One.Add(rate).Pow(years)
	denominator := power.Sub(rbdecimal.One)
	if denominator.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: amortization denominator is zero for rate %s%% over %d years",
			domain.ErrComputationDivergence, annualRatePercent, termYears)
	}
	return loanAmount.Mul(rate).Mul(power).Div(denominator), nil
}

// MonthlyPayment quotes the annual payment for homePrice - downPayment per
// month. It is for display; the projection always works from AnnualPayment.
func MonthlyPayment(homePrice, downPayment, annualRatePercent decimal.Decimal, termYears int) (decimal.Decimal, error) {
	annual, err := AnnualPayment(homePrice.Sub(downPayment), annualRatePercent, termYears)
	if err != nil {
		return decimal.Zero, err
	}
	return rbdecimal.Monthly(annual), nil
}

// ComputeAnnualPayment returns the yearly payment for the scenario's loan.
func ComputeAnnualPayment(in domain.ScenarioInputs) (decimal.Decimal, error) {
	return AnnualPayment(in.LoanAmount(), in.MortgageRate, in.LoanTerm)
}

// RemainingBalance returns the balance after the given number of whole years
// of annualPayment, using the same annual compounding as AnnualPayment.
// The result is floored at zero and is zero once the term has elapsed.
func RemainingBalance(loanAmount, annualPayment, annualRatePercent decimal.Decimal, termYears, years int) decimal.Decimal {
	if years <= 0 {
		return rbdecimal.NonNegative(loanAmount)
	}
	if years >= termYears || !loanAmount.IsPositive() {
		return decimal.Zero
	}

	elapsed := decimal.NewFromInt(int64(years))
	if annualRatePercent.IsZero() {
		return rbdecimal.NonNegative(loanAmount.Sub(annualPayment.Mul(elapsed)))
	}

	rate := rbdecimal.FromPercent(annualRatePercent)
	growth := rbdecimal.One.Add(rate).Pow(elapsed)
	paid := annualPayment.Mul(growth.Sub(rbdecimal.One)).Div(rate)
	return rbdecimal.NonNegative(loanAmount.Mul(growth).Sub(paid))
}

// MonthlyBuyCost returns the first-year monthly outlay of owning: the loan
// payment plus property tax and maintenance on the purchase price.
func MonthlyBuyCost(in domain.ScenarioInputs) (decimal.Decimal, error) {
	annual, err := ComputeAnnualPayment(in)
	if err != nil {
		return decimal.Zero, err
	}
	taxMaintenance := in.HomePrice.Mul(rbdecimal.FromPercent(in.TaxMaintenanceRate))
	return rbdecimal.Monthly(annual.Add(taxMaintenance)), nil
}
