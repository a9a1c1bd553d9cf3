package calculation

import (
	"fmt"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
	rbdecimal "github.com/rentbuy/rentbuy-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ProjectionEngine runs the year-by-year buy versus rent recurrence. It keeps
// no state between calls and is safe for concurrent use.
type ProjectionEngine struct {
	TaxCalc *TaxCalculator
	Logger  Logger
}

// NewProjectionEngine creates an engine with the default tax policy.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{
		TaxCalc: NewTaxCalculator(),
		Logger:  NopLogger{},
	}
}

// NewProjectionEngineWithPolicy creates an engine with configurable tax constants.
func NewProjectionEngineWithPolicy(policy domain.TaxPolicy) *ProjectionEngine {
	return &ProjectionEngine{
		TaxCalc: NewTaxCalculatorWithPolicy(policy),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

const (
	// moneyScale is the number of decimal places kept on amounts carried
	// from one year to the next.
	moneyScale = 10
	// factorScale is the precision kept on the cumulative inflation factor.
	factorScale = 18
)

// paidOffThreshold is half a cent. A loan balance below it, at the start of a
// year or at year end, counts as repaid: no interest accrues and no payment is due.
var paidOffThreshold = decimal.New(5, -3)

// loanBalance floors a balance at zero and clears sub-cent remainders.
func loanBalance(d decimal.Decimal) decimal.Decimal {
	d = d.Round(moneyScale)
	if d.LessThan(paidOffThreshold) {
		return decimal.Zero
	}
	return d
}

// rates holds the percentage inputs converted to fractions once per run.
type rates struct {
	mortgage       decimal.Decimal
	taxMaintenance decimal.Decimal
	closingCost    decimal.Decimal
	rentGrowth     decimal.Decimal // 1 + rent increase
	assessedGrowth decimal.Decimal // 1 + reassessment
	homeGrowth     decimal.Decimal // 1 + home return
	stockReturn    decimal.Decimal
	inflation      decimal.Decimal // 1 + inflation
}

func newRates(in domain.ScenarioInputs) rates {
	return rates{
		mortgage:       rbdecimal.FromPercent(in.MortgageRate),
		taxMaintenance: rbdecimal.FromPercent(in.TaxMaintenanceRate),
		closingCost:    rbdecimal.FromPercent(in.ClosingCostRate),
		rentGrowth:     rbdecimal.GrowthFactor(in.RentIncrease),
		assessedGrowth: rbdecimal.GrowthFactor(in.PropertyReassessmentRate),
		homeGrowth:     rbdecimal.GrowthFactor(in.HomeReturn),
		stockReturn:    rbdecimal.FromPercent(in.StockReturn),
		inflation:      rbdecimal.GrowthFactor(in.Inflation),
	}
}

// opening is a year's position before costs and returns are settled.
type opening struct {
	year            int
	loan            decimal.Decimal
	interest        decimal.Decimal
	assessed        decimal.Decimal
	homeValue       decimal.Decimal
	rentStart       decimal.Decimal
	rentExpense     decimal.Decimal
	investedBefore  decimal.Decimal
	inflationFactor decimal.Decimal
}

// CalculateAll projects the scenario from year 1 through its horizon.
func (pe *ProjectionEngine) CalculateAll(in domain.ScenarioInputs) (*domain.ProjectionResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	payment, err := ComputeAnnualPayment(in)
	if err != nil {
		return nil, fmt.Errorf("annual payment: %w", err)
	}

	horizon := in.Horizon()
	result := &domain.ProjectionResult{
		Inputs:        in,
		AnnualPayment: payment,
		Years:         make([]domain.YearRecord, 0, horizon),
	}
	pe.Logger.Debugf("projecting %d years: price=%s down=%s annual payment=%s",
		horizon, in.HomePrice.StringFixed(2), in.DownPayment.StringFixed(2), payment.StringFixed(2))

	record, state, err := pe.InitialYear(in, payment)
	if err != nil {
		return nil, err
	}
	result.Years = append(result.Years, record)

	for year := 2; year <= horizon; year++ {
		record, state, err = pe.NextYear(in, payment, state)
		if err != nil {
			return nil, err
		}
		result.Years = append(result.Years, record)
	}

	last := result.Last()
	pe.Logger.Debugf("year %d: buy real=%s rent real=%s premium=%s",
		last.Year, last.BuyNetWorthReal.StringFixed(2), last.RentNetWorthReal.StringFixed(2), last.Premium.StringFixed(2))
	return result, nil
}

// InitialYear builds year 1 directly from the inputs. Home value has already
// grown by one year, while the loan and assessed value still sit at their
// purchase figures and the renter's account starts with the down payment.
func (pe *ProjectionEngine) InitialYear(in domain.ScenarioInputs, annualPayment decimal.Decimal) (domain.YearRecord, domain.YearState, error) {
	r := newRates(in)
	loan := loanBalance(in.LoanAmount())
	o := opening{
		year:            1,
		loan:            loan,
		interest:        r.mortgage.Mul(loan),
		assessed:        in.HomePrice,
		homeValue:       in.HomePrice.Mul(r.homeGrowth).Round(moneyScale),
		rentStart:       in.DownPayment,
		rentExpense:     in.Rent,
		investedBefore:  in.DownPayment,
		inflationFactor: r.inflation,
	}
	return pe.settle(in, r, annualPayment, o)
}

// NextYear advances the carried state by one year.
func (pe *ProjectionEngine) NextYear(in domain.ScenarioInputs, annualPayment decimal.Decimal, prev domain.YearState) (domain.YearRecord, domain.YearState, error) {
	r := newRates(in)
	loan := loanBalance(prev.LoanBalance.Add(prev.Interest).Sub(annualPayment))
	o := opening{
		year:            prev.Year + 1,
		loan:            loan,
		interest:        r.mortgage.Mul(loan),
		assessed:        prev.AssessedValue.Mul(r.assessedGrowth).Round(moneyScale),
		homeValue:       prev.HomeValue.Mul(r.homeGrowth).Round(moneyScale),
		rentStart:       prev.InvestmentBalance,
		rentExpense:     prev.RentExpense.Mul(r.rentGrowth).Round(moneyScale),
		investedBefore:  prev.TotalInvested,
		inflationFactor: prev.InflationFactor.Mul(r.inflation).Round(factorScale),
	}
	return pe.settle(in, r, annualPayment, o)
}

// settle applies costs, taxes and returns to an opening position.
func (pe *ProjectionEngine) settle(in domain.ScenarioInputs, r rates, annualPayment decimal.Decimal, o opening) (domain.YearRecord, domain.YearState, error) {
	if o.inflationFactor.IsZero() {
		return domain.YearRecord{}, domain.YearState{}, fmt.Errorf("%w: year %d: inflation factor is zero",
			domain.ErrComputationDivergence, o.year)
	}

	// Buy side
	taxMaintenance := o.assessed.Mul(r.taxMaintenance)
	salePrice := o.homeValue.Mul(rbdecimal.One.Sub(r.closingCost))
	gain, gainsTax := pe.TaxCalc.CapitalGainsTax(salePrice, in.HomePrice)
	endOfYearLoan := loanBalance(o.loan.Add(o.interest).Sub(annualPayment))
	buyNetWorth := salePrice.Sub(endOfYearLoan).Sub(gainsTax)
	buyNetWorthReal := buyNetWorth.Div(o.inflationFactor)

	savings := pe.TaxCalc.DeductionSavings(o.interest, o.loan, taxMaintenance)
	buyerCost := taxMaintenance.Sub(savings.Total())
	if o.loan.IsPositive() {
		buyerCost = buyerCost.Add(annualPayment)
	}

	// Rent side: the renter invests whatever the buyer would have spent beyond rent.
	newInvestment := buyerCost.Sub(o.rentExpense).Round(moneyScale)
	rentReturn := o.rentStart.Mul(r.stockReturn).Round(moneyScale)
	yearEndBalance := o.rentStart.Add(rentReturn).Add(newInvestment)
	totalInvested := o.investedBefore.Add(newInvestment)
	investmentTax := pe.TaxCalc.InvestmentTax(yearEndBalance, totalInvested)
	rentNetWorth := yearEndBalance.Sub(investmentTax)
	rentNetWorthReal := rentNetWorth.Div(o.inflationFactor)

	record := domain.YearRecord{
		Year:             o.year,
		LoanBalance:      o.loan,
		Interest:         o.interest,
		AssessedValue:    o.assessed,
		TaxMaintenance:   taxMaintenance,
		HomeValue:        o.homeValue,
		SalePrice:        salePrice,
		CapitalGain:      gain,
		CapitalGainsTax:  gainsTax,
		BuyNetWorth:      buyNetWorth,
		BuyNetWorthReal:  buyNetWorthReal,
		TaxSavings:       savings,
		BuyerAnnualCost:  buyerCost,
		RentStartBalance: o.rentStart,
		RentReturn:       rentReturn,
		RentExpense:      o.rentExpense,
		NewInvestment:    newInvestment,
		YearEndBalance:   yearEndBalance,
		TotalInvested:    totalInvested,
		InvestmentTax:    investmentTax,
		RentNetWorth:     rentNetWorth,
		RentNetWorthReal: rentNetWorthReal,
		Premium:          rentNetWorthReal.Sub(buyNetWorthReal),
	}
	if err := checkFinite(record); err != nil {
		return domain.YearRecord{}, domain.YearState{}, err
	}

	state := domain.YearState{
		Year:              o.year,
		LoanBalance:       o.loan,
		Interest:          o.interest,
		AssessedValue:     o.assessed,
		HomeValue:         o.homeValue,
		InvestmentBalance: yearEndBalance,
		TotalInvested:     totalInvested,
		RentExpense:       o.rentExpense,
		InflationFactor:   o.inflationFactor,
	}
	return record, state, nil
}

// checkFinite rejects a year whose figures no longer fit in a float64.
func checkFinite(yr domain.YearRecord) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"home value", yr.HomeValue},
		{"buy net worth", yr.BuyNetWorth},
		{"buy net worth (real)", yr.BuyNetWorthReal},
		{"year end balance", yr.YearEndBalance},
		{"rent net worth", yr.RentNetWorth},
		{"rent net worth (real)", yr.RentNetWorthReal},
		{"rent expense", yr.RentExpense},
		{"premium", yr.Premium},
	}
	for _, f := range fields {
		if !rbdecimal.IsFinite(f.value) {
			return fmt.Errorf("%w: year %d: %s is out of range", domain.ErrComputationDivergence, yr.Year, f.name)
		}
	}
	return nil
}
