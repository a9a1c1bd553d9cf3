package domain

import (
	"github.com/shopspring/decimal"
)

// YearState is the state carried from one simulated year into the next.
type YearState struct {
	Year              int
	LoanBalance       decimal.Decimal // balance at the start of the year, before this year's payment
	Interest          decimal.Decimal // interest accrued on LoanBalance this year
	AssessedValue     decimal.Decimal
	HomeValue         decimal.Decimal
	InvestmentBalance decimal.Decimal // renter's account at year end
	TotalInvested     decimal.Decimal // cumulative principal contributed to the account
	RentExpense       decimal.Decimal
	InflationFactor   decimal.Decimal // (1+inflation)^Year
}

// YearRecord is the complete buy-versus-rent picture for one simulated year.
type YearRecord struct {
	Year int `json:"year"`

	// Buy side
	LoanBalance     decimal.Decimal `json:"loan_balance"`
	Interest        decimal.Decimal `json:"interest"`
	AssessedValue   decimal.Decimal `json:"assessed_value"`
	TaxMaintenance  decimal.Decimal `json:"tax_maintenance"`
	HomeValue       decimal.Decimal `json:"home_value"`
	SalePrice       decimal.Decimal `json:"sale_price"` // net of closing costs
	CapitalGain     decimal.Decimal `json:"capital_gain"`
	CapitalGainsTax decimal.Decimal `json:"capital_gains_tax"`
	BuyNetWorth     decimal.Decimal `json:"buy_net_worth"`
	BuyNetWorthReal decimal.Decimal `json:"buy_net_worth_real"`
	TaxSavings      TaxSavings      `json:"tax_savings"`
	BuyerAnnualCost decimal.Decimal `json:"buyer_annual_cost"`

	// Rent side
	RentStartBalance decimal.Decimal `json:"rent_start_balance"`
	RentReturn       decimal.Decimal `json:"rent_return"`
	RentExpense      decimal.Decimal `json:"rent_expense"`
	NewInvestment    decimal.Decimal `json:"new_investment"`
	YearEndBalance   decimal.Decimal `json:"year_end_balance"`
	TotalInvested    decimal.Decimal `json:"total_invested"`
	InvestmentTax    decimal.Decimal `json:"investment_tax"`
	RentNetWorth     decimal.Decimal `json:"rent_net_worth"`
	RentNetWorthReal decimal.Decimal `json:"rent_net_worth_real"`

	// Premium is RentNetWorthReal - BuyNetWorthReal; positive favors renting.
	Premium decimal.Decimal `json:"premium"`
}

// Recommendation classifies an outcome as favoring buying or renting.
type Recommendation string

const (
	RecommendBuy  Recommendation = "buy"
	RecommendRent Recommendation = "rent"
)

// Classify maps a premium onto a recommendation. Ties go to buying.
func Classify(premium decimal.Decimal) Recommendation {
	if premium.IsPositive() {
		return RecommendRent
	}
	return RecommendBuy
}

// Recommendation returns the classification of this year's premium.
func (yr YearRecord) Recommendation() Recommendation {
	return Classify(yr.Premium)
}

// ProjectionResult is the ordered per-year series of one projection run.
type ProjectionResult struct {
	Inputs        ScenarioInputs  `json:"inputs"`
	AnnualPayment decimal.Decimal `json:"annual_payment"`
	Years         []YearRecord    `json:"years"`
}

// Len returns the number of simulated years.
func (pr *ProjectionResult) Len() int {
	return len(pr.Years)
}

// Last returns the final year record. It must not be called on an empty result.
func (pr *ProjectionResult) Last() YearRecord {
	return pr.Years[len(pr.Years)-1]
}

// HorizonIndex returns the index of the first year at or beyond horizon,
// falling back to the last year when the series is shorter.
func (pr *ProjectionResult) HorizonIndex(horizon int) int {
	for i, yr := range pr.Years {
		if yr.Year >= horizon {
			return i
		}
	}
	return len(pr.Years) - 1
}

// AtHorizon returns the record used for comparison at the given horizon.
func (pr *ProjectionResult) AtHorizon(horizon int) YearRecord {
	return pr.Years[pr.HorizonIndex(horizon)]
}

// ProjectionSummary is the headline comparison for a scenario.
type ProjectionSummary struct {
	Name             string          `json:"name"`
	HorizonYear      int             `json:"horizon_year"`
	AnnualPayment    decimal.Decimal `json:"annual_payment"`
	MonthlyBuyCost   decimal.Decimal `json:"monthly_buy_cost"`
	BuyNetWorthReal  decimal.Decimal `json:"buy_net_worth_real"`
	RentNetWorthReal decimal.Decimal `json:"rent_net_worth_real"`
	Difference       decimal.Decimal `json:"difference"`
	Recommendation   Recommendation  `json:"recommendation"`
	// BreakEvenYear is the first year buying is at least as good as renting;
	// nil when renting wins every year.
	BreakEvenYear *int `json:"break_even_year,omitempty"`
}

// ProjectionReport bundles the summary with the full series for formatters.
type ProjectionReport struct {
	Summary    ProjectionSummary `json:"summary"`
	Projection *ProjectionResult `json:"projection"`
}
