package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultHorizonPadding is added to the loan term when no investing horizon is given.
const DefaultHorizonPadding = 10

// ScenarioInputs holds the economic assumptions for one buy-versus-rent run.
// All rate fields are annual percentages (6.25 means 6.25%).
type ScenarioInputs struct {
	HomePrice                decimal.Decimal `yaml:"home_price" json:"home_price"`
	DownPayment              decimal.Decimal `yaml:"down_payment" json:"down_payment"`
	LoanTerm                 int             `yaml:"loan_term" json:"loan_term"` // years
	MortgageRate             decimal.Decimal `yaml:"mortgage_rate" json:"mortgage_rate"`
	TaxMaintenanceRate       decimal.Decimal `yaml:"tax_maintenance_rate" json:"tax_maintenance_rate"`
	Rent                     decimal.Decimal `yaml:"rent" json:"rent"` // first-year annual rent
	RentIncrease             decimal.Decimal `yaml:"rent_increase" json:"rent_increase"`
	PropertyReassessmentRate decimal.Decimal `yaml:"property_reassessment_rate" json:"property_reassessment_rate"`
	HomeReturn               decimal.Decimal `yaml:"home_return" json:"home_return"`
	StockReturn              decimal.Decimal `yaml:"stock_return" json:"stock_return"`
	Inflation                decimal.Decimal `yaml:"inflation" json:"inflation"`
	ClosingCostRate          decimal.Decimal `yaml:"closing_cost_rate" json:"closing_cost_rate"`

	// InvestingHorizon is the number of years to project; nil means LoanTerm + 10.
	InvestingHorizon *int `yaml:"investing_horizon,omitempty" json:"investing_horizon,omitempty"`
}

// NamedScenario pairs a scenario with a display name for reports.
type NamedScenario struct {
	Name   string         `yaml:"name" json:"name"`
	Inputs ScenarioInputs `yaml:"inputs" json:"inputs"`
}

// Configuration is the root of a scenario file.
type Configuration struct {
	// TaxPolicy overrides the default tax constants when present. All fields
	// are used as given, so an explicit zero is a real zero.
	TaxPolicy *TaxPolicy      `yaml:"tax_policy,omitempty" json:"tax_policy,omitempty"`
	Scenarios []NamedScenario `yaml:"scenarios" json:"scenarios"`
	Sweeps    []SweepRequest  `yaml:"sweeps,omitempty" json:"sweeps,omitempty"`
}

// EffectiveTaxPolicy returns the configured policy or the defaults.
func (c *Configuration) EffectiveTaxPolicy() TaxPolicy {
	if c.TaxPolicy == nil {
		return DefaultTaxPolicy()
	}
	return *c.TaxPolicy
}

// FindScenario looks a scenario up by name.
func (c *Configuration) FindScenario(name string) (NamedScenario, bool) {
	for _, sc := range c.Scenarios {
		if sc.Name == name {
			return sc, true
		}
	}
	return NamedScenario{}, false
}

// FindSweep looks a sweep up by name.
func (c *Configuration) FindSweep(name string) (SweepRequest, bool) {
	for _, sw := range c.Sweeps {
		if sw.Name == name {
			return sw, true
		}
	}
	return SweepRequest{}, false
}

// Horizon returns the final simulated year.
func (in ScenarioInputs) Horizon() int {
	if in.InvestingHorizon != nil {
		return *in.InvestingHorizon
	}
	return in.LoanTerm + DefaultHorizonPadding
}

// LoanAmount is the financed portion of the purchase; it may be zero or negative.
func (in ScenarioInputs) LoanAmount() decimal.Decimal {
	return in.HomePrice.Sub(in.DownPayment)
}

// WithHorizon returns a copy with an explicit investing horizon.
func (in ScenarioInputs) WithHorizon(years int) ScenarioInputs {
	in.InvestingHorizon = &years
	return in
}

// Validate checks the inputs before any projection work starts.
func (in ScenarioInputs) Validate() error {
	if !in.HomePrice.IsPositive() {
		return fmt.Errorf("%w: home price must be positive, got %s", ErrInvalidInput, in.HomePrice)
	}
	if in.DownPayment.IsNegative() {
		return fmt.Errorf("%w: down payment cannot be negative, got %s", ErrInvalidInput, in.DownPayment)
	}
	if in.LoanTerm <= 0 {
		return fmt.Errorf("%w: loan term must be positive, got %d", ErrInvalidInput, in.LoanTerm)
	}
	if in.Rent.IsNegative() {
		return fmt.Errorf("%w: rent cannot be negative, got %s", ErrInvalidInput, in.Rent)
	}
	if in.MortgageRate.IsNegative() {
		return fmt.Errorf("%w: mortgage rate cannot be negative, got %s%%", ErrInvalidInput, in.MortgageRate)
	}
	if in.TaxMaintenanceRate.IsNegative() {
		return fmt.Errorf("%w: tax and maintenance rate cannot be negative, got %s%%", ErrInvalidInput, in.TaxMaintenanceRate)
	}
	if in.ClosingCostRate.IsNegative() || in.ClosingCostRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: closing cost rate must be between 0 and 100, got %s%%", ErrInvalidInput, in.ClosingCostRate)
	}

	// Growth rates may be negative but not at or below -100%.
	floor := decimal.NewFromInt(-100)
	growth := []struct {
		name string
		rate decimal.Decimal
	}{
		{"rent increase", in.RentIncrease},
		{"property reassessment rate", in.PropertyReassessmentRate},
		{"home return", in.HomeReturn},
		{"stock return", in.StockReturn},
		{"inflation", in.Inflation},
	}
	for _, g := range growth {
		if g.rate.LessThanOrEqual(floor) {
			return fmt.Errorf("%w: %s must be greater than -100%%, got %s%%", ErrInvalidInput, g.name, g.rate)
		}
	}

	if in.InvestingHorizon != nil && *in.InvestingHorizon <= 0 {
		return fmt.Errorf("%w: investing horizon must be positive, got %d", ErrInvalidInput, *in.InvestingHorizon)
	}
	return nil
}

// ReferenceInputs returns the documented default scenario.
func ReferenceInputs() ScenarioInputs {
	return ScenarioInputs{
		HomePrice:                decimal.NewFromInt(1750000),
		DownPayment:              decimal.NewFromInt(525000),
		LoanTerm:                 30,
		MortgageRate:             decimal.NewFromFloat(6.25),
		TaxMaintenanceRate:       decimal.NewFromFloat(1.11),
		Rent:                     decimal.NewFromInt(54000),
		RentIncrease:             decimal.NewFromInt(5),
		PropertyReassessmentRate: decimal.NewFromInt(1),
		HomeReturn:               decimal.NewFromInt(3),
		StockReturn:              decimal.NewFromInt(6),
		Inflation:                decimal.NewFromInt(2),
		ClosingCostRate:          decimal.NewFromInt(3),
	}
}
