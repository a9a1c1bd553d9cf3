package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates configuration bytes. Tax policy fields left out
// of the file keep their default values.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	policy := domain.DefaultTaxPolicy()
	config := domain.Configuration{TaxPolicy: &policy}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.TaxPolicy != nil {
		if err := ip.validateTaxPolicy(config.TaxPolicy); err != nil {
			return fmt.Errorf("tax policy validation failed: %w", err)
		}
	}

	if len(config.Scenarios) == 0 && len(config.Sweeps) == 0 {
		return fmt.Errorf("%w: no scenarios or sweeps provided", domain.ErrInvalidInput)
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if scenario.Name == "" {
			return fmt.Errorf("scenario %d validation failed: %w: scenario name is required", i, domain.ErrInvalidInput)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: %w: duplicate scenario name %q", i, domain.ErrInvalidInput, scenario.Name)
		}
		seen[scenario.Name] = true
		if err := scenario.Inputs.Validate(); err != nil {
			return fmt.Errorf("scenario %q validation failed: %w", scenario.Name, err)
		}
	}

	for i, sweep := range config.Sweeps {
		if err := ip.validateSweep(&sweep); err != nil {
			name := sweep.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return fmt.Errorf("sweep %s validation failed: %w", name, err)
		}
	}

	return nil
}

// validateTaxPolicy checks that rates are fractions and thresholds are non-negative
func (ip *InputParser) validateTaxPolicy(policy *domain.TaxPolicy) error {
	one := decimal.NewFromInt(1)
	rates := []struct {
		name string
		rate decimal.Decimal
	}{
		{"federal_rate", policy.FederalRate},
		{"state_rate", policy.StateRate},
	}
	for _, r := range rates {
		if r.rate.IsNegative() || r.rate.GreaterThanOrEqual(one) {
			return fmt.Errorf("%w: %s must be a fraction in [0, 1), got %s", domain.ErrInvalidInput, r.name, r.rate)
		}
	}
	if policy.CombinedRate().GreaterThanOrEqual(one) {
		return fmt.Errorf("%w: combined capital gains rate must be below 1, got %s", domain.ErrInvalidInput, policy.CombinedRate())
	}

	amounts := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"capital_gains_exclusion", policy.CapitalGainsExclusion},
		{"federal_loan_limit", policy.FederalLoanLimit},
		{"state_loan_limit", policy.StateLoanLimit},
		{"federal_standard_deduction", policy.FederalStandardDeduction},
		{"state_standard_deduction", policy.StateStandardDeduction},
		{"federal_salt_cap", policy.FederalSALTCap},
	}
	for _, a := range amounts {
		if a.amount.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative, got %s", domain.ErrInvalidInput, a.name, a.amount)
		}
	}
	return nil
}

// validateSweep validates a sweep's base scenario and both axes
func (ip *InputParser) validateSweep(sweep *domain.SweepRequest) error {
	if sweep.Name == "" {
		return fmt.Errorf("%w: sweep name is required", domain.ErrInvalidInput)
	}
	if err := sweep.Base.Validate(); err != nil {
		return fmt.Errorf("base: %w", err)
	}
	if err := validateAxis("x", sweep.X); err != nil {
		return err
	}
	if err := validateAxis("y", sweep.Y); err != nil {
		return err
	}
	if sweep.X.Parameter == sweep.Y.Parameter {
		return fmt.Errorf("%w: x and y both sweep %q", domain.ErrRangeMisconfiguration, sweep.X.Parameter)
	}
	return nil
}

func validateAxis(label string, axis domain.AxisRange) error {
	if !axis.Parameter.Valid() {
		return fmt.Errorf("%s axis: %w: unknown parameter %q", label, domain.ErrRangeMisconfiguration, axis.Parameter)
	}
	if !axis.Step.IsPositive() {
		return fmt.Errorf("%s axis: %w: step must be positive", label, domain.ErrRangeMisconfiguration)
	}
	if axis.Max.LessThan(axis.Min) {
		return fmt.Errorf("%s axis: %w: max %s is below min %s", label, domain.ErrRangeMisconfiguration, axis.Max, axis.Min)
	}
	return nil
}

// SaveConfiguration writes a configuration as YAML
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	if config == nil {
		return errors.New("configuration is nil")
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration with the
// reference scenario, two variations and a rate-by-price sweep
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	policy := domain.DefaultTaxPolicy()
	reference := domain.ReferenceInputs()

	shortStay := reference.WithHorizon(7)

	bigDown := reference
	bigDown.DownPayment = decimal.NewFromInt(875000)

	return &domain.Configuration{
		TaxPolicy: &policy,
		Scenarios: []domain.NamedScenario{
			{Name: "reference", Inputs: reference},
			{Name: "short-stay", Inputs: shortStay},
			{Name: "fifty-percent-down", Inputs: bigDown},
		},
		Sweeps: []domain.SweepRequest{
			{
				Name: "rate-by-price",
				Base: reference,
				X: domain.AxisRange{
					Parameter: domain.ParamMortgageRate,
					Min:       decimal.NewFromInt(4),
					Max:       decimal.NewFromInt(8),
					Step:      decimal.NewFromFloat(0.5),
				},
				Y: domain.AxisRange{
					Parameter: domain.ParamHomePrice,
					Min:       decimal.NewFromInt(1000000),
					Max:       decimal.NewFromInt(2500000),
					Step:      decimal.NewFromInt(250000),
				},
			},
			{
				Name: "down-by-horizon",
				Base: reference,
				X: domain.AxisRange{
					Parameter: domain.ParamDownPaymentPercent,
					Min:       decimal.NewFromInt(10),
					Max:       decimal.NewFromInt(50),
					Step:      decimal.NewFromInt(10),
				},
				Y: domain.AxisRange{
					Parameter: domain.ParamInvestingHorizon,
					Min:       decimal.NewFromInt(5),
					Max:       decimal.NewFromInt(40),
					Step:      decimal.NewFromInt(5),
				},
			},
		},
	}
}
