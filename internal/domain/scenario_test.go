package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioInputs_Horizon(t *testing.T) {
	in := ReferenceInputs()
	assert.Equal(t, 40, in.Horizon(), "defaults to loan term plus padding")

	short := in.WithHorizon(7)
	assert.Equal(t, 7, short.Horizon())
	assert.Nil(t, in.InvestingHorizon, "WithHorizon returns a copy")
}

func TestScenarioInputs_LoanAmount(t *testing.T) {
	in := ReferenceInputs()
	assert.True(t, in.LoanAmount().Equal(decimal.NewFromInt(1225000)))

	in.DownPayment = decimal.NewFromInt(2000000)
	assert.True(t, in.LoanAmount().IsNegative(), "not floored here")
}

func TestScenarioInputs_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(in *ScenarioInputs)
		wantErr bool
	}{
		{"Reference is valid", func(in *ScenarioInputs) {}, false},
		{"Zero down payment", func(in *ScenarioInputs) { in.DownPayment = decimal.Zero }, false},
		{"Down payment above price", func(in *ScenarioInputs) { in.DownPayment = decimal.NewFromInt(2000000) }, false},
		{"Zero mortgage rate", func(in *ScenarioInputs) { in.MortgageRate = decimal.Zero }, false},
		{"Negative home return", func(in *ScenarioInputs) { in.HomeReturn = decimal.NewFromInt(-20) }, false},
		{"Negative home price", func(in *ScenarioInputs) { in.HomePrice = decimal.NewFromInt(-1) }, true},
		{"Negative mortgage rate", func(in *ScenarioInputs) { in.MortgageRate = decimal.NewFromInt(-1) }, true},
		{"Negative tax rate", func(in *ScenarioInputs) { in.TaxMaintenanceRate = decimal.NewFromInt(-1) }, true},
		{"Negative closing cost", func(in *ScenarioInputs) { in.ClosingCostRate = decimal.NewFromInt(-1) }, true},
		{"Stock return at -100%", func(in *ScenarioInputs) { in.StockReturn = decimal.NewFromInt(-100) }, true},
		{"Rent increase below -100%", func(in *ScenarioInputs) { in.RentIncrease = decimal.NewFromInt(-150) }, true},
		{"Negative horizon", func(in *ScenarioInputs) { h := -3; in.InvestingHorizon = &h }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ReferenceInputs()
			tt.modify(&in)
			err := in.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestConfiguration_Lookup(t *testing.T) {
	cfg := &Configuration{
		Scenarios: []NamedScenario{{Name: "a", Inputs: ReferenceInputs()}},
		Sweeps:    []SweepRequest{{Name: "grid"}},
	}

	sc, ok := cfg.FindScenario("a")
	assert.True(t, ok)
	assert.Equal(t, "a", sc.Name)
	_, ok = cfg.FindScenario("b")
	assert.False(t, ok)

	_, ok = cfg.FindSweep("grid")
	assert.True(t, ok)
	_, ok = cfg.FindSweep("other")
	assert.False(t, ok)
}

func TestConfiguration_EffectiveTaxPolicy(t *testing.T) {
	cfg := &Configuration{}
	assert.True(t, cfg.EffectiveTaxPolicy().CombinedRate().Equal(decimal.NewFromFloat(0.371)))

	custom := DefaultTaxPolicy()
	custom.StateRate = decimal.Zero
	cfg.TaxPolicy = &custom
	assert.True(t, cfg.EffectiveTaxPolicy().CombinedRate().Equal(decimal.NewFromFloat(0.238)))
}
