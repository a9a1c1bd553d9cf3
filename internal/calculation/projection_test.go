package calculation

import (
	"errors"
	"testing"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateAll_ReferenceFirstYear(t *testing.T) {
	engine := NewProjectionEngine()
	result, err := engine.CalculateAll(domain.ReferenceInputs())
	require.NoError(t, err)
	require.Equal(t, 40, result.Len(), "default horizon is loan term plus ten years")

	y1 := result.Years[0]
	assert.Equal(t, 1, y1.Year)
	assert.InDelta(t, 1225000, y1.LoanBalance.InexactFloat64(), 0.0001)
	assert.InDelta(t, 76562.5, y1.Interest.InexactFloat64(), 0.0001)
	assert.InDelta(t, 1750000, y1.AssessedValue.InexactFloat64(), 0.0001, "assessed value is not grown in year 1")
	assert.InDelta(t, 19425, y1.TaxMaintenance.InexactFloat64(), 0.0001)
	assert.InDelta(t, 1802500, y1.HomeValue.InexactFloat64(), 0.0001)
	assert.InDelta(t, 1748425, y1.SalePrice.InexactFloat64(), 0.0001)
	assert.True(t, y1.CapitalGain.IsZero())
	assert.True(t, y1.CapitalGainsTax.IsZero())
	assert.InDelta(t, 538250.9752109197, y1.BuyNetWorth.InexactFloat64(), 0.001)
	assert.InDelta(t, 527697.0345205095, y1.BuyNetWorthReal.InexactFloat64(), 0.001)
	assert.InDelta(t, 6586.65, y1.TaxSavings.Federal.InexactFloat64(), 0.001)
	assert.InDelta(t, 9469.467, y1.TaxSavings.State.InexactFloat64(), 0.001)
	assert.InDelta(t, 94757.35821091975, y1.BuyerAnnualCost.InexactFloat64(), 0.001)

	assert.InDelta(t, 525000, y1.RentStartBalance.InexactFloat64(), 0.0001)
	assert.InDelta(t, 31500, y1.RentReturn.InexactFloat64(), 0.0001)
	assert.InDelta(t, 54000, y1.RentExpense.InexactFloat64(), 0.0001)
	assert.InDelta(t, 40757.35821091975, y1.NewInvestment.InexactFloat64(), 0.001)
	assert.InDelta(t, 597257.3582109198, y1.YearEndBalance.InexactFloat64(), 0.001)
	assert.InDelta(t, 585570.8582109198, y1.RentNetWorth.InexactFloat64(), 0.001)
	assert.InDelta(t, 574089.0766773723, y1.RentNetWorthReal.InexactFloat64(), 0.001)
	assert.InDelta(t, 46392.04215686274, y1.Premium.InexactFloat64(), 0.001)
	assert.Equal(t, domain.RecommendRent, y1.Recommendation())
}

func TestCalculateAll_ReferenceFinalYear(t *testing.T) {
	result, err := NewProjectionEngine().CalculateAll(domain.ReferenceInputs())
	require.NoError(t, err)

	last := result.Last()
	assert.Equal(t, 40, last.Year)
	assert.True(t, last.LoanBalance.IsZero())
	assert.InDelta(t, 5708566.136, last.HomeValue.InexactFloat64(), 0.01)
	assert.InDelta(t, 1219591.695, last.CapitalGainsTax.InexactFloat64(), 0.01)
	assert.InDelta(t, 4317717.457, last.BuyNetWorth.InexactFloat64(), 0.01)
	assert.InDelta(t, 1955452.85, last.BuyNetWorthReal.InexactFloat64(), 0.01)
	assert.InDelta(t, 152564.736, last.RentNetWorthReal.InexactFloat64(), 0.01)
	assert.InDelta(t, -1802888.115, last.Premium.InexactFloat64(), 0.01)
	assert.Equal(t, domain.RecommendBuy, last.Recommendation())
}

func TestCalculateAll_SeriesInvariants(t *testing.T) {
	in := domain.ReferenceInputs()
	result, err := NewProjectionEngine().CalculateAll(in)
	require.NoError(t, err)

	inflation := decimal.NewFromFloat(1.02)
	rentGrowth := decimal.NewFromFloat(1.05)
	factor := decimal.NewFromInt(1)
	rent := in.Rent

	for i, yr := range result.Years {
		assert.Equal(t, i+1, yr.Year, "years are contiguous from 1")

		factor = factor.Mul(inflation)
		assert.InDelta(t, yr.BuyNetWorth.Div(factor).InexactFloat64(), yr.BuyNetWorthReal.InexactFloat64(), 0.001,
			"year %d buy real value", yr.Year)
		assert.InDelta(t, yr.RentNetWorth.Div(factor).InexactFloat64(), yr.RentNetWorthReal.InexactFloat64(), 0.001,
			"year %d rent real value", yr.Year)
		assert.True(t, yr.Premium.Equal(yr.RentNetWorthReal.Sub(yr.BuyNetWorthReal)))

		assert.InDelta(t, rent.InexactFloat64(), yr.RentExpense.InexactFloat64(), 0.001, "year %d rent", yr.Year)
		rent = rent.Mul(rentGrowth)

		assert.False(t, yr.LoanBalance.IsNegative(), "year %d loan balance", yr.Year)
		assert.False(t, yr.CapitalGain.IsNegative())

		if i > 0 {
			prev := result.Years[i-1]
			assert.True(t, yr.RentExpense.GreaterThan(prev.RentExpense), "rent grows with a positive increase")
			assert.True(t, yr.RentStartBalance.Equal(prev.YearEndBalance), "renter carries the prior year-end balance")
			assert.True(t, yr.TotalInvested.Equal(prev.TotalInvested.Add(yr.NewInvestment)))
		}
	}
}

func TestCalculateAll_LoanPaidOffBeforeHorizon(t *testing.T) {
	in := domain.ReferenceInputs()
	in.LoanTerm = 5
	in = in.WithHorizon(10)

	engine := NewProjectionEngine()
	result, err := engine.CalculateAll(in)
	require.NoError(t, err)
	require.Equal(t, 10, result.Len())

	expected := []float64{1225000, 1008771.32, 779028.35, 534926.44, 275568.17, 0, 0, 0, 0, 0}
	for i, want := range expected {
		assert.InDelta(t, want, result.Years[i].LoanBalance.InexactFloat64(), 0.01, "year %d loan", i+1)
	}

	for _, yr := range result.Years[5:] {
		assert.True(t, yr.LoanBalance.IsZero())
		assert.True(t, yr.Interest.IsZero())
		// Once the loan is gone the payment no longer counts as a cost.
		expectedCost := yr.TaxMaintenance.Sub(yr.TaxSavings.Total())
		assert.True(t, yr.BuyerAnnualCost.Equal(expectedCost), "year %d buyer cost excludes the payment", yr.Year)
		assert.True(t, yr.TaxSavings.Federal.IsZero(), "federal SALT cap alone never clears the standard deduction")
	}
}

func TestCalculateAll_NoPaymentAfterTerm(t *testing.T) {
	engine := NewProjectionEngine()
	check := func(rate decimal.Decimal, term int) {
		in := domain.ReferenceInputs()
		in.MortgageRate = rate
		in.LoanTerm = term
		in = in.WithHorizon(term + 1)

		result, err := engine.CalculateAll(in)
		require.NoError(t, err)
		final := result.Years[term-1]
		after := result.Years[term]

		assert.True(t, final.LoanBalance.IsPositive(), "rate %s term %d: loan open in the last scheduled year", rate, term)
		assert.True(t, after.LoanBalance.IsZero(), "rate %s term %d: loan repaid after the term", rate, term)
		assert.True(t, after.Interest.IsZero(), "rate %s term %d: no interest after the term", rate, term)
		expectedCost := after.TaxMaintenance.Sub(after.TaxSavings.Total())
		assert.True(t, after.BuyerAnnualCost.Equal(expectedCost),
			"rate %s term %d: year %d buyer cost %s includes a payment", rate, term, after.Year, after.BuyerAnnualCost)
	}

	for _, term := range []int{15, 20, 30} {
		for bp := int64(300); bp <= 800; bp += 5 {
			check(decimal.New(bp, -2), term)
		}
	}
	for _, term := range []int{1, 7, 13} {
		check(decimal.Zero, term)
	}
}

func TestLoanBalance(t *testing.T) {
	assert.True(t, loanBalance(decimal.New(105, -16)).IsZero(), "sub-cent remainder is repaid")
	assert.True(t, loanBalance(decimal.New(4999, -6)).IsZero())
	assert.True(t, loanBalance(decimal.NewFromInt(-3)).IsZero())
	assert.True(t, loanBalance(decimal.New(5, -3)).Equal(decimal.New(5, -3)))
	assert.True(t, loanBalance(decimal.NewFromFloat(1234.56)).Equal(decimal.NewFromFloat(1234.56)))
}

func TestCalculateAll_CarriedStateIsRounded(t *testing.T) {
	result, err := NewProjectionEngine().CalculateAll(domain.ReferenceInputs())
	require.NoError(t, err)

	for _, yr := range result.Years {
		assert.LessOrEqual(t, -yr.LoanBalance.Exponent(), int32(moneyScale), "year %d loan", yr.Year)
		assert.LessOrEqual(t, -yr.HomeValue.Exponent(), int32(moneyScale), "year %d home value", yr.Year)
		assert.LessOrEqual(t, -yr.YearEndBalance.Exponent(), int32(moneyScale), "year %d balance", yr.Year)
		assert.LessOrEqual(t, -yr.TotalInvested.Exponent(), int32(moneyScale), "year %d invested", yr.Year)
	}
}

func TestCalculateAll_NoLoan(t *testing.T) {
	in := domain.ReferenceInputs()
	in.DownPayment = in.HomePrice

	result, err := NewProjectionEngine().CalculateAll(in)
	require.NoError(t, err)
	assert.True(t, result.AnnualPayment.IsZero())

	y1 := result.Years[0]
	assert.True(t, y1.LoanBalance.IsZero())
	assert.True(t, y1.TaxSavings.Federal.IsZero())
	assert.InDelta(t, 1156.967, y1.TaxSavings.State.InexactFloat64(), 0.0001)
	assert.InDelta(t, 18268.033, y1.BuyerAnnualCost.InexactFloat64(), 0.0001)
}

func TestCalculateAll_DownPaymentAbovePrice(t *testing.T) {
	in := domain.ReferenceInputs()
	in.DownPayment = in.HomePrice.Add(decimal.NewFromInt(100000))

	result, err := NewProjectionEngine().CalculateAll(in)
	require.NoError(t, err)
	assert.True(t, result.Years[0].LoanBalance.IsZero(), "loan is floored at zero")
	assert.True(t, result.Years[0].Interest.IsZero())
}

func TestCalculateAll_Deterministic(t *testing.T) {
	engine := NewProjectionEngine()
	first, err := engine.CalculateAll(domain.ReferenceInputs())
	require.NoError(t, err)
	second, err := engine.CalculateAll(domain.ReferenceInputs())
	require.NoError(t, err)

	require.Equal(t, first.Len(), second.Len())
	for i := range first.Years {
		assert.True(t, first.Years[i].Premium.Equal(second.Years[i].Premium))
		assert.True(t, first.Years[i].BuyNetWorth.Equal(second.Years[i].BuyNetWorth))
		assert.True(t, first.Years[i].RentNetWorth.Equal(second.Years[i].RentNetWorth))
	}
}

func TestCalculateAll_InvalidInputs(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *domain.ScenarioInputs)
	}{
		{"Zero home price", func(in *domain.ScenarioInputs) { in.HomePrice = decimal.Zero }},
		{"Negative down payment", func(in *domain.ScenarioInputs) { in.DownPayment = decimal.NewFromInt(-1) }},
		{"Zero loan term", func(in *domain.ScenarioInputs) { in.LoanTerm = 0 }},
		{"Negative rent", func(in *domain.ScenarioInputs) { in.Rent = decimal.NewFromInt(-100) }},
		{"Zero horizon", func(in *domain.ScenarioInputs) { h := 0; in.InvestingHorizon = &h }},
		{"Inflation at -100%", func(in *domain.ScenarioInputs) { in.Inflation = decimal.NewFromInt(-100) }},
		{"Closing cost over 100%", func(in *domain.ScenarioInputs) { in.ClosingCostRate = decimal.NewFromInt(101) }},
	}

	engine := NewProjectionEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := domain.ReferenceInputs()
			tt.modify(&in)
			result, err := engine.CalculateAll(in)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestCalculateAll_Divergence(t *testing.T) {
	in := domain.ReferenceInputs()
	in.HomeReturn = decimal.NewFromInt(1000000)
	in = in.WithHorizon(100)

	_, err := NewProjectionEngine().CalculateAll(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrComputationDivergence), "got %v", err)
}

func TestInitialYearAndNextYear(t *testing.T) {
	in := domain.ReferenceInputs().WithHorizon(3)
	engine := NewProjectionEngine()

	full, err := engine.CalculateAll(in)
	require.NoError(t, err)

	payment, err := ComputeAnnualPayment(in)
	require.NoError(t, err)

	record, state, err := engine.InitialYear(in, payment)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Year)
	assert.True(t, record.Premium.Equal(full.Years[0].Premium))
	assert.True(t, state.InvestmentBalance.Equal(record.YearEndBalance))

	for i := 1; i < 3; i++ {
		record, state, err = engine.NextYear(in, payment, state)
		require.NoError(t, err)
		assert.Equal(t, i+1, record.Year)
		assert.True(t, record.Premium.Equal(full.Years[i].Premium), "year %d", i+1)
		assert.True(t, record.LoanBalance.Equal(full.Years[i].LoanBalance))
	}
}

func TestProjectionEngineWithPolicy(t *testing.T) {
	policy := domain.DefaultTaxPolicy()
	policy.FederalRate = decimal.Zero
	policy.StateRate = decimal.Zero

	result, err := NewProjectionEngineWithPolicy(policy).CalculateAll(domain.ReferenceInputs().WithHorizon(5))
	require.NoError(t, err)
	for _, yr := range result.Years {
		assert.True(t, yr.TaxSavings.Total().IsZero())
		assert.True(t, yr.CapitalGainsTax.IsZero())
		assert.True(t, yr.InvestmentTax.IsZero())
	}
}

func TestSetLogger(t *testing.T) {
	engine := NewProjectionEngine()
	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}
