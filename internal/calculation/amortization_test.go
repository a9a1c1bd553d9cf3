package calculation

import (
	"errors"
	"testing"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name        string
		homePrice   decimal.Decimal
		downPayment decimal.Decimal
		ratePercent decimal.Decimal
		termYears   int
		expected    float64
		description string
	}{
		{
			name:        "Reference scenario",
			homePrice:   decimal.NewFromInt(1750000),
			downPayment: decimal.NewFromInt(525000),
			ratePercent: decimal.NewFromFloat(6.25),
			termYears:   30,
			expected:    7615.706267576646, // PMT(6.25%, 30, 1,225,000) / 12
			description: "Annual annuity payment quoted monthly",
		},
		{
			name:        "Zero rate is straight-line",
			homePrice:   decimal.NewFromInt(1750000),
			downPayment: decimal.NewFromInt(525000),
			ratePercent: decimal.Zero,
			termYears:   30,
			expected:    1225000.0 / 360.0,
			description: "Loan divided by term in months",
		},
		{
			name:        "Fully paid in cash",
			homePrice:   decimal.NewFromInt(500000),
			downPayment: decimal.NewFromInt(500000),
			ratePercent: decimal.NewFromInt(7),
			termYears:   30,
			expected:    0,
			description: "No loan, no payment",
		},
		{
			name:        "Down payment above price",
			homePrice:   decimal.NewFromInt(500000),
			downPayment: decimal.NewFromInt(600000),
			ratePercent: decimal.NewFromInt(7),
			termYears:   30,
			expected:    0,
			description: "Negative loan amount is treated as no loan",
		},
		{
			name:        "One year term",
			homePrice:   decimal.NewFromInt(110000),
			downPayment: decimal.NewFromInt(10000),
			ratePercent: decimal.NewFromInt(10),
			termYears:   1,
			expected:    110000.0 / 12.0, // principal plus one year of interest
			description: "Single annual payment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MonthlyPayment(tt.homePrice, tt.downPayment, tt.ratePercent, tt.termYears)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got.InexactFloat64(), 0.0001, tt.description)
		})
	}
}

func TestMonthlyPayment_InvalidTerm(t *testing.T) {
	_, err := MonthlyPayment(decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(5), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMonthlyPayment_ZeroDenominator(t *testing.T) {
	// (1 - 2)^2 - 1 == 0
	_, err := MonthlyPayment(decimal.NewFromInt(100000), decimal.Zero, decimal.NewFromInt(-200), 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrComputationDivergence))
}

func TestAnnualPayment(t *testing.T) {
	annual, err := AnnualPayment(decimal.NewFromInt(100000), decimal.NewFromInt(10), 1)
	require.NoError(t, err)
	assert.True(t, annual.Equal(decimal.NewFromInt(110000)), "one year of principal plus interest")

	annual, err = AnnualPayment(decimal.NewFromInt(70000), decimal.Zero, 7)
	require.NoError(t, err)
	assert.True(t, annual.Equal(decimal.NewFromInt(10000)))

	annual, err = AnnualPayment(decimal.NewFromInt(-5), decimal.NewFromInt(5), 30)
	require.NoError(t, err)
	assert.True(t, annual.IsZero())
}

func TestComputeAnnualPayment(t *testing.T) {
	in := domain.ReferenceInputs()
	annual, err := ComputeAnnualPayment(in)
	require.NoError(t, err)
	assert.InDelta(t, 91388.47521091975, annual.InexactFloat64(), 0.0001)

	in.MortgageRate = decimal.Zero
	annual, err = ComputeAnnualPayment(in)
	require.NoError(t, err)
	expected := in.LoanAmount().Div(decimal.NewFromInt(int64(in.LoanTerm)))
	assert.InDelta(t, expected.InexactFloat64(), annual.InexactFloat64(), 1e-6)
}

func TestRemainingBalance(t *testing.T) {
	in := domain.ReferenceInputs()
	payment, err := ComputeAnnualPayment(in)
	require.NoError(t, err)
	loan := in.LoanAmount()

	assert.True(t, RemainingBalance(loan, payment, in.MortgageRate, in.LoanTerm, 0).Equal(loan))
	assert.True(t, RemainingBalance(loan, payment, in.MortgageRate, in.LoanTerm, in.LoanTerm).IsZero())
	assert.True(t, RemainingBalance(loan, payment, in.MortgageRate, in.LoanTerm, in.LoanTerm+5).IsZero())

	// One year: balance grows by a year of interest then drops by one payment.
	oneYear := RemainingBalance(loan, payment, in.MortgageRate, in.LoanTerm, 1)
	expected := loan.Mul(decimal.NewFromFloat(1.0625)).Sub(payment)
	assert.InDelta(t, expected.InexactFloat64(), oneYear.InexactFloat64(), 0.001)

	// Balance declines monotonically across the term.
	prev := loan
	for k := 1; k < in.LoanTerm; k++ {
		b := RemainingBalance(loan, payment, in.MortgageRate, in.LoanTerm, k)
		assert.True(t, b.LessThan(prev), "year %d balance should decline", k)
		prev = b
	}
}

func TestRemainingBalance_MatchesProjection(t *testing.T) {
	in := domain.ReferenceInputs()
	result, err := NewProjectionEngine().CalculateAll(in)
	require.NoError(t, err)

	// Year k opens after k-1 annual payments.
	for k := 0; k < in.LoanTerm; k++ {
		want := RemainingBalance(in.LoanAmount(), result.AnnualPayment, in.MortgageRate, in.LoanTerm, k)
		assert.InDelta(t, want.InexactFloat64(), result.Years[k].LoanBalance.InexactFloat64(), 0.01, "after %d payments", k)
	}
	assert.InDelta(t, 1027272.309, RemainingBalance(in.LoanAmount(), result.AnnualPayment, in.MortgageRate, in.LoanTerm, 10).InexactFloat64(), 0.01)
}

func TestRemainingBalance_ZeroRate(t *testing.T) {
	loan := decimal.NewFromInt(300000)
	payment := decimal.NewFromInt(10000)
	got := RemainingBalance(loan, payment, decimal.Zero, 30, 12)
	assert.True(t, got.Equal(decimal.NewFromInt(180000)))
}

func TestMonthlyBuyCost(t *testing.T) {
	cost, err := MonthlyBuyCost(domain.ReferenceInputs())
	require.NoError(t, err)
	// 7615.71 payment + 19,425 / 12 tax and maintenance
	assert.InDelta(t, 7615.706267576646+1618.75, cost.InexactFloat64(), 0.0001)
}
