// Package decimal holds the small set of rate and rounding helpers the
// projection engine layers over shopspring/decimal.
package decimal

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	// Hundred converts between percentages and fractions.
	Hundred = decimal.NewFromInt(100)
	// Twelve converts between annual and monthly amounts.
	Twelve = decimal.NewFromInt(12)
	// One is the multiplicative identity, used for growth factors.
	One = decimal.NewFromInt(1)
)

// FromPercent converts a percentage (6.25) to a fraction (0.0625).
func FromPercent(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(Hundred)
}

// GrowthFactor returns 1 + pct/100.
func GrowthFactor(pct decimal.Decimal) decimal.Decimal {
	return One.Add(FromPercent(pct))
}

// NonNegative floors a value at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Monthly converts an annual amount to a monthly amount.
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(Twelve)
}

// IsFinite reports whether d still fits in a float64. Values beyond that range
// are unusable by any caller that charts or compares them as floats.
func IsFinite(d decimal.Decimal) bool {
	f := d.InexactFloat64()
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
