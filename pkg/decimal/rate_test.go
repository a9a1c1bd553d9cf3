package decimal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFromPercent(t *testing.T) {
	assert.True(t, FromPercent(decimal.NewFromFloat(6.25)).Equal(decimal.NewFromFloat(0.0625)))
	assert.True(t, FromPercent(decimal.Zero).IsZero())
}

func TestGrowthFactor(t *testing.T) {
	assert.True(t, GrowthFactor(decimal.NewFromInt(3)).Equal(decimal.NewFromFloat(1.03)))
	assert.True(t, GrowthFactor(decimal.NewFromInt(-100)).IsZero())
}

func TestNonNegative(t *testing.T) {
	assert.True(t, NonNegative(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, NonNegative(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
}

func TestMonthly(t *testing.T) {
	assert.True(t, Monthly(decimal.NewFromInt(120000)).Equal(decimal.NewFromInt(10000)))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(decimal.NewFromInt(1750000)))
	huge := decimal.New(1, 400)
	assert.False(t, IsFinite(huge))
	assert.False(t, IsFinite(huge.Neg()))
}
