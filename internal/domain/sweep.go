package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SweepParameter names a scenario dimension that can be varied on a sweep axis.
type SweepParameter string

const (
	ParamMortgageRate       SweepParameter = "mortgage_rate"
	ParamHomePrice          SweepParameter = "home_price"
	ParamDownPayment        SweepParameter = "down_payment"
	ParamDownPaymentPercent SweepParameter = "down_payment_percent"
	ParamInvestingHorizon   SweepParameter = "investing_horizon"
)

// SweepParameters lists every parameter accepted on an axis.
func SweepParameters() []SweepParameter {
	return []SweepParameter{ParamMortgageRate, ParamHomePrice, ParamDownPayment, ParamDownPaymentPercent, ParamInvestingHorizon}
}

// ParseSweepParameter accepts snake_case names plus a few camelCase aliases.
func ParseSweepParameter(s string) (SweepParameter, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	switch n {
	case "mortgage_rate", "mortgagerate", "rate", "interest":
		return ParamMortgageRate, nil
	case "home_price", "homeprice", "price":
		return ParamHomePrice, nil
	case "down_payment", "downpayment", "down":
		return ParamDownPayment, nil
	case "down_payment_percent", "downpaymentpercent", "down_percent":
		return ParamDownPaymentPercent, nil
	case "investing_horizon", "investinghorizon", "horizon":
		return ParamInvestingHorizon, nil
	}
	return "", fmt.Errorf("%w: unknown sweep parameter %q", ErrRangeMisconfiguration, s)
}

// Valid reports whether p is a known parameter.
func (p SweepParameter) Valid() bool {
	for _, known := range SweepParameters() {
		if p == known {
			return true
		}
	}
	return false
}

// AxisRange describes the values swept along one axis. Min == Max yields a
// single value.
type AxisRange struct {
	Parameter SweepParameter  `yaml:"parameter" json:"parameter"`
	Min       decimal.Decimal `yaml:"min" json:"min"`
	Max       decimal.Decimal `yaml:"max" json:"max"`
	Step      decimal.Decimal `yaml:"step" json:"step"`
}

// SweepRequest is a two-axis what-if analysis. Dimensions not on an axis keep
// the values in Base.
type SweepRequest struct {
	Name string         `yaml:"name" json:"name"`
	Base ScenarioInputs `yaml:"base" json:"base"`
	X    AxisRange      `yaml:"x" json:"x"`
	Y    AxisRange      `yaml:"y" json:"y"`
}

// SweepCell is the outcome of one grid cell, compared at the cell's horizon.
type SweepCell struct {
	XValue         decimal.Decimal `json:"x_value"`
	YValue         decimal.Decimal `json:"y_value"`
	HorizonYear    int             `json:"horizon_year"`
	BuyNetWorth    decimal.Decimal `json:"buy_net_worth"`  // real dollars
	RentNetWorth   decimal.Decimal `json:"rent_net_worth"` // real dollars
	Difference     decimal.Decimal `json:"difference"`     // rent minus buy
	Classification Recommendation  `json:"classification"`
}

// SweepResult holds the grid indexed as Data[yIndex][xIndex].
type SweepResult struct {
	Name       string            `json:"name"`
	XParameter SweepParameter    `json:"x_parameter"`
	YParameter SweepParameter    `json:"y_parameter"`
	XValues    []decimal.Decimal `json:"x_values"`
	YValues    []decimal.Decimal `json:"y_values"`
	Data       [][]SweepCell     `json:"data"`
}

// SweepStats counts how many cells favor each side.
type SweepStats struct {
	Total       int             `json:"total"`
	BuyCount    int             `json:"buy_count"`
	RentCount   int             `json:"rent_count"`
	BuyPercent  decimal.Decimal `json:"buy_percent"`
	RentPercent decimal.Decimal `json:"rent_percent"`
}

// Stats tallies the grid.
func (sr *SweepResult) Stats() SweepStats {
	var st SweepStats
	for _, row := range sr.Data {
		for _, cell := range row {
			st.Total++
			if cell.Classification == RecommendBuy {
				st.BuyCount++
			} else {
				st.RentCount++
			}
		}
	}
	if st.Total > 0 {
		hundred := decimal.NewFromInt(100)
		total := decimal.NewFromInt(int64(st.Total))
		st.BuyPercent = decimal.NewFromInt(int64(st.BuyCount)).Mul(hundred).Div(total)
		st.RentPercent = decimal.NewFromInt(int64(st.RentCount)).Mul(hundred).Div(total)
	}
	return st
}

// SweepReport bundles the grid with its tallies for formatters.
type SweepReport struct {
	Result *SweepResult `json:"result"`
	Stats  SweepStats   `json:"stats"`
}
