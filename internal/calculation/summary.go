package calculation

import (
	"github.com/rentbuy/rentbuy-calculator/internal/domain"
)

// Summarize reduces a projection to the headline comparison at its horizon.
func Summarize(name string, result *domain.ProjectionResult) (domain.ProjectionSummary, error) {
	monthlyCost, err := MonthlyBuyCost(result.Inputs)
	if err != nil {
		return domain.ProjectionSummary{}, err
	}

	at := result.AtHorizon(result.Inputs.Horizon())
	summary := domain.ProjectionSummary{
		Name:             name,
		HorizonYear:      at.Year,
		AnnualPayment:    result.AnnualPayment,
		MonthlyBuyCost:   monthlyCost,
		BuyNetWorthReal:  at.BuyNetWorthReal,
		RentNetWorthReal: at.RentNetWorthReal,
		Difference:       at.Premium,
		Recommendation:   at.Recommendation(),
		BreakEvenYear:    BreakEvenYear(result),
	}
	return summary, nil
}

// BreakEvenYear returns the first year in which buying is at least as good as
// renting in real terms, or nil if renting stays ahead throughout.
func BreakEvenYear(result *domain.ProjectionResult) *int {
	for _, yr := range result.Years {
		if yr.Recommendation() == domain.RecommendBuy {
			year := yr.Year
			return &year
		}
	}
	return nil
}

// Project runs a named scenario and summarizes it.
func (pe *ProjectionEngine) Project(name string, in domain.ScenarioInputs) (*domain.ProjectionReport, error) {
	result, err := pe.CalculateAll(in)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(name, result)
	if err != nil {
		return nil, err
	}
	pe.Logger.Infof("scenario %q: %s favored by %s at year %d",
		name, summary.Recommendation, summary.Difference.Abs().StringFixed(2), summary.HorizonYear)
	return &domain.ProjectionReport{Summary: summary, Projection: result}, nil
}
