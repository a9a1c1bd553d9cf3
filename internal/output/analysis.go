package output

import (
	"sort"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the scenario most favorable to buying.
type Recommendation struct {
	ScenarioName   string
	Difference     decimal.Decimal
	Recommendation domain.Recommendation
	BuyCount       int
	RentCount      int
}

// AnalyzeScenarios ranks scenarios by how strongly buying beats renting at
// their horizon (most negative difference first) and tallies the verdicts.
func AnalyzeScenarios(report *domain.Report) Recommendation {
	if len(report.Projections) == 0 {
		return Recommendation{}
	}
	ranked := make([]domain.ProjectionSummary, 0, len(report.Projections))
	var rec Recommendation
	for _, p := range report.Projections {
		ranked = append(ranked, p.Summary)
		if p.Summary.Recommendation == domain.RecommendBuy {
			rec.BuyCount++
		} else {
			rec.RentCount++
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Difference.LessThan(ranked[j].Difference) })
	best := ranked[0]
	rec.ScenarioName = best.Name
	rec.Difference = best.Difference
	rec.Recommendation = best.Recommendation
	return rec
}
