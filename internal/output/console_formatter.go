package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "BUY VERSUS RENT SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, p := range report.Projections {
		s := p.Summary
		breakEven := "never"
		if s.BreakEvenYear != nil {
			breakEven = intToString(*s.BreakEvenYear)
		}
		fmt.Fprintf(&buf, "%s: %s at year %d Buy=%s Rent=%s Diff=%s BreakEven=%s\n",
			s.Name,
			strings.ToUpper(string(s.Recommendation)),
			s.HorizonYear,
			FormatCurrency(s.BuyNetWorthReal),
			FormatCurrency(s.RentNetWorthReal),
			FormatCurrency(s.Difference),
			breakEven,
		)
	}
	for _, sw := range report.Sweeps {
		fmt.Fprintf(&buf, "%s: %d cells, buy %s, rent %s\n",
			sw.Result.Name, sw.Stats.Total, FormatPercentage(sw.Stats.BuyPercent), FormatPercentage(sw.Stats.RentPercent))
	}
	if len(report.Projections) > 1 {
		rec := AnalyzeScenarios(report)
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Strongest case for buying: %s (Δ %s)\n", rec.ScenarioName, FormatCurrency(rec.Difference))
	}
	return buf.Bytes(), nil
}
