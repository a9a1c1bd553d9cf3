package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "HorizonYear", "AnnualPayment", "MonthlyBuyCost", "BuyNetWorthReal", "RentNetWorthReal", "Difference", "Recommendation", "BreakEvenYear"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range report.Projections {
		s := p.Summary
		row := []string{
			s.Name,
			intToString(s.HorizonYear),
			s.AnnualPayment.StringFixed(2),
			s.MonthlyBuyCost.StringFixed(2),
			s.BuyNetWorthReal.StringFixed(2),
			s.RentNetWorthReal.StringFixed(2),
			s.Difference.StringFixed(2),
			string(s.Recommendation),
			optionalIntToString(s.BreakEvenYear),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
