package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVDetailedExporter provides the full annual projection per scenario/year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "Year",
		"LoanBalance", "Interest", "AssessedValue", "TaxMaintenance", "HomeValue", "SalePrice",
		"CapitalGain", "CapitalGainsTax", "BuyNetWorth", "BuyNetWorthReal",
		"FederalTaxSavings", "StateTaxSavings", "BuyerAnnualCost",
		"RentStartBalance", "RentReturn", "RentExpense", "NewInvestment", "YearEndBalance",
		"TotalInvested", "InvestmentTax", "RentNetWorth", "RentNetWorthReal",
		"Premium", "Recommendation",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range report.Projections {
		for _, yr := range p.Projection.Years {
			row := []string{p.Summary.Name, intToString(yr.Year)}
			for _, v := range []decimal.Decimal{
				yr.LoanBalance, yr.Interest, yr.AssessedValue, yr.TaxMaintenance, yr.HomeValue, yr.SalePrice,
				yr.CapitalGain, yr.CapitalGainsTax, yr.BuyNetWorth, yr.BuyNetWorthReal,
				yr.TaxSavings.Federal, yr.TaxSavings.State, yr.BuyerAnnualCost,
				yr.RentStartBalance, yr.RentReturn, yr.RentExpense, yr.NewInvestment, yr.YearEndBalance,
				yr.TotalInvested, yr.InvestmentTax, yr.RentNetWorth, yr.RentNetWorthReal,
				yr.Premium,
			} {
				row = append(row, v.StringFixed(2))
			}
			row = append(row, string(yr.Recommendation()))
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
