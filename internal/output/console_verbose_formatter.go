package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 96))
	fmt.Fprintln(&buf, "BUY VERSUS RENT ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 96))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, p := range report.Projections {
		writeScenario(&buf, i+1, p)
	}

	if len(report.Projections) > 1 {
		rec := AnalyzeScenarios(report)
		fmt.Fprintln(&buf, "SCENARIO COMPARISON")
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "Buying favored in %d of %d scenarios\n", rec.BuyCount, rec.BuyCount+rec.RentCount)
		fmt.Fprintf(&buf, "Strongest case for buying: %s (difference %s)\n", rec.ScenarioName, FormatCurrency(rec.Difference))
		fmt.Fprintln(&buf)
	}

	for _, sw := range report.Sweeps {
		writeSweep(&buf, sw)
	}
	return buf.Bytes(), nil
}

func writeScenario(w io.Writer, n int, p domain.ProjectionReport) {
	s := p.Summary
	in := p.Projection.Inputs

	fmt.Fprintf(w, "SCENARIO %d: %s\n", n, s.Name)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w, "INPUTS:")
	fmt.Fprintf(w, "  Home Price:            %s\n", FormatCurrency(in.HomePrice))
	fmt.Fprintf(w, "  Down Payment:          %s\n", FormatCurrency(in.DownPayment))
	fmt.Fprintf(w, "  Mortgage:              %s over %d years\n", FormatPercentage(in.MortgageRate), in.LoanTerm)
	fmt.Fprintf(w, "  Tax & Maintenance:     %s of assessed value\n", FormatPercentage(in.TaxMaintenanceRate))
	fmt.Fprintf(w, "  First-Year Rent:       %s (+%s/yr)\n", FormatCurrency(in.Rent), FormatPercentage(in.RentIncrease))
	fmt.Fprintf(w, "  Home / Stock Return:   %s / %s\n", FormatPercentage(in.HomeReturn), FormatPercentage(in.StockReturn))
	fmt.Fprintf(w, "  Reassessment:          %s\n", FormatPercentage(in.PropertyReassessmentRate))
	fmt.Fprintf(w, "  Inflation:             %s\n", FormatPercentage(in.Inflation))
	fmt.Fprintf(w, "  Closing Costs:         %s\n", FormatPercentage(in.ClosingCostRate))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SUMMARY:")
	fmt.Fprintf(w, "  Monthly Payment:       %s\n", FormatCurrency(s.AnnualPayment.Div(decimalTwelve)))
	fmt.Fprintf(w, "  Monthly Cost to Own:   %s\n", FormatCurrency(s.MonthlyBuyCost))
	fmt.Fprintf(w, "  Buy Net Worth (real):  %s\n", FormatCurrency(s.BuyNetWorthReal))
	fmt.Fprintf(w, "  Rent Net Worth (real): %s\n", FormatCurrency(s.RentNetWorthReal))
	fmt.Fprintf(w, "  Difference (rent-buy): %s\n", FormatCurrency(s.Difference))
	if s.BreakEvenYear != nil {
		fmt.Fprintf(w, "  Break-Even Year:       %d\n", *s.BreakEvenYear)
	} else {
		fmt.Fprintln(w, "  Break-Even Year:       never")
	}
	fmt.Fprintf(w, "  Recommendation:        %s (year %d)\n", strings.ToUpper(string(s.Recommendation)), s.HorizonYear)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%4s %16s %16s %16s %16s %16s %6s\n", "Year", "Loan", "Home Value", "Buy NW (real)", "Rent NW (real)", "Premium", "Favors")
	fmt.Fprintln(w, strings.Repeat("-", 96))
	for _, yr := range p.Projection.Years {
		fmt.Fprintf(w, "%4d %16s %16s %16s %16s %16s %6s\n",
			yr.Year,
			FormatCurrency(yr.LoanBalance),
			FormatCurrency(yr.HomeValue),
			FormatCurrency(yr.BuyNetWorthReal),
			FormatCurrency(yr.RentNetWorthReal),
			FormatCurrency(yr.Premium),
			yr.Recommendation(),
		)
	}
	fmt.Fprintln(w)
}

func writeSweep(w io.Writer, sw domain.SweepReport) {
	res := sw.Result
	fmt.Fprintf(w, "SWEEP: %s\n", res.Name)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Rows: %s, Columns: %s\n", res.YParameter, res.XParameter)
	fmt.Fprintf(w, "Buy favored: %d (%s)  Rent favored: %d (%s)  Cells: %d\n",
		sw.Stats.BuyCount, FormatPercentage(sw.Stats.BuyPercent),
		sw.Stats.RentCount, FormatPercentage(sw.Stats.RentPercent), sw.Stats.Total)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Difference in real dollars, rent minus buy (B = buy favored, R = rent favored):")
	fmt.Fprintf(w, "%14s", "")
	for _, x := range res.XValues {
		fmt.Fprintf(w, " %12s", x.String())
	}
	fmt.Fprintln(w)
	for i, y := range res.YValues {
		fmt.Fprintf(w, "%14s", y.String())
		for _, cell := range res.Data[i] {
			mark := "R"
			if cell.Classification == domain.RecommendBuy {
				mark = "B"
			}
			fmt.Fprintf(w, " %10s %s", FormatThousands(cell.Difference), mark)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}
