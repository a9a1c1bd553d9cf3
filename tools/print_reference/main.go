package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rentbuy/rentbuy-calculator/internal/calculation"
	"github.com/rentbuy/rentbuy-calculator/internal/domain"
	"github.com/spf13/cobra"
)

// Prints the reference scenario one year per line with the intermediate
// buy and rent figures, for checking against a spreadsheet.
func main() {
	var horizon int
	cmd := &cobra.Command{
		Use:          "print_reference",
		Short:        "Print the reference scenario year by year",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printReference(cmd.OutOrStdout(), horizon)
		},
	}
	cmd.Flags().IntVar(&horizon, "years", 0, "investing horizon (0 = loan term + 10)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printReference(out io.Writer, horizon int) error {
	in := domain.ReferenceInputs()
	if horizon > 0 {
		in = in.WithHorizon(horizon)
	}

	result, err := calculation.NewProjectionEngine().CalculateAll(in)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Annual payment: %s\n", result.AnnualPayment.StringFixed(2))
	for _, yr := range result.Years {
		fmt.Fprintf(out, "Year %2d\n", yr.Year)
		fmt.Fprintf(out, "  buy:  loan=%s interest=%s taxmaint=%s home=%s sale=%s cgtax=%s nw=%s real=%s\n",
			yr.LoanBalance.StringFixed(2), yr.Interest.StringFixed(2), yr.TaxMaintenance.StringFixed(2),
			yr.HomeValue.StringFixed(2), yr.SalePrice.StringFixed(2), yr.CapitalGainsTax.StringFixed(2),
			yr.BuyNetWorth.StringFixed(2), yr.BuyNetWorthReal.StringFixed(2))
		fmt.Fprintf(out, "  tax:  federal=%s state=%s buyer cost=%s\n",
			yr.TaxSavings.Federal.StringFixed(2), yr.TaxSavings.State.StringFixed(2), yr.BuyerAnnualCost.StringFixed(2))
		fmt.Fprintf(out, "  rent: start=%s return=%s rent=%s invest=%s end=%s basis=%s tax=%s nw=%s real=%s\n",
			yr.RentStartBalance.StringFixed(2), yr.RentReturn.StringFixed(2), yr.RentExpense.StringFixed(2),
			yr.NewInvestment.StringFixed(2), yr.YearEndBalance.StringFixed(2), yr.TotalInvested.StringFixed(2),
			yr.InvestmentTax.StringFixed(2), yr.RentNetWorth.StringFixed(2), yr.RentNetWorthReal.StringFixed(2))
		fmt.Fprintf(out, "  premium=%s (%s)\n", yr.Premium.StringFixed(2), yr.Recommendation())
	}

	summary, err := calculation.Summarize("reference", result)
	if err != nil {
		return err
	}
	if summary.BreakEvenYear != nil {
		fmt.Fprintf(out, "Break-even year: %d\n", *summary.BreakEvenYear)
	}
	return nil
}
