package main

import (
	"fmt"

	"github.com/rentbuy/rentbuy-calculator/internal/calculation"
	"github.com/rentbuy/rentbuy-calculator/internal/domain"
	"github.com/rentbuy/rentbuy-calculator/internal/output"
	rbdecimal "github.com/rentbuy/rentbuy-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newPaymentCmd() *cobra.Command {
	var (
		homePrice, downPayment, rate, taxRate string
		term, after                           int
	)

	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Print the mortgage payment, first-year monthly cost of owning and a later loan balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := domain.ReferenceInputs()
			in.LoanTerm = term
			for _, f := range []struct {
				flag  string
				value string
				dst   *decimal.Decimal
			}{
				{"home-price", homePrice, &in.HomePrice},
				{"down-payment", downPayment, &in.DownPayment},
				{"rate", rate, &in.MortgageRate},
				{"tax-rate", taxRate, &in.TaxMaintenanceRate},
			} {
				d, err := decimal.NewFromString(f.value)
				if err != nil {
					return fmt.Errorf("%w: --%s: %q is not a number", domain.ErrInvalidInput, f.flag, f.value)
				}
				*f.dst = d
			}
			if err := in.Validate(); err != nil {
				return err
			}

			if after < 0 {
				return fmt.Errorf("%w: --after cannot be negative, got %d", domain.ErrInvalidInput, after)
			}

			annual, err := calculation.ComputeAnnualPayment(in)
			if err != nil {
				return err
			}
			cost, err := calculation.MonthlyBuyCost(in)
			if err != nil {
				return err
			}

			loan := decimal.Max(in.LoanAmount(), decimal.Zero)
			balance := calculation.RemainingBalance(loan, annual, in.MortgageRate, in.LoanTerm, after)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loan Amount:         %s\n", output.FormatCurrency(loan))
			fmt.Fprintf(out, "Monthly Payment:     %s\n", output.FormatCurrency(rbdecimal.Monthly(annual)))
			fmt.Fprintf(out, "Annual Payment:      %s\n", output.FormatCurrency(annual))
			fmt.Fprintf(out, "Monthly Cost to Own: %s\n", output.FormatCurrency(cost))
			fmt.Fprintf(out, "Balance After %d Yrs: %s\n", after, output.FormatCurrency(balance))
			return nil
		},
	}

	ref := domain.ReferenceInputs()
	cmd.Flags().StringVar(&homePrice, "home-price", ref.HomePrice.String(), "purchase price")
	cmd.Flags().StringVar(&downPayment, "down-payment", ref.DownPayment.String(), "cash paid at purchase")
	cmd.Flags().StringVar(&rate, "rate", ref.MortgageRate.String(), "annual mortgage rate in percent")
	cmd.Flags().StringVar(&taxRate, "tax-rate", ref.TaxMaintenanceRate.String(), "annual property tax and maintenance in percent of price")
	cmd.Flags().IntVar(&term, "term", ref.LoanTerm, "loan term in years")
	cmd.Flags().IntVar(&after, "after", 10, "report the loan balance after this many annual payments")
	return cmd
}
