package main

import (
	"fmt"
	"strings"

	"github.com/rentbuy/rentbuy-calculator/internal/calculation"
	"github.com/rentbuy/rentbuy-calculator/internal/config"
	"github.com/rentbuy/rentbuy-calculator/internal/domain"
	"github.com/rentbuy/rentbuy-calculator/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		configPath string
		sweepName  string
		baseName   string
		xAxis      string
		yAxis      string
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a two-axis what-if grid",
		Long: `Evaluate a two-axis what-if grid. Sweeps come from the scenario file, or
are given ad hoc with --x and --y as parameter:min:max:step, e.g.

  rentbuy sweep --x mortgage_rate:4:8:0.5 --y home_price:1000000:2500000:250000

Ad hoc sweeps start from --base (a scenario in --config) or the reference scenario.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := &domain.Configuration{}
			if configPath != "" {
				loaded, err := config.NewInputParser().LoadFromFile(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			requests, err := selectSweeps(cfg, sweepName, baseName, xAxis, yAxis)
			if err != nil {
				return err
			}

			policy := cfg.EffectiveTaxPolicy()
			engine := calculation.NewCalculationEngineWithPolicy(policy)
			engine.SetLogger(calculation.NewZapLogger(a.logger))
			engine.Sweeps.Workers = a.settings.Workers
			engine.Sweeps.Progress = func(done, total int) {
				a.logger.Debug("sweep progress", zap.Int("completed", done), zap.Int("total", total))
			}

			report, err := engine.RunScenarios(cmd.Context(), &domain.Configuration{Sweeps: requests})
			if err != nil {
				return err
			}
			report.Assumptions = output.GenerateAssumptions(policy)

			return emit(cmd, a, report, sweepFormat(a.settings.Format))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "scenario file (yaml)")
	cmd.Flags().StringVarP(&sweepName, "sweep", "s", "", "run only the named sweep")
	cmd.Flags().StringVar(&baseName, "base", "", "base scenario for an ad hoc sweep")
	cmd.Flags().StringVar(&xAxis, "x", "", "ad hoc x axis as parameter:min:max:step")
	cmd.Flags().StringVar(&yAxis, "y", "", "ad hoc y axis as parameter:min:max:step")
	cmd.Flags().Int("workers", calculation.DefaultSweepWorkers, "parallel projections")
	cmd.Flags().StringP("format", "f", "console", "output format (see 'rentbuy formats')")
	cmd.Flags().StringP("output", "o", "", "write the report to a timestamped file in this directory")
	return cmd
}

func selectSweeps(cfg *domain.Configuration, sweepName, baseName, xAxis, yAxis string) ([]domain.SweepRequest, error) {
	if xAxis != "" || yAxis != "" {
		if xAxis == "" || yAxis == "" {
			return nil, fmt.Errorf("%w: --x and --y must be given together", domain.ErrRangeMisconfiguration)
		}
		base := domain.ReferenceInputs()
		if baseName != "" {
			sc, ok := cfg.FindScenario(baseName)
			if !ok {
				return nil, fmt.Errorf("base scenario %q not found", baseName)
			}
			base = sc.Inputs
		}
		x, err := parseAxis(xAxis)
		if err != nil {
			return nil, fmt.Errorf("--x: %w", err)
		}
		y, err := parseAxis(yAxis)
		if err != nil {
			return nil, fmt.Errorf("--y: %w", err)
		}
		return []domain.SweepRequest{{Name: "ad-hoc", Base: base, X: x, Y: y}}, nil
	}

	if sweepName != "" {
		sw, ok := cfg.FindSweep(sweepName)
		if !ok {
			return nil, fmt.Errorf("sweep %q not found", sweepName)
		}
		return []domain.SweepRequest{sw}, nil
	}
	if len(cfg.Sweeps) == 0 {
		return nil, fmt.Errorf("no sweeps to run: use --config with a sweeps section, or --x and --y")
	}
	return cfg.Sweeps, nil
}

// parseAxis reads parameter:min:max:step.
func parseAxis(arg string) (domain.AxisRange, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 4 {
		return domain.AxisRange{}, fmt.Errorf("%w: want parameter:min:max:step, got %q", domain.ErrRangeMisconfiguration, arg)
	}
	param, err := domain.ParseSweepParameter(parts[0])
	if err != nil {
		return domain.AxisRange{}, err
	}
	axis := domain.AxisRange{Parameter: param}
	for i, dst := range []*decimal.Decimal{&axis.Min, &axis.Max, &axis.Step} {
		d, err := decimal.NewFromString(strings.TrimSpace(parts[i+1]))
		if err != nil {
			return domain.AxisRange{}, fmt.Errorf("%w: %q is not a number", domain.ErrRangeMisconfiguration, parts[i+1])
		}
		*dst = d
	}
	return axis, nil
}

// sweepFormat swaps tabular formats for the per-cell sweep export.
func sweepFormat(format string) string {
	switch output.NormalizeFormatName(format) {
	case "csv", "detailed-csv":
		return "sweep-csv"
	}
	return format
}
