package main

import (
	"fmt"

	"github.com/rentbuy/rentbuy-calculator/internal/calculation"
	"github.com/rentbuy/rentbuy-calculator/internal/config"
	"github.com/rentbuy/rentbuy-calculator/internal/domain"
	"github.com/rentbuy/rentbuy-calculator/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newProjectCmd(a *app) *cobra.Command {
	var (
		configPath   string
		scenarioName string
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run the year-by-year projection for the scenarios in a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(configPath)
			if err != nil {
				return err
			}

			scenarios := cfg.Scenarios
			if scenarioName != "" {
				sc, ok := cfg.FindScenario(scenarioName)
				if !ok {
					return fmt.Errorf("scenario %q not found in %s", scenarioName, configPath)
				}
				scenarios = []domain.NamedScenario{sc}
			}
			if len(scenarios) == 0 {
				return fmt.Errorf("no scenarios in %s", configPath)
			}

			policy := cfg.EffectiveTaxPolicy()
			engine := calculation.NewCalculationEngineWithPolicy(policy)
			engine.SetLogger(calculation.NewZapLogger(a.logger))

			report, err := engine.RunScenarios(cmd.Context(), &domain.Configuration{Scenarios: scenarios})
			if err != nil {
				return err
			}
			report.Assumptions = output.GenerateAssumptions(policy)
			a.logger.Info("projection complete", zap.Int("scenarios", len(report.Projections)))

			return emit(cmd, a, report, a.settings.Format)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "scenario file (yaml)")
	cmd.Flags().StringVarP(&scenarioName, "scenario", "s", "", "run only the named scenario")
	cmd.Flags().StringP("format", "f", "console", "output format (see 'rentbuy formats')")
	cmd.Flags().StringP("output", "o", "", "write the report to a timestamped file in this directory")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

// emit prints the report to stdout, or writes it under the output directory
// when one is set. "all" always writes files.
func emit(cmd *cobra.Command, a *app, report *domain.Report, format string) error {
	if a.settings.OutputDir == "" && output.NormalizeFormatName(format) != "all" {
		data, err := output.Render(report, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	files, err := output.GenerateReport(report, format, a.settings.OutputDir)
	if err != nil {
		return err
	}
	for _, f := range files {
		a.logger.Info("report written", zap.String("file", f))
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}
