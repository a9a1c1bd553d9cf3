package main

import (
	"fmt"
	"os"

	"github.com/rentbuy/rentbuy-calculator/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries state shared by subcommands once flags are parsed.
type app struct {
	settingsPath string
	settings     *config.Settings
	logger       *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "rentbuy",
		Short: "Compare the long-run net worth of buying a home versus renting and investing",
		Long: `rentbuy projects, year by year, the inflation-adjusted net worth of a buyer
who finances a home and a renter who invests the down payment plus any monthly
savings, then reports which path comes out ahead and when.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.LoadSettings(a.settingsPath, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := config.NewLogger(*settings)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.settings = settings
			a.logger = logger
			logger.Debug("settings loaded",
				zap.String("format", settings.Format),
				zap.Int("workers", settings.Workers),
				zap.String("output_dir", settings.OutputDir))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.settingsPath, "settings", "", "runtime settings file (yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	pf.String("log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(
		newProjectCmd(a),
		newSweepCmd(a),
		newPaymentCmd(),
		newExampleCmd(),
		newFormatsCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
