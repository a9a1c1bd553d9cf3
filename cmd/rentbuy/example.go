package main

import (
	"fmt"

	"github.com/rentbuy/rentbuy-calculator/internal/config"
	"github.com/spf13/cobra"
)

func newExampleCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example scenario file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parser := config.NewInputParser()
			if err := parser.SaveConfiguration(parser.CreateExampleConfiguration(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "o", "scenarios.yaml", "destination file")
	return cmd
}
