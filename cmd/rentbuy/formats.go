package main

import (
	"fmt"
	"strings"

	"github.com/rentbuy/rentbuy-calculator/internal/output"
	"github.com/spf13/cobra"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats and their aliases",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Formats: %s, all\n", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintln(out, "Aliases:")
			for _, alias := range output.AvailableFormatAliases() {
				fmt.Fprintf(out, "  %-16s -> %s\n", alias, output.NormalizeFormatName(alias))
			}
		},
	}
}
