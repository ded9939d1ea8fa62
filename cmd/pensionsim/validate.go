package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/pension-simulator/internal/calculation"
	"github.com/rpgo/pension-simulator/internal/config"
)

func newValidateCmd(g *globalOptions) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the tax schedule and coefficient table",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			loader := config.NewLoader()

			tax, err := loader.LoadTaxConfiguration(g.taxConfig)
			if err != nil {
				return err
			}
			warnings := calculation.ValidateTaxConfiguration(tax)
			if len(warnings) == 0 {
				fmt.Fprintf(out, "Tax configuration %s (year %d): OK\n", g.taxConfig, tax.Year)
			} else {
				fmt.Fprintf(out, "Tax configuration %s (year %d): %d warning(s)\n", g.taxConfig, tax.Year, len(warnings))
				for _, w := range warnings {
					fmt.Fprintf(out, "  - %s\n", w)
				}
			}

			table, err := loader.LoadCoefficientTable(g.coefficients)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Coefficient table %s: %d fund(s), %d source type(s), %d fund table(s)\n",
				g.coefficients, len(table.Funds), len(table.SourceTypes), len(table.Tables))

			if strict && len(warnings) > 0 {
				return fmt.Errorf("tax configuration has %d warning(s)", len(warnings))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the tax configuration has warnings")
	return cmd
}
