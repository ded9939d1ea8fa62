package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/pension-simulator/internal/config"
)

func newCatalogCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the funds and source types of the coefficient table",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := config.NewLoader().LoadCoefficientTable(g.coefficients)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Funds:")
			for _, f := range table.Funds {
				fmt.Fprintf(out, "  %-12s %s\n", f.ID, f.Label)
			}
			fmt.Fprintln(out, "Source types:")
			for _, s := range table.SourceTypes {
				fmt.Fprintf(out, "  %-12s %s\n", s.ID, s.Label)
			}
			return nil
		},
	}
}
