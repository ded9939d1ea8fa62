package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/pension-simulator/internal/calculation"
	"github.com/rpgo/pension-simulator/internal/config"
	"github.com/rpgo/pension-simulator/internal/output"
	"github.com/rpgo/pension-simulator/pkg/logger"
)

func newBreakEvenCmd(g *globalOptions) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Find the gross pension at which rights fixation starts to pay",
		Long:  "breakeven keeps the client profile of a simulation request (gender, age, credit points, other income) and searches for the lowest gross monthly pension at which electing rights fixation raises the net pension.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := config.NewLoader().LoadSimulationInput(input)
			if err != nil {
				return err
			}
			tables, err := g.loadTables()
			if err != nil {
				return err
			}

			engine := calculation.NewSimulationEngine(tables)
			engine.SetLogger(logger.Adapter{L: g.logger(cmd)})
			gross, res, err := engine.FixationBreakEven(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rights fixation pays from a gross pension of %s per month (tax year %d)\n",
				output.FormatCurrency(gross), res.TaxYear)
			fmt.Fprintf(out, "Below it the %s credit points already cover the tax.\n", in.TaxCreditPoints.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "simulation request document providing the client profile")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
