package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/pension-simulator/internal/calculation"
	"github.com/rpgo/pension-simulator/internal/domain"
	pkgdec "github.com/rpgo/pension-simulator/pkg/decimal"
)

func newCoefficientCmd(g *globalOptions) *cobra.Command {
	var (
		key             calculation.CoefficientLookupKey
		gender          string
		source          string
		birthYear       int
		hasSpouse       bool
		guaranteeMonths float64
		spousePercent   float64
	)
	cmd := &cobra.Command{
		Use:   "coefficient",
		Short: "Look up the automatic annuity coefficient for a client profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := g.loadTables()
			if err != nil {
				return err
			}
			key.Gender = domain.Gender(gender)
			key.SourceType = domain.SourceType(source)
			key.SpouseKey = calculation.SpouseKey(domain.SpouseBenefit{
				HasSpouse:       hasSpouse,
				GuaranteeMonths: pkgdec.FromFloat(guaranteeMonths),
				SpousePercent:   pkgdec.FromFloat(spousePercent),
			})
			key.BirthYear = calculation.EffectiveBirthYear(birthYear, key.RetirementAge, tables.TaxYear())

			out := cmd.OutOrStdout()
			c, ok := calculation.NewSimulationEngine(tables).ResolveCoefficient(key)
			if !ok {
				fmt.Fprintf(out, "No coefficient for %s/%s %s age %d, spouse key %s, birth year %d\n",
					key.FundID, key.SourceType, key.Gender, key.RetirementAge, key.SpouseKey, key.BirthYear)
				return nil
			}
			fmt.Fprintf(out, "Coefficient %s (%s/%s %s age %d, spouse key %s, birth year %d)\n",
				c.String(), key.FundID, key.SourceType, key.Gender, key.RetirementAge, key.SpouseKey, key.BirthYear)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&key.FundID, "fund", "", "fund id")
	f.StringVar(&source, "source-type", string(domain.MainPension), "source type")
	f.StringVar(&gender, "gender", string(domain.Male), "gender (male, female)")
	f.IntVar(&key.RetirementAge, "age", 67, "retirement age")
	f.IntVar(&birthYear, "birth-year", 0, "birth year (derived when 0)")
	f.BoolVar(&hasSpouse, "spouse", false, "spouse benefit")
	f.Float64Var(&guaranteeMonths, "guarantee-months", 0, "guaranteed months")
	f.Float64Var(&spousePercent, "spouse-percent", 0, "spouse percentage")
	_ = cmd.MarkFlagRequired("fund")
	return cmd
}
