package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/pension-simulator/internal/calculation"
	"github.com/rpgo/pension-simulator/internal/config"
	"github.com/rpgo/pension-simulator/internal/domain"
	"github.com/rpgo/pension-simulator/internal/output"
	pkgdec "github.com/rpgo/pension-simulator/pkg/decimal"
	"github.com/rpgo/pension-simulator/pkg/logger"
)

type simulateOptions struct {
	input     string
	format    string
	outputDir string

	gender           string
	age              int
	birthYear        int
	creditPoints     float64
	additionalIncome float64
	hasSpouse        bool
	guaranteeMonths  float64
	spousePercent    float64
	fund             string
	sourceType       string
	capital          float64
	coefficient      float64
	monthly          float64
	fixation         bool
	exemptionRate    float64
	taxOnly          bool
	gross            float64
}

func newSimulateCmd(g *globalOptions) *cobra.Command {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a simulation from a request file or from flags",
		Example: `  pensionsim simulate --input data/example_simulation.yaml
  pensionsim simulate --gender female --age 64 --fund clal --source-type main_pension --capital 1500000 --fixation --format summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := opts.buildInput(cmd)
			if err != nil {
				return err
			}
			tables, err := g.loadTables()
			if err != nil {
				return err
			}

			engine := calculation.NewSimulationEngine(tables)
			engine.SetLogger(logger.Adapter{L: g.logger(cmd)})
			result := engine.ComputeSimulation(input)

			if opts.outputDir != "" {
				path, err := output.GenerateReport(result, opts.format, opts.outputDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}
			return output.Render(cmd.OutOrStdout(), result, opts.format)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "simulation request document; other input flags are ignored when set")
	f.StringVarP(&opts.format, "format", "f", "console", "output format (console, console-lite, csv, json, yaml, msgpack)")
	f.StringVar(&opts.outputDir, "output-dir", "", "write the report to a timestamped file in this directory")

	f.StringVar(&opts.gender, "gender", string(domain.Male), "client gender (male, female)")
	f.IntVar(&opts.age, "age", 67, "retirement age")
	f.IntVar(&opts.birthYear, "birth-year", 0, "birth year (derived from tax year and age when 0)")
	f.Float64Var(&opts.creditPoints, "credit-points", 2.25, "tax credit points")
	f.Float64Var(&opts.additionalIncome, "additional-income", 0, "other taxable monthly income")
	f.BoolVar(&opts.hasSpouse, "spouse", false, "annuity carries a spouse benefit")
	f.Float64Var(&opts.guaranteeMonths, "guarantee-months", 0, "guaranteed payment months of the spouse benefit")
	f.Float64Var(&opts.spousePercent, "spouse-percent", 0, "spouse benefit percentage")
	f.StringVar(&opts.fund, "fund", "", "fund id of the single pension source")
	f.StringVar(&opts.sourceType, "source-type", string(domain.MainPension), "source type of the single pension source")
	f.Float64Var(&opts.capital, "capital", 0, "accumulated capital of the pension source")
	f.Float64Var(&opts.coefficient, "coefficient", 0, "manual annuity coefficient, used when the table has none")
	f.Float64Var(&opts.monthly, "monthly", 0, "known monthly pension of the source, bypassing the coefficient")
	f.BoolVar(&opts.fixation, "fixation", false, "request rights fixation")
	f.Float64Var(&opts.exemptionRate, "exemption-rate", 0, "exemption rate override as a fraction (0.52)")
	f.BoolVar(&opts.taxOnly, "tax-only", false, "skip coefficients and tax the gross pension given with --gross")
	f.Float64Var(&opts.gross, "gross", 0, "gross monthly pension override")

	return cmd
}

// buildInput loads the request file or assembles a single-source request from flags
func (o *simulateOptions) buildInput(cmd *cobra.Command) (*domain.SimulationInput, error) {
	if o.input != "" {
		return config.NewLoader().LoadSimulationInput(o.input)
	}

	in := &domain.SimulationInput{
		Gender:                  domain.Gender(o.gender),
		RetirementAge:           o.age,
		BirthYear:               o.birthYear,
		TaxCreditPoints:         pkgdec.FromFloat(o.creditPoints),
		AdditionalIncomeMonthly: pkgdec.FromFloat(o.additionalIncome),
		Spouse: domain.SpouseBenefit{
			HasSpouse:       o.hasSpouse,
			GuaranteeMonths: pkgdec.FromFloat(o.guaranteeMonths),
			SpousePercent:   pkgdec.FromFloat(o.spousePercent),
		},
		RightsFixationRequested: o.fixation,
		TaxOnly:                 o.taxOnly,
	}

	flags := cmd.Flags()
	if o.fund != "" || o.capital != 0 || flags.Changed("monthly") {
		src := domain.PensionSource{
			ID:         "s1",
			SourceType: domain.SourceType(o.sourceType),
			FundID:     o.fund,
			Capital:    pkgdec.FromFloat(o.capital),
		}
		if flags.Changed("coefficient") {
			v := pkgdec.FromFloat(o.coefficient)
			src.ManualCoefficient = &v
		}
		if flags.Changed("monthly") {
			v := pkgdec.FromFloat(o.monthly)
			src.MonthlyOverride = &v
		}
		in.Sources = []domain.PensionSource{src}
	}
	if flags.Changed("exemption-rate") {
		v := pkgdec.FromFloat(o.exemptionRate)
		in.ExemptionRateOverride = &v
	}
	if flags.Changed("gross") {
		v := pkgdec.FromFloat(o.gross)
		in.GrossMonthlyOverride = &v
	}

	if err := config.ValidateSimulationInput(in); err != nil {
		return nil, err
	}
	return in, nil
}
