package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/pension-simulator/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string      { return "console" }
func (c ConsoleVerboseFormatter) Extension() string { return "txt" }

func (c ConsoleVerboseFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer

	rule := strings.Repeat("=", 64)
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "RETIREMENT INCOME SIMULATION - TAX YEAR %d\n", result.TaxYear)
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf)

	if len(result.Warnings) > 0 {
		fmt.Fprintln(&buf, "WARNINGS:")
		for _, w := range result.Warnings {
			fmt.Fprintf(&buf, "• %s\n", w)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintf(&buf, "Birth year used for coefficients: %d\n", result.BirthYear)
	fmt.Fprintf(&buf, "Spouse benefit key:               %s\n", result.SpouseKey)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "PENSION SOURCES")
	fmt.Fprintln(&buf, strings.Repeat("-", 64))
	fmt.Fprintf(&buf, "%-6s %-14s %-10s %12s %9s %14s\n", "ID", "Type", "Fund", "Coefficient", "Basis", "Monthly")
	for _, s := range result.PerSourceMonthly {
		coef := "-"
		if s.Basis != domain.BasisDirect {
			switch {
			case s.EffectiveCoefficient.IsZero():
				coef = "none"
			case s.AutoCoefficient != nil:
				coef = s.EffectiveCoefficient.StringFixed(2) + " auto"
			default:
				coef = s.EffectiveCoefficient.StringFixed(2) + " manual"
			}
		}
		fmt.Fprintf(&buf, "%-6s %-14s %-10s %12s %9s %14s\n", s.SourceID, s.SourceType, s.FundID, coef, s.Basis, FormatCurrency(s.Monthly))
	}
	fmt.Fprintf(&buf, "Sum of sources: %s\n", FormatCurrency(result.ComputedGrossPension))
	if result.GrossOverridden {
		fmt.Fprintf(&buf, "Gross pension (entered): %s - source amounts above are informational\n", FormatCurrency(result.GrossPension))
	} else {
		fmt.Fprintf(&buf, "Gross pension: %s\n", FormatCurrency(result.GrossPension))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "RIGHTS FIXATION")
	fmt.Fprintln(&buf, strings.Repeat("-", 64))
	fmt.Fprintf(&buf, "Eligible: %s   Applied: %s   Exemption rate: %s\n",
		yesNo(result.FixationEligible), yesNo(result.WithFixation.Enabled), FormatPercentage(result.ExemptionRate))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-22s %18s %18s\n", "", "Without fixation", "With fixation")
	fmt.Fprintf(&buf, "%-22s %18s %18s\n", "Exempt pension", FormatCurrency(decimal.Zero), FormatCurrency(result.WithFixation.ExemptPension))
	fmt.Fprintf(&buf, "%-22s %18s %18s\n", "Taxable income", FormatCurrency(result.WithoutFixation.TaxableIncome), FormatCurrency(result.WithFixation.TaxableIncome))
	fmt.Fprintf(&buf, "%-22s %18s %18s\n", "Monthly tax", FormatCurrency(result.WithoutFixation.MonthlyTax), FormatCurrency(result.WithFixation.MonthlyTax))
	fmt.Fprintf(&buf, "%-22s %18s %18s\n", "Net pension", FormatCurrency(result.WithoutFixation.NetPension), FormatCurrency(result.WithFixation.NetPension))
	fmt.Fprintln(&buf)

	rec := AnalyzeFixation(result)
	if rec.ElectFixation {
		fmt.Fprintf(&buf, "RECOMMENDATION: elect rights fixation (+%s / month, +%s / year)\n", FormatCurrency(rec.MonthlyGain), FormatCurrency(rec.AnnualGain))
	} else {
		fmt.Fprintf(&buf, "NOTE: %s\n", rec.Reason)
	}
	return buf.Bytes(), nil
}
