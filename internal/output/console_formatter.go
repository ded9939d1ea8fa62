package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/pension-simulator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console-lite" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "PENSION SIMULATION %d\n", result.TaxYear)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Gross pension:            %s\n", FormatCurrency(result.GrossPension))
	fmt.Fprintf(&buf, "Net without fixation:     %s (tax %s)\n", FormatCurrency(result.WithoutFixation.NetPension), FormatCurrency(result.WithoutFixation.MonthlyTax))
	fmt.Fprintf(&buf, "Net with fixation:        %s (tax %s)\n", FormatCurrency(result.WithFixation.NetPension), FormatCurrency(result.WithFixation.MonthlyTax))
	rec := AnalyzeFixation(result)
	if rec.ElectFixation {
		fmt.Fprintf(&buf, "Fixation gain:            %s / month (%s)\n", FormatCurrency(rec.MonthlyGain), FormatPercentage(rec.PercentageChange.Div(hundred)))
	} else {
		fmt.Fprintf(&buf, "Fixation: %s\n", rec.Reason)
	}
	return buf.Bytes(), nil
}
