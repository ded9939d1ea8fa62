package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/pension-simulator/internal/domain"
)

// CSVFormatter writes one row per pension source followed by the two scenario rows.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	rows := [][]string{{"Section", "ID", "Type", "Fund", "EffectiveCoefficient", "Basis", "Monthly"}}
	for _, s := range result.PerSourceMonthly {
		rows = append(rows, []string{"source", s.SourceID, string(s.SourceType), s.FundID,
			s.EffectiveCoefficient.StringFixed(4), string(s.Basis), s.Monthly.StringFixed(2)})
	}
	rows = append(rows,
		[]string{},
		[]string{"Scenario", "Enabled", "ExemptPension", "TaxableIncome", "MonthlyTax", "NetPension", "GrossPension"},
		[]string{"without_fixation", boolToString(false), "0.00",
			result.WithoutFixation.TaxableIncome.StringFixed(2), result.WithoutFixation.MonthlyTax.StringFixed(2),
			result.WithoutFixation.NetPension.StringFixed(2), result.GrossPension.StringFixed(2)},
		[]string{"with_fixation", boolToString(result.WithFixation.Enabled), result.WithFixation.ExemptPension.StringFixed(2),
			result.WithFixation.TaxableIncome.StringFixed(2), result.WithFixation.MonthlyTax.StringFixed(2),
			result.WithFixation.NetPension.StringFixed(2), result.GrossPension.StringFixed(2)},
	)

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
