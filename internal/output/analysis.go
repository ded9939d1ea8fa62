package output

import (
	"github.com/rpgo/pension-simulator/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation summarises whether electing rights fixation pays off.
type Recommendation struct {
	ElectFixation    bool
	MonthlyGain      decimal.Decimal
	AnnualGain       decimal.Decimal
	PercentageChange decimal.Decimal
	Reason           string
}

// AnalyzeFixation compares the two scenarios of a result.
// Extracted from console logic for testability.
func AnalyzeFixation(result *domain.SimulationResult) Recommendation {
	if !result.FixationEligible {
		return Recommendation{Reason: "client is not eligible for rights fixation at this retirement age"}
	}
	gain := result.FixationGain()
	rec := Recommendation{
		MonthlyGain: gain,
		AnnualGain:  gain.Mul(decimal.NewFromInt(12)),
	}
	if base := result.WithoutFixation.NetPension; base.IsPositive() {
		rec.PercentageChange = gain.Div(base).Mul(decimal.NewFromInt(100))
	}
	switch {
	case !result.WithFixation.Enabled:
		rec.Reason = "rights fixation was not requested"
	case gain.IsPositive():
		rec.ElectFixation = true
		rec.Reason = "the pension exemption lowers the monthly tax"
	default:
		rec.Reason = "tax credits already cover the pension; the exemption adds nothing"
	}
	return rec
}
