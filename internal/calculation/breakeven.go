package calculation

import (
	"fmt"

	"github.com/rpgo/pension-simulator/internal/domain"
	"github.com/shopspring/decimal"
)

// Search bounds for FixationBreakEven
var (
	breakEvenCeiling   = decimal.NewFromInt(1_000_000)
	breakEvenTolerance = decimal.NewFromFloat(0.01)
)

const breakEvenMaxIterations = 60

// FixationBreakEven finds the lowest gross monthly pension at which electing rights
// fixation raises the net pension for the client profile in input. Pension sources
// are ignored; the search evaluates gross overrides. The returned result is the
// simulation at the break-even gross.
func (se *SimulationEngine) FixationBreakEven(input *domain.SimulationInput) (decimal.Decimal, *domain.SimulationResult, error) {
	if input == nil {
		return decimal.Zero, nil, fmt.Errorf("no simulation input provided")
	}

	trial := *input
	trial.Sources = nil
	trial.TaxOnly = true
	trial.RightsFixationRequested = true
	at := func(gross decimal.Decimal) *domain.SimulationResult {
		g := gross
		trial.GrossMonthlyOverride = &g
		return se.ComputeSimulation(&trial)
	}

	hi := breakEvenCeiling
	best := at(hi)
	if !best.FixationEligible {
		return decimal.Zero, best, fmt.Errorf("rights fixation is not available for %s clients retiring at %d", input.Gender, input.RetirementAge)
	}
	if !best.FixationGain().IsPositive() {
		return decimal.Zero, best, fmt.Errorf("rights fixation does not lower the tax on a pension up to %s", hi.StringFixed(2))
	}

	// The gain is zero while credit points cover the whole tax and positive above,
	// so bisection on its sign converges to the threshold.
	lo := decimal.Zero
	two := decimal.NewFromInt(2)
	for i := 0; i < breakEvenMaxIterations && hi.Sub(lo).GreaterThan(breakEvenTolerance); i++ {
		mid := lo.Add(hi).Div(two)
		res := at(mid)
		if res.FixationGain().IsPositive() {
			hi = mid
			best = res
		} else {
			lo = mid
		}
	}

	se.Logger.Debugf("fixation break-even for %s/%d: %s", input.Gender, input.RetirementAge, hi.StringFixed(4))
	gross := hi.Round(2)
	if gross.LessThan(hi) {
		gross = gross.Add(decimal.New(1, -2))
	}
	// Rounding moves the gross off the last bisection point, so the reported
	// result is recomputed at the returned value.
	best = at(gross)
	return gross, best, nil
}
