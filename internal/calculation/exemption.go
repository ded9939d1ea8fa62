package calculation

import (
	"github.com/rpgo/pension-simulator/internal/domain"
	pkgdec "github.com/rpgo/pension-simulator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// DefaultExemptionRate applies when the tax configuration carries no rate
var DefaultExemptionRate = decimal.NewFromFloat(0.52)

// ExemptionEngine computes the exempt part of a pension under rights fixation
type ExemptionEngine struct {
	MonthlyCeiling decimal.Decimal
	DefaultRate    decimal.Decimal
}

// ExemptionOutcome is the split of the gross pension
type ExemptionOutcome struct {
	Enabled        bool
	ExemptBase     decimal.Decimal
	ExemptPension  decimal.Decimal
	TaxablePension decimal.Decimal
}

// NewExemptionEngine reads the ceiling and default rate from cfg
func NewExemptionEngine(cfg *domain.TaxConfiguration) *ExemptionEngine {
	ee := &ExemptionEngine{MonthlyCeiling: decimal.Zero, DefaultRate: DefaultExemptionRate}
	if cfg == nil {
		return ee
	}
	ee.MonthlyCeiling = pkgdec.NonNegative(cfg.PensionExemption.MonthlyExemptCeiling)
	if r := cfg.PensionExemption.DefaultExemptionRate; r != nil && !r.IsZero() {
		ee.DefaultRate = pkgdec.NonNegative(*r)
	}
	return ee
}

// EffectiveRate returns the override when one is supplied, else the default
func (ee *ExemptionEngine) EffectiveRate(override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return pkgdec.NonNegative(*override)
	}
	return ee.DefaultRate
}

// Apply splits gross into exempt and taxable parts. The exemption only applies
// when fixation was both requested and eligible.
func (ee *ExemptionEngine) Apply(gross decimal.Decimal, requested, eligible bool, rate decimal.Decimal) ExemptionOutcome {
	gross = pkgdec.NonNegative(gross)
	out := ExemptionOutcome{
		Enabled:       requested && eligible,
		ExemptBase:    decimal.Zero,
		ExemptPension: decimal.Zero,
	}
	if ee.MonthlyCeiling.IsPositive() {
		out.ExemptBase = decimal.Min(gross, ee.MonthlyCeiling)
	}
	if out.Enabled {
		out.ExemptPension = out.ExemptBase.Mul(pkgdec.NonNegative(rate))
	}
	out.TaxablePension = pkgdec.NonNegative(gross.Sub(out.ExemptPension))
	return out
}
