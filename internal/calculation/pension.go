package calculation

import (
	"github.com/rpgo/pension-simulator/internal/domain"
	pkgdec "github.com/rpgo/pension-simulator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// MonthlyBasis records which rule produced a source's monthly amount
type MonthlyBasis struct {
	Kind        domain.MonthlyBasisKind
	Amount      decimal.Decimal // set for BasisDirect
	Capital     decimal.Decimal // set for BasisDerived
	Coefficient decimal.Decimal // set for BasisDerived
}

// ChooseMonthlyBasis is the single decision point for a source's monthly amount:
// a positive monthly override is used as is, otherwise capital is divided by a
// positive effective coefficient, otherwise the amount is zero.
func ChooseMonthlyBasis(source domain.PensionSource, effectiveCoefficient decimal.Decimal) MonthlyBasis {
	if amount, ok := pkgdec.Positive(source.MonthlyOverride); ok {
		return MonthlyBasis{Kind: domain.BasisDirect, Amount: amount}
	}
	if !effectiveCoefficient.IsPositive() {
		return MonthlyBasis{Kind: domain.BasisZero}
	}
	return MonthlyBasis{
		Kind:        domain.BasisDerived,
		Capital:     pkgdec.NonNegative(source.Capital),
		Coefficient: effectiveCoefficient,
	}
}

// Monthly evaluates the basis
func (mb MonthlyBasis) Monthly() decimal.Decimal {
	switch mb.Kind {
	case domain.BasisDirect:
		return mb.Amount
	case domain.BasisDerived:
		return mb.Capital.Div(mb.Coefficient)
	default:
		return decimal.Zero
	}
}

// GrossPension sums the per-source amounts unless a positive override is given,
// in which case the override is returned unchanged. The boolean reports whether
// the override was applied.
func GrossPension(lines []domain.SourceMonthly, override *decimal.Decimal) (computed, gross decimal.Decimal, overridden bool) {
	computed = decimal.Zero
	for _, l := range lines {
		computed = computed.Add(l.Monthly)
	}
	if o, ok := pkgdec.Positive(override); ok {
		return computed, o, true
	}
	return computed, computed, false
}
