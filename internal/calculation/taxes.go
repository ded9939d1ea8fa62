package calculation

import (
	"github.com/rpgo/pension-simulator/internal/domain"
	pkgdec "github.com/rpgo/pension-simulator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Brackets are monthly and walked in configured order. Each bracket absorbs
//    min(remaining, up_to) of the income, so up_to acts as the width of the slice.
//    The open-ended bracket takes whatever is left.
//
// 2. Credit points are subtracted after the bracket walk; the result is floored
//    at zero (credits never refund).
//
// 3. A bracket without a rate is skipped without consuming income.

// BracketSlice is the part of the income taxed inside one bracket
type BracketSlice struct {
	Index  int              `json:"index"`
	UpTo   *decimal.Decimal `json:"up_to"`
	Rate   decimal.Decimal  `json:"rate"`
	Amount decimal.Decimal  `json:"amount"`
	Tax    decimal.Decimal  `json:"tax"`
}

// ProgressiveTaxCalculator applies a monthly bracket schedule with credit points
type ProgressiveTaxCalculator struct {
	Year             int
	Brackets         []domain.TaxBracket
	CreditPointValue decimal.Decimal
}

// NewProgressiveTaxCalculator creates a calculator from the tax configuration.
// A nil or defective configuration degrades to no brackets and a zero credit value.
func NewProgressiveTaxCalculator(cfg *domain.TaxConfiguration) *ProgressiveTaxCalculator {
	if cfg == nil {
		return &ProgressiveTaxCalculator{CreditPointValue: decimal.Zero}
	}
	return &ProgressiveTaxCalculator{
		Year:             cfg.Year,
		Brackets:         cfg.Brackets,
		CreditPointValue: pkgdec.NonNegative(cfg.CreditPointValue),
	}
}

// GrossTax walks the brackets and returns the tax before credits along with the
// per-bracket slices.
func (ptc *ProgressiveTaxCalculator) GrossTax(taxableIncome decimal.Decimal) (decimal.Decimal, []BracketSlice) {
	remaining := pkgdec.NonNegative(taxableIncome)
	tax := decimal.Zero
	var slices []BracketSlice

	for i, b := range ptc.Brackets {
		if !remaining.IsPositive() {
			break
		}
		if b.Rate == nil {
			continue
		}
		rate := *b.Rate
		if b.IsOpenEnded() {
			part := remaining.Mul(rate)
			tax = tax.Add(part)
			slices = append(slices, BracketSlice{Index: i, Rate: rate, Amount: remaining, Tax: part})
			remaining = decimal.Zero
			break
		}
		amount := decimal.Min(remaining, pkgdec.NonNegative(*b.UpTo))
		part := amount.Mul(rate)
		tax = tax.Add(part)
		slices = append(slices, BracketSlice{Index: i, UpTo: b.UpTo, Rate: rate, Amount: amount, Tax: part})
		remaining = remaining.Sub(amount)
	}

	return tax, slices
}

// CreditValue converts a credit point count into a monthly shekel amount
func (ptc *ProgressiveTaxCalculator) CreditValue(creditPoints decimal.Decimal) decimal.Decimal {
	return pkgdec.NonNegative(creditPoints).Mul(ptc.CreditPointValue)
}

// CalculateTax returns the monthly tax after credit points, never negative
func (ptc *ProgressiveTaxCalculator) CalculateTax(taxableIncome, creditPoints decimal.Decimal) decimal.Decimal {
	tax, _ := ptc.GrossTax(taxableIncome)
	return pkgdec.NonNegative(tax.Sub(ptc.CreditValue(creditPoints)))
}
