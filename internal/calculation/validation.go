package calculation

import (
	"fmt"

	"github.com/rpgo/pension-simulator/internal/domain"
	"github.com/shopspring/decimal"
)

// ValidateTaxConfiguration returns human-readable descriptions of every defect in
// cfg. Defects are not fatal: the engine keeps running on best-effort defaults, so
// callers surface these as warnings.
func ValidateTaxConfiguration(cfg *domain.TaxConfiguration) []string {
	if cfg == nil {
		return []string{
			"credit point value is missing",
			"monthly tax brackets are missing",
			"monthly exempt pension ceiling is missing",
		}
	}

	var errs []string
	if !cfg.CreditPointValue.IsPositive() {
		errs = append(errs, fmt.Sprintf("credit point value is missing for tax year %d", cfg.Year))
	}
	errs = append(errs, validateBrackets(cfg.Brackets)...)
	if !cfg.PensionExemption.MonthlyExemptCeiling.IsPositive() {
		errs = append(errs, "monthly exempt pension ceiling is missing")
	}
	if r := cfg.PensionExemption.DefaultExemptionRate; r != nil && (r.IsNegative() || r.GreaterThan(decimal.NewFromInt(1))) {
		errs = append(errs, fmt.Sprintf("default exemption rate %s is outside 0..1", r.String()))
	}
	return errs
}

func validateBrackets(brackets []domain.TaxBracket) []string {
	if len(brackets) == 0 {
		return []string{"monthly tax brackets are missing"}
	}

	var errs []string
	openAt := -1
	var prev *decimal.Decimal
	for i, b := range brackets {
		n := i + 1
		switch {
		case b.Rate == nil:
			errs = append(errs, fmt.Sprintf("bracket %d has no rate", n))
		case b.Rate.IsNegative():
			errs = append(errs, fmt.Sprintf("bracket %d has a negative rate", n))
		}

		if b.IsOpenEnded() {
			if openAt >= 0 {
				errs = append(errs, fmt.Sprintf("bracket %d is a second open-ended bracket", n))
			}
			openAt = i
			continue
		}
		if b.UpTo.IsNegative() {
			errs = append(errs, fmt.Sprintf("bracket %d has a negative upper bound", n))
		}
		if prev != nil && !b.UpTo.GreaterThan(*prev) {
			errs = append(errs, fmt.Sprintf("bracket %d upper bound %s is not above the previous bound %s", n, b.UpTo.String(), prev.String()))
		}
		prev = b.UpTo
	}

	switch {
	case openAt < 0:
		errs = append(errs, "monthly tax brackets have no open-ended top bracket")
	case openAt != len(brackets)-1:
		errs = append(errs, fmt.Sprintf("open-ended bracket %d must be the last bracket", openAt+1))
	}
	return errs
}
