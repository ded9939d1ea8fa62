package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBracket is one slice of the monthly progressive schedule.
// A nil UpTo marks the open-ended top bracket; a nil Rate marks a malformed entry.
type TaxBracket struct {
	UpTo *decimal.Decimal `yaml:"up_to" json:"up_to"`
	Rate *decimal.Decimal `yaml:"rate" json:"rate"`
}

// IsOpenEnded reports whether the bracket has no upper bound
func (b TaxBracket) IsOpenEnded() bool { return b.UpTo == nil }

// PensionExemption holds the rights-fixation parameters for the tax year
type PensionExemption struct {
	MonthlyExemptCeiling decimal.Decimal  `yaml:"monthly_exempt_ceiling" json:"monthly_exempt_ceiling"`
	DefaultExemptionRate *decimal.Decimal `yaml:"default_exemption_rate,omitempty" json:"default_exemption_rate,omitempty"`
}

// TaxConfiguration is the immutable tax schedule for one tax year
type TaxConfiguration struct {
	Year             int              `yaml:"year" json:"year"`
	Brackets         []TaxBracket     `yaml:"brackets_monthly" json:"brackets_monthly"`
	CreditPointValue decimal.Decimal  `yaml:"credit_point_value" json:"credit_point_value"`
	PensionExemption PensionExemption `yaml:"pension_exemption" json:"pension_exemption"`
}
