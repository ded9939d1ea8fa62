package calculation

import (
	"github.com/rpgo/pension-simulator/internal/domain"
)

// Tables is the read-only reference data a simulation runs against. A Tables value
// is never modified after NewTables returns; a new tax year means a new Tables.
type Tables struct {
	Tax          *domain.TaxConfiguration
	Coefficients *domain.CoefficientTable
	// Warnings holds the tax configuration defects found when the tables were built
	Warnings []string
}

// NewTables bundles the configuration documents and validates the tax schedule
func NewTables(tax *domain.TaxConfiguration, coefficients *domain.CoefficientTable) *Tables {
	return &Tables{
		Tax:          tax,
		Coefficients: coefficients,
		Warnings:     ValidateTaxConfiguration(tax),
	}
}

// TaxYear returns the configured year, falling back to the current calendar year
func (t *Tables) TaxYear() int {
	if t != nil && t.Tax != nil && t.Tax.Year > 0 {
		return t.Tax.Year
	}
	return nowFunc().Year()
}
