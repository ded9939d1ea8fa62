package calculation

import (
	"strings"
	"testing"

	"github.com/rpgo/pension-simulator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateTaxConfiguration(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		assert.Empty(t, ValidateTaxConfiguration(testTaxConfig()))
	})

	t.Run("nil configuration", func(t *testing.T) {
		assert.Len(t, ValidateTaxConfiguration(nil), 3)
	})

	tests := []struct {
		name   string
		mutate func(cfg *domain.TaxConfiguration)
		want   string
	}{
		{"missing credit value", func(c *domain.TaxConfiguration) { c.CreditPointValue = dec(0) }, "credit point value"},
		{"negative credit value", func(c *domain.TaxConfiguration) { c.CreditPointValue = dec(-1) }, "credit point value"},
		{"no brackets", func(c *domain.TaxConfiguration) { c.Brackets = nil }, "brackets are missing"},
		{"missing rate", func(c *domain.TaxConfiguration) { c.Brackets[0].Rate = nil }, "bracket 1 has no rate"},
		{"negative rate", func(c *domain.TaxConfiguration) { c.Brackets[1].Rate = decPtr(-0.2) }, "bracket 2 has a negative rate"},
		{"missing ceiling", func(c *domain.TaxConfiguration) { c.PensionExemption.MonthlyExemptCeiling = dec(0) }, "ceiling"},
		{"default rate above one", func(c *domain.TaxConfiguration) { c.PensionExemption.DefaultExemptionRate = decPtr(1.2) }, "outside 0..1"},
		{"no open bracket", func(c *domain.TaxConfiguration) { c.Brackets = c.Brackets[:1] }, "no open-ended"},
		{"open bracket not last", func(c *domain.TaxConfiguration) {
			c.Brackets = append(c.Brackets, domain.TaxBracket{UpTo: decPtr(20000), Rate: decPtr(0.3)})
		}, "must be the last"},
		{"two open brackets", func(c *domain.TaxConfiguration) {
			c.Brackets = append(c.Brackets, domain.TaxBracket{Rate: decPtr(0.3)})
		}, "second open-ended"},
		{"descending bounds", func(c *domain.TaxConfiguration) {
			c.Brackets = append([]domain.TaxBracket{{UpTo: decPtr(9000), Rate: decPtr(0.05)}}, c.Brackets...)
		}, "not above the previous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testTaxConfig()
			tt.mutate(cfg)
			errs := ValidateTaxConfiguration(cfg)
			assert.NotEmpty(t, errs)
			assert.True(t, containsSubstring(errs, tt.want), "expected %q in %v", tt.want, errs)
		})
	}
}

func containsSubstring(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
