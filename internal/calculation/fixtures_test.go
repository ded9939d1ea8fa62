package calculation

import (
	"math"

	"github.com/rpgo/pension-simulator/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// testTaxConfig is the two-bracket schedule used throughout the engine tests
func testTaxConfig() *domain.TaxConfiguration {
	return &domain.TaxConfiguration{
		Year: 2026,
		Brackets: []domain.TaxBracket{
			{UpTo: decPtr(6000), Rate: decPtr(0.10)},
			{UpTo: nil, Rate: decPtr(0.20)},
		},
		CreditPointValue: dec(242),
		PensionExemption: domain.PensionExemption{
			MonthlyExemptCeiling: dec(9430),
			DefaultExemptionRate: decPtr(0.52),
		},
	}
}

func testCoefficientTable() *domain.CoefficientTable {
	return &domain.CoefficientTable{
		Funds:       []domain.Option{{ID: "clal", Label: "Clal"}, {ID: "migdal", Label: "Migdal"}},
		SourceTypes: []domain.Option{{ID: "main_pension", Label: "Main pension"}, {ID: "exec_ins", Label: "Executive insurance"}},
		Tables: map[string]map[string]domain.SourceTable{
			"clal": {
				"main_pension": {
					Years: []int{1955, 1958, 1960},
					Genders: map[domain.Gender]domain.AgeTable{
						domain.Male: {
							"67": {
								"S0":          {"1955": 190, "1958": 200, "1960": 210},
								"S1_m240_p60": {"1955": 205, "1958": 215, "1960": 225},
							},
						},
						domain.Female: {
							"64": {
								"S0": {"1955": 0, "1958": math.Inf(1), "1960": 230},
							},
						},
					},
				},
				"exec_ins": {
					Years: []int{1959, 1961},
					Genders: map[domain.Gender]domain.AgeTable{
						domain.Male: {"67": {"S0": {"1959": 180, "1961": 185}}},
					},
				},
			},
		},
	}
}

func testTables() *Tables {
	return NewTables(testTaxConfig(), testCoefficientTable())
}
