package calculation

import (
	"fmt"

	"github.com/rpgo/pension-simulator/internal/domain"
	pkgdec "github.com/rpgo/pension-simulator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Derived birth years outside this open interval are treated as unknown
const (
	minBirthYear = 1900
	maxBirthYear = 2100
)

// SimulationEngine orchestrates a single retirement-income simulation. It holds
// no mutable state after construction and is safe for concurrent use.
type SimulationEngine struct {
	Tables    *Tables
	TaxCalc   *ProgressiveTaxCalculator
	Resolver  *CoefficientResolver
	Exemption *ExemptionEngine
	Logger    Logger
}

// NewSimulationEngine creates an engine bound to tables. Nil tables give an engine
// with no brackets, no coefficients and the default exemption rate.
func NewSimulationEngine(tables *Tables) *SimulationEngine {
	if tables == nil {
		tables = NewTables(nil, nil)
	}
	return &SimulationEngine{
		Tables:    tables,
		TaxCalc:   NewProgressiveTaxCalculator(tables.Tax),
		Resolver:  NewCoefficientResolver(tables.Coefficients),
		Exemption: NewExemptionEngine(tables.Tax),
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (se *SimulationEngine) SetLogger(l Logger) {
	if l == nil {
		se.Logger = NopLogger{}
		return
	}
	se.Logger = l
}

// ResolveCoefficient looks up the automatic coefficient for key
func (se *SimulationEngine) ResolveCoefficient(key CoefficientLookupKey) (decimal.Decimal, bool) {
	return se.Resolver.Resolve(key)
}

// ComputeSimulation runs both scenarios, with and without rights fixation, for input.
// Malformed numeric input is coerced to safe values and reported in Warnings; the
// call never fails.
func (se *SimulationEngine) ComputeSimulation(input *domain.SimulationInput) *domain.SimulationResult {
	in, warnings := se.sanitize(input)

	taxYear := se.Tables.TaxYear()
	result := &domain.SimulationResult{
		TaxYear:   taxYear,
		BirthYear: EffectiveBirthYear(in.BirthYear, in.RetirementAge, taxYear),
		SpouseKey: SpouseKey(in.Spouse),
	}

	taxOnly := in.TaxOnly
	if taxOnly && in.TotalCapital().IsPositive() {
		warnings = append(warnings, "tax-only mode ignored because sources carry capital")
		taxOnly = false
	}

	result.PerSourceMonthly = make([]domain.SourceMonthly, 0, len(in.Sources))
	for _, src := range in.Sources {
		line := domain.SourceMonthly{SourceID: src.ID, SourceType: src.SourceType, FundID: src.FundID}

		var auto decimal.Decimal
		var autoOK bool
		if !taxOnly {
			auto, autoOK = se.Resolver.Resolve(CoefficientLookupKey{
				FundID:        src.FundID,
				SourceType:    src.SourceType,
				Gender:        in.Gender,
				RetirementAge: in.RetirementAge,
				SpouseKey:     result.SpouseKey,
				BirthYear:     result.BirthYear,
			})
		}
		if autoOK {
			a := auto
			line.AutoCoefficient = &a
		}
		line.EffectiveCoefficient = EffectiveCoefficient(auto, autoOK, src.ManualCoefficient)

		basis := ChooseMonthlyBasis(src, line.EffectiveCoefficient)
		line.Basis = basis.Kind
		line.Monthly = basis.Monthly()
		se.Logger.Debugf("source %s (%s/%s): auto=%v coefficient=%s basis=%s monthly=%s",
			src.ID, src.FundID, src.SourceType, autoOK, line.EffectiveCoefficient, basis.Kind, line.Monthly.StringFixed(2))

		result.PerSourceMonthly = append(result.PerSourceMonthly, line)
	}

	result.ComputedGrossPension, result.GrossPension, result.GrossOverridden = GrossPension(result.PerSourceMonthly, in.GrossMonthlyOverride)
	if result.GrossOverridden && len(in.Sources) > 0 && !result.GrossPension.Equal(result.ComputedGrossPension) {
		warnings = append(warnings, fmt.Sprintf("gross monthly override %s differs from the sum of sources %s; per-source amounts are informational",
			result.GrossPension.StringFixed(2), result.ComputedGrossPension.StringFixed(2)))
	}

	result.FixationEligible = CanFixRights(in.Gender, in.RetirementAge)
	result.ExemptionRate = se.Exemption.EffectiveRate(in.ExemptionRateOverride)
	exemption := se.Exemption.Apply(result.GrossPension, in.RightsFixationRequested, result.FixationEligible, result.ExemptionRate)

	withFix := exemption.TaxablePension.Add(in.AdditionalIncomeMonthly)
	withFixTax := se.TaxCalc.CalculateTax(withFix, in.TaxCreditPoints)
	result.WithFixation = domain.FixationScenario{
		Enabled:        exemption.Enabled,
		ExemptPension:  exemption.ExemptPension,
		TaxablePension: exemption.TaxablePension,
		TaxableIncome:  withFix,
		MonthlyTax:     withFixTax,
		NetPension:     result.GrossPension.Sub(withFixTax),
	}

	noFix := result.GrossPension.Add(in.AdditionalIncomeMonthly)
	noFixTax := se.TaxCalc.CalculateTax(noFix, in.TaxCreditPoints)
	result.WithoutFixation = domain.BaselineScenario{
		TaxableIncome: noFix,
		MonthlyTax:    noFixTax,
		NetPension:    result.GrossPension.Sub(noFixTax),
	}

	result.Warnings = append(append([]string(nil), se.Tables.Warnings...), warnings...)
	for _, w := range warnings {
		se.Logger.Warnf("simulation input: %s", w)
	}
	return result
}

// sanitize copies input, clamping values that must not be negative and dropping
// sources past MaxSources.
func (se *SimulationEngine) sanitize(input *domain.SimulationInput) (domain.SimulationInput, []string) {
	var warnings []string
	if input == nil {
		return domain.SimulationInput{}, []string{"empty simulation input"}
	}
	in := *input

	if in.RetirementAge < 0 {
		warnings = append(warnings, fmt.Sprintf("retirement age %d treated as 0", in.RetirementAge))
		in.RetirementAge = 0
	}
	if in.TaxCreditPoints.IsNegative() {
		warnings = append(warnings, "negative tax credit points treated as 0")
		in.TaxCreditPoints = decimal.Zero
	}
	if in.AdditionalIncomeMonthly.IsNegative() {
		warnings = append(warnings, "negative additional income treated as 0")
		in.AdditionalIncomeMonthly = decimal.Zero
	}
	if r := in.ExemptionRateOverride; r != nil && r.IsNegative() {
		warnings = append(warnings, "negative exemption rate treated as 0")
		zero := decimal.Zero
		in.ExemptionRateOverride = &zero
	}

	if len(in.Sources) > domain.MaxSources {
		warnings = append(warnings, fmt.Sprintf("%d pension sources given, only the first %d are used", len(in.Sources), domain.MaxSources))
		in.Sources = in.Sources[:domain.MaxSources]
	}
	sources := make([]domain.PensionSource, len(in.Sources))
	for i, s := range in.Sources {
		if s.ID == "" {
			s.ID = fmt.Sprintf("s%d", i+1)
		}
		if s.Capital.IsNegative() {
			warnings = append(warnings, fmt.Sprintf("source %s: negative capital treated as 0", s.ID))
			s.Capital = pkgdec.NonNegative(s.Capital)
		}
		sources[i] = s
	}
	in.Sources = sources
	return in, warnings
}

// EffectiveBirthYear returns birthYear when one is given, otherwise derives it from
// the tax year and the retirement age. Zero means unknown.
func EffectiveBirthYear(birthYear, retirementAge, taxYear int) int {
	if birthYear > 0 {
		return birthYear
	}
	if retirementAge <= 0 {
		return 0
	}
	derived := taxYear - retirementAge
	if derived > minBirthYear && derived < maxBirthYear {
		return derived
	}
	return 0
}
