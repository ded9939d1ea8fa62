package domain

import (
	"github.com/shopspring/decimal"
)

// MaxSources is the number of pension sources a single simulation accepts.
const MaxSources = 4

// Gender of the client, as used by the eligibility rule and coefficient tables
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// SourceType identifies the kind of pension source
type SourceType string

const (
	MainPension         SourceType = "main_pension"
	SupplementalPension SourceType = "supp_pension"
	ExecutiveInsurance  SourceType = "exec_ins"
	ProvidentInvestment SourceType = "gemel_invest"
)

// SourceTypes lists the known source types in display order.
var SourceTypes = []SourceType{MainPension, SupplementalPension, ExecutiveInsurance, ProvidentInvestment}

// PensionSource is one income-producing fund of the client
type PensionSource struct {
	ID                string           `yaml:"id" json:"id"`
	SourceType        SourceType       `yaml:"source_type" json:"source_type"`
	FundID            string           `yaml:"fund_id" json:"fund_id"`
	Capital           decimal.Decimal  `yaml:"capital" json:"capital"`                                           // Accumulated sum at retirement
	ManualCoefficient *decimal.Decimal `yaml:"manual_coefficient,omitempty" json:"manual_coefficient,omitempty"` // Used only when no table coefficient resolves
	MonthlyOverride   *decimal.Decimal `yaml:"monthly_override,omitempty" json:"monthly_override,omitempty"`     // Bypasses capital/coefficient when > 0
}

// SpouseBenefit describes the survivor guarantee attached to the annuity
type SpouseBenefit struct {
	HasSpouse       bool            `yaml:"has_spouse" json:"has_spouse"`
	GuaranteeMonths decimal.Decimal `yaml:"guarantee_months" json:"guarantee_months"` // Fractional values are kept as entered
	SpousePercent   decimal.Decimal `yaml:"spouse_percent" json:"spouse_percent"`
}

// SimulationInput is a single simulation request assembled by the calling layer
type SimulationInput struct {
	Gender                  Gender           `yaml:"gender" json:"gender"`
	RetirementAge           int              `yaml:"retirement_age" json:"retirement_age"`
	BirthYear               int              `yaml:"birth_year,omitempty" json:"birth_year,omitempty"` // 0 derives tax year minus retirement age
	TaxCreditPoints         decimal.Decimal  `yaml:"tax_credit_points" json:"tax_credit_points"`
	AdditionalIncomeMonthly decimal.Decimal  `yaml:"additional_income_monthly" json:"additional_income_monthly"`
	Spouse                  SpouseBenefit    `yaml:"spouse" json:"spouse"`
	Sources                 []PensionSource  `yaml:"sources" json:"sources"`
	RightsFixationRequested bool             `yaml:"rights_fixation" json:"rights_fixation"`
	ExemptionRateOverride   *decimal.Decimal `yaml:"exemption_rate,omitempty" json:"exemption_rate,omitempty"`
	TaxOnly                 bool             `yaml:"tax_only,omitempty" json:"tax_only,omitempty"`
	GrossMonthlyOverride    *decimal.Decimal `yaml:"gross_monthly_override,omitempty" json:"gross_monthly_override,omitempty"`
}

// TotalCapital sums the non-negative capital of all sources.
func (in *SimulationInput) TotalCapital() decimal.Decimal {
	total := decimal.Zero
	for _, s := range in.Sources {
		if s.Capital.IsPositive() {
			total = total.Add(s.Capital)
		}
	}
	return total
}

// MonthlyBasisKind tags how a source's monthly amount was obtained
type MonthlyBasisKind string

const (
	BasisDirect  MonthlyBasisKind = "direct"  // monthly override entered by the user
	BasisDerived MonthlyBasisKind = "derived" // capital / coefficient
	BasisZero    MonthlyBasisKind = "zero"    // nothing to derive from
)

// SourceMonthly is the per-source breakdown line of a simulation
type SourceMonthly struct {
	SourceID             string           `json:"source_id" yaml:"source_id"`
	SourceType           SourceType       `json:"source_type" yaml:"source_type"`
	FundID               string           `json:"fund_id" yaml:"fund_id"`
	AutoCoefficient      *decimal.Decimal `json:"auto_coefficient" yaml:"auto_coefficient"` // nil when the table has no coefficient
	EffectiveCoefficient decimal.Decimal  `json:"effective_coefficient" yaml:"effective_coefficient"`
	Basis                MonthlyBasisKind `json:"basis" yaml:"basis"`
	Monthly              decimal.Decimal  `json:"monthly" yaml:"monthly"`
}

// FixationScenario is the outcome when the exemption is (possibly) applied
type FixationScenario struct {
	Enabled        bool            `json:"enabled" yaml:"enabled"`
	ExemptPension  decimal.Decimal `json:"exempt_pension" yaml:"exempt_pension"`
	TaxablePension decimal.Decimal `json:"taxable_pension" yaml:"taxable_pension"`
	TaxableIncome  decimal.Decimal `json:"taxable_income" yaml:"taxable_income"`
	MonthlyTax     decimal.Decimal `json:"monthly_tax" yaml:"monthly_tax"`
	NetPension     decimal.Decimal `json:"net_pension" yaml:"net_pension"`
}

// BaselineScenario is the outcome with the whole pension taxable
type BaselineScenario struct {
	TaxableIncome decimal.Decimal `json:"taxable_income" yaml:"taxable_income"`
	MonthlyTax    decimal.Decimal `json:"monthly_tax" yaml:"monthly_tax"`
	NetPension    decimal.Decimal `json:"net_pension" yaml:"net_pension"`
}

// SimulationResult is produced fresh by every simulation call
type SimulationResult struct {
	TaxYear          int             `json:"tax_year" yaml:"tax_year"`
	BirthYear        int             `json:"birth_year" yaml:"birth_year"`
	SpouseKey        string          `json:"spouse_key" yaml:"spouse_key"`
	PerSourceMonthly []SourceMonthly `json:"per_source_monthly" yaml:"per_source_monthly"`

	// ComputedGrossPension is the sum of PerSourceMonthly. When GrossOverridden is set the
	// breakdown is informational only and GrossPension carries the override.
	ComputedGrossPension decimal.Decimal `json:"computed_gross_pension" yaml:"computed_gross_pension"`
	GrossPension         decimal.Decimal `json:"gross_pension" yaml:"gross_pension"`
	GrossOverridden      bool            `json:"gross_overridden" yaml:"gross_overridden"`

	FixationEligible bool             `json:"fixation_eligible" yaml:"fixation_eligible"`
	ExemptionRate    decimal.Decimal  `json:"exemption_rate" yaml:"exemption_rate"`
	WithFixation     FixationScenario `json:"with_fixation" yaml:"with_fixation"`
	WithoutFixation  BaselineScenario `json:"without_fixation" yaml:"without_fixation"`

	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// FixationGain is the monthly net difference the exemption makes.
func (r *SimulationResult) FixationGain() decimal.Decimal {
	return r.WithFixation.NetPension.Sub(r.WithoutFixation.NetPension)
}
