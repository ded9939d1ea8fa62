package calculation

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rpgo/pension-simulator/internal/domain"
	pkgdec "github.com/rpgo/pension-simulator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// NoSpouseKey is the spouse-benefit key used when no survivor guarantee applies
const NoSpouseKey = "S0"

// SpouseKey builds the spouse-benefit key used to select coefficient table entries.
// Negative months or percentages are treated as zero. Values are written in their
// shortest decimal form, so 60.0 gives "p60" and 50.5 gives "p50.5".
func SpouseKey(sb domain.SpouseBenefit) string {
	if !sb.HasSpouse {
		return NoSpouseKey
	}
	return fmt.Sprintf("S1_m%s_p%s", pkgdec.NonNegative(sb.GuaranteeMonths).String(), pkgdec.NonNegative(sb.SpousePercent).String())
}

// CoefficientLookupKey identifies a single cell in the coefficient table
type CoefficientLookupKey struct {
	FundID        string
	SourceType    domain.SourceType
	Gender        domain.Gender
	RetirementAge int
	SpouseKey     string
	BirthYear     int
}

// CoefficientResolver reads annuity coefficients from an immutable table
type CoefficientResolver struct {
	table *domain.CoefficientTable
}

// NewCoefficientResolver creates a resolver over table. A nil table resolves nothing.
func NewCoefficientResolver(table *domain.CoefficientTable) *CoefficientResolver {
	return &CoefficientResolver{table: table}
}

// Resolve returns the automatic coefficient for key. The boolean is false when any
// level of the table is missing or the stored value is not a finite positive number.
func (cr *CoefficientResolver) Resolve(key CoefficientLookupKey) (decimal.Decimal, bool) {
	st, ok := cr.sourceTable(key.FundID, key.SourceType)
	if !ok {
		return decimal.Zero, false
	}
	ages, ok := st.Genders[key.Gender]
	if !ok {
		return decimal.Zero, false
	}
	if key.RetirementAge <= 0 {
		return decimal.Zero, false
	}
	spouses, ok := ages[strconv.Itoa(key.RetirementAge)]
	if !ok {
		return decimal.Zero, false
	}
	years, ok := spouses[key.SpouseKey]
	if !ok {
		return decimal.Zero, false
	}
	year, ok := ClosestYear(st.Years, key.BirthYear)
	if !ok {
		return decimal.Zero, false
	}
	raw, ok := years[strconv.Itoa(year)]
	if !ok || !validCoefficient(raw) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(raw), true
}

func (cr *CoefficientResolver) sourceTable(fundID string, sourceType domain.SourceType) (domain.SourceTable, bool) {
	if cr == nil || cr.table == nil {
		return domain.SourceTable{}, false
	}
	byType, ok := cr.table.Tables[fundID]
	if !ok {
		return domain.SourceTable{}, false
	}
	st, ok := byType[string(sourceType)]
	return st, ok
}

func validCoefficient(v float64) bool {
	return pkgdec.IsFinite(v) && v > 0
}

// ClosestYear picks the recorded year nearest to birthYear. Ties go to the year
// listed first. It returns false for an empty list.
func ClosestYear(years []int, birthYear int) (int, bool) {
	if len(years) == 0 {
		return 0, false
	}
	best := years[0]
	bestDiff := math.Abs(float64(birthYear - best))
	for _, y := range years[1:] {
		if d := math.Abs(float64(birthYear - y)); d < bestDiff {
			best, bestDiff = y, d
		}
	}
	return best, true
}

// EffectiveCoefficient applies the override hierarchy: a resolved automatic
// coefficient wins, then a positive manual coefficient, otherwise zero.
func EffectiveCoefficient(auto decimal.Decimal, autoOK bool, manual *decimal.Decimal) decimal.Decimal {
	if autoOK && auto.IsPositive() {
		return auto
	}
	if m, ok := pkgdec.Positive(manual); ok {
		return m
	}
	return decimal.Zero
}
