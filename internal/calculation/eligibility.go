package calculation

import "github.com/rpgo/pension-simulator/internal/domain"

// Minimum retirement ages for electing rights fixation
const (
	FemaleFixationAge = 64
	MaleFixationAge   = 67
)

// CanFixRights reports whether a client of the given gender retiring at the given
// age may elect the rights-fixation exemption. Non-positive ages are never eligible.
func CanFixRights(gender domain.Gender, retirementAge int) bool {
	if retirementAge <= 0 {
		return false
	}
	if gender == domain.Female {
		return retirementAge >= FemaleFixationAge
	}
	return retirementAge >= MaleFixationAge
}
