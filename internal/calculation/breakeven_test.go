package calculation

import (
	"testing"

	"github.com/rpgo/pension-simulator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixationBreakEven(t *testing.T) {
	engine := NewSimulationEngine(testTables())

	t.Run("credits cover tax up to the threshold", func(t *testing.T) {
		input := &domain.SimulationInput{
			Gender:          domain.Male,
			RetirementAge:   67,
			TaxCreditPoints: dec(2.25),
			Sources:         []domain.PensionSource{{SourceType: domain.MainPension, FundID: "clal", Capital: dec(1800000)}},
		}
		gross, res, err := engine.FixationBreakEven(input)
		require.NoError(t, err)
		require.NotNil(t, res)

		// 10% of 5445 equals 2.25 credit points of 242
		assert.True(t, gross.GreaterThanOrEqual(dec(5445)), gross.String())
		assert.True(t, gross.LessThanOrEqual(dec(5445.02)), gross.String())
		assert.True(t, res.FixationGain().IsPositive())
		assert.True(t, res.GrossPension.Equal(gross), "result is computed at the returned gross: %s vs %s", res.GrossPension, gross)
		assert.Equal(t, int32(2), -gross.Exponent(), "gross is rounded to the agora")
		assert.Empty(t, res.PerSourceMonthly, "sources are ignored during the search")
		assert.Len(t, input.Sources, 1, "caller input is not modified")
	})

	t.Run("additional income lowers the threshold", func(t *testing.T) {
		input := &domain.SimulationInput{
			Gender:                  domain.Female,
			RetirementAge:           64,
			TaxCreditPoints:         dec(2.25),
			AdditionalIncomeMonthly: dec(2000),
		}
		gross, _, err := engine.FixationBreakEven(input)
		require.NoError(t, err)
		assert.True(t, gross.GreaterThanOrEqual(dec(3445)), gross.String())
		assert.True(t, gross.LessThanOrEqual(dec(3445.02)), gross.String())
	})

	t.Run("ineligible", func(t *testing.T) {
		_, res, err := engine.FixationBreakEven(&domain.SimulationInput{Gender: domain.Male, RetirementAge: 63})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not available")
		assert.False(t, res.FixationEligible)
	})

	t.Run("zero exemption rate never pays", func(t *testing.T) {
		zero := dec(0)
		_, _, err := engine.FixationBreakEven(&domain.SimulationInput{Gender: domain.Female, RetirementAge: 70, ExemptionRateOverride: &zero})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not lower the tax")
	})

	t.Run("nil input", func(t *testing.T) {
		_, _, err := engine.FixationBreakEven(nil)
		assert.Error(t, err)
	})
}
