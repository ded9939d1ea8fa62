package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeFixation(t *testing.T) {
	t.Run("gain", func(t *testing.T) {
		rec := AnalyzeFixation(buildTestResult())
		assert.True(t, rec.ElectFixation)
		assert.True(t, rec.MonthlyGain.Equal(d("655.5")))
		assert.True(t, rec.AnnualGain.Equal(d("7866")))
		assert.True(t, rec.PercentageChange.GreaterThan(d("7.85")))
		assert.True(t, rec.PercentageChange.LessThan(d("7.86")))
	})

	t.Run("ineligible", func(t *testing.T) {
		res := buildTestResult()
		res.FixationEligible = false
		rec := AnalyzeFixation(res)
		assert.False(t, rec.ElectFixation)
		assert.Contains(t, rec.Reason, "not eligible")
	})

	t.Run("not requested", func(t *testing.T) {
		res := buildTestResult()
		res.WithFixation.Enabled = false
		res.WithFixation.NetPension = res.WithoutFixation.NetPension
		rec := AnalyzeFixation(res)
		assert.False(t, rec.ElectFixation)
		assert.Equal(t, "rights fixation was not requested", rec.Reason)
	})

	t.Run("credits cover tax", func(t *testing.T) {
		res := buildTestResult()
		res.WithoutFixation.MonthlyTax = decimal.Zero
		res.WithoutFixation.NetPension = res.WithFixation.NetPension
		rec := AnalyzeFixation(res)
		assert.False(t, rec.ElectFixation)
		assert.True(t, rec.MonthlyGain.IsZero())
	})
}
