package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitTrend_MeanIntervalUsesBucketCount(t *testing.T) {
	counts := []YearCount{{2019, 10}, {2020, 12}, {2021, 14}}

	trend, err := FitTrend(counts)
	require.NoError(t, err)

	assert.Equal(t, 3, trend.N)
	assert.InDelta(t, 12.0, trend.Mean, 1e-12)
	// t(0.975, df=2) · 2/√3
	assert.InDelta(t, 7.031724576560907, trend.ConfidenceInterval.Low, 1e-6)
	assert.InDelta(t, 16.968275423439092, trend.ConfidenceInterval.High, 1e-6)

	// With n = 36 project rows the interval would be far narrower.
	assert.Greater(t, trend.ConfidenceInterval.High-trend.ConfidenceInterval.Low, 9.9)
}

func TestFitTrend_PerfectLine(t *testing.T) {
	trend, err := FitTrend([]YearCount{{2019, 10}, {2020, 12}, {2021, 14}})
	require.NoError(t, err)

	assert.InDelta(t, 2.0, trend.Slope, 1e-9)
	assert.InDelta(t, -4028.0, trend.Intercept, 1e-6)
	assert.InDelta(t, 1.0, trend.RSquared, 1e-9)
	assert.Less(t, trend.PValues.Slope, 1e-6)
}

func TestFitTrend_OLS(t *testing.T) {
	counts := []YearCount{{2016, 3}, {2017, 5}, {2018, 4}, {2019, 8}, {2020, 9}}

	trend, err := FitTrend(counts)
	require.NoError(t, err)

	assert.InDelta(t, 1.5, trend.Slope, 1e-9)
	assert.InDelta(t, -3021.2, trend.Intercept, 1e-6)
	assert.InDelta(t, 0.8395522388059701, trend.RSquared, 1e-9)
	assert.InDelta(t, 0.028715608406808868, trend.PValues.Slope, 1e-6)
	assert.InDelta(t, 0.028859755002476173, trend.PValues.Intercept, 1e-5)

	assert.InDelta(t, 5.8, trend.Mean, 1e-12)
	assert.InDelta(t, 2.5860324292680033, trend.ConfidenceInterval.Low, 1e-6)
	assert.InDelta(t, 9.013967570731996, trend.ConfidenceInterval.High, 1e-6)
	assert.Equal(t, DefaultConfidence, trend.Confidence)
}

func TestFitTrend_IntervalIndependentOfFit(t *testing.T) {
	// Same counts, different years: the fit changes, the interval does not.
	a, err := FitTrend([]YearCount{{2016, 3}, {2017, 5}, {2018, 4}, {2019, 8}, {2020, 9}})
	require.NoError(t, err)
	b, err := FitTrend([]YearCount{{2000, 3}, {2004, 5}, {2011, 4}, {2012, 8}, {2030, 9}})
	require.NoError(t, err)

	assert.NotEqual(t, a.Slope, b.Slope)
	assert.InDelta(t, a.ConfidenceInterval.Low, b.ConfidenceInterval.Low, 1e-12)
	assert.InDelta(t, a.ConfidenceInterval.High, b.ConfidenceInterval.High, 1e-12)
}

func TestFitTrend_SingleYearFails(t *testing.T) {
	trend, err := FitTrend([]YearCount{{2020, 7}})
	require.Error(t, err)
	assert.Nil(t, trend)
	assert.ErrorIs(t, err, ErrPrecondition)

	_, err = FitTrend(nil)
	assert.ErrorIs(t, err, ErrPrecondition)

	_, err = FitTrend([]YearCount{{2020, 1}, {2020, 2}})
	assert.ErrorIs(t, err, ErrPrecondition, "duplicate years are one distinct year")
}

func TestFitTrend_TwoYearsHasNoResidualDegrees(t *testing.T) {
	trend, err := FitTrend([]YearCount{{2019, 1}, {2020, 3}})
	require.NoError(t, err)

	assert.InDelta(t, 2.0, trend.Slope, 1e-9)
	assert.InDelta(t, 1.0, trend.RSquared, 1e-9)
	assert.True(t, math.IsNaN(trend.PValues.Slope))
	assert.True(t, math.IsNaN(trend.PValues.Intercept))
	assert.False(t, math.IsNaN(trend.ConfidenceInterval.Low))
}

func TestFitTrend_Confidence(t *testing.T) {
	counts := []YearCount{{2016, 3}, {2017, 5}, {2018, 4}, {2019, 8}, {2020, 9}}

	wide, err := FitTrend(counts, WithConfidence(0.99))
	require.NoError(t, err)
	narrow, err := FitTrend(counts, WithConfidence(0.80))
	require.NoError(t, err)
	assert.Less(t, wide.ConfidenceInterval.Low, narrow.ConfidenceInterval.Low)

	_, err = FitTrend(counts, WithConfidence(1.5))
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestMeanInterval_ConstantValues(t *testing.T) {
	mean, ci := MeanInterval([]float64{4, 4, 4}, 0.95)
	assert.Equal(t, 4.0, mean)
	assert.Equal(t, Interval{Low: 4, High: 4}, ci)
}
