package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMean_Basic tests the arithmetic mean against hand-computed values
func TestMean_Basic(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, -1.5, Mean([]float64{-1, -2}))
}

// TestStdDev_Basic tests the sample standard deviation
func TestStdDev_Basic(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{5}))

	// Variance of {2,4,4,4,5,5,7,9} around mean 5 is 32/7.
	sd := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 2.13809, sd, 1e-5)
}

// TestPercentile_Interpolation tests linear interpolation between ranks
func TestPercentile_Interpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	assert.Equal(t, 1.0, Percentile(values, 0))
	assert.Equal(t, 4.0, Percentile(values, 100))
	assert.InDelta(t, 2.5, Percentile(values, 50), 1e-12)
	assert.InDelta(t, 3.25, Percentile(values, 75), 1e-12)
}

// TestPercentile_DoesNotMutateInput tests that the input order survives
func TestPercentile_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Percentile(values, 50)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

// TestNormalCDF_KnownValues tests the CDF at well-known points
func TestNormalCDF_KnownValues(t *testing.T) {
	assert.InDelta(t, 0.5, NormalCDF(0), 1e-12)
	assert.InDelta(t, 0.97725, NormalCDF(2), 1e-5)
	assert.InDelta(t, 0.02275, NormalCDF(-2), 1e-5)
}

// TestCorrelation_PerfectAndDegenerate tests correlation extremes
func TestCorrelation_PerfectAndDegenerate(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 4, 6, 8, 10}
	inverse := []float64{5, 4, 3, 2, 1}

	assert.InDelta(t, 1.0, Correlation(a, b), 1e-12)
	assert.InDelta(t, -1.0, Correlation(a, inverse), 1e-12)

	// Mismatched lengths and constant series do not correlate.
	assert.Equal(t, 0.0, Correlation(a, []float64{1, 2}))
	assert.Equal(t, 0.0, Correlation(a, []float64{3, 3, 3, 3, 3}))
}
