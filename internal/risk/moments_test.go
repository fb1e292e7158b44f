package risk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{0.02}, 0.02},
		{"symmetric", []float64{-0.01, 0.01}, 0},
		{"textbook", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Mean(tt.values), 1e-15)
		})
	}
}

func TestSampleStdDev(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, SampleStdDev(nil, 0))
	})

	t.Run("single observation", func(t *testing.T) {
		assert.Equal(t, 0.0, SampleStdDev([]float64{0.05}, 0.05))
	})

	t.Run("bessel corrected", func(t *testing.T) {
		values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
		// sum of squares 32, N-1 = 7
		assert.InDelta(t, math.Sqrt(32.0/7.0), SampleStdDev(values, Mean(values)), 1e-12)
	})
}

func TestSampleStdDev_IdenticalValuesExactlyZero(t *testing.T) {
	for _, v := range []float64{0.1, -0.013, 0.3333333333333333, 1e-9, 12345.678} {
		for _, n := range []int{2, 3, 30, 1001} {
			values := make([]float64, n)
			for i := range values {
				values[i] = v
			}

			mean := Mean(values)
			assert.Equal(t, v, mean, "mean of %d copies of %v", n, v)
			assert.Equal(t, 0.0, SampleStdDev(values, mean), "std of %d copies of %v", n, v)
		}
	}
}

func TestMoments_MatchGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := make([]float64, 2500)
	for i := range values {
		values[i] = 0.0004 + 0.012*rng.NormFloat64()
	}

	mean := Mean(values)
	assert.InDelta(t, stat.Mean(values, nil), mean, 1e-14)
	// gonum StdDev is the unbiased (N-1) estimator
	assert.InDelta(t, stat.StdDev(values, nil), SampleStdDev(values, mean), 1e-14)
}
