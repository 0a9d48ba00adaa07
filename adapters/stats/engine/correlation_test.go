package engine

import (
	"errors"
	"math"
	"testing"

	"edustat/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPearson(t *testing.T) {
	tests := []struct {
		name  string
		x, y  []float64
		wantR float64
		wantP float64
	}{
		{"perfect positive", []float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10}, 1, 0},
		{"perfect negative", []float64{1, 2, 3, 4, 5}, []float64{5, 4, 3, 2, 1}, -1, 0},
		{"partial", []float64{1, 2, 3, 4}, []float64{1, 3, 2, 4}, 0.8, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Pearson(tt.x, tt.y)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantR, res.R, 1e-9)
			assert.InDelta(t, tt.wantP, res.P, 1e-6)
			assert.Equal(t, len(tt.x), res.N)
		})
	}
}

func TestSpearman_MonotonicIsOne(t *testing.T) {
	res, err := Spearman([]float64{1, 2, 3, 4, 5}, []float64{1, 4, 9, 16, 25})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.R, 1e-12)
	assert.InDelta(t, 0.0, res.P, 1e-9)
}

func TestSpearman_Ties(t *testing.T) {
	// ranks are [1, 2.5, 2.5, 4] and [1, 3, 2, 4]
	res, err := Spearman([]float64{1, 2, 2, 3}, []float64{1, 3, 2, 4})
	require.NoError(t, err)
	assert.InDelta(t, 4.5/math.Sqrt(4.5*5), res.R, 1e-12)
}

func TestKendall(t *testing.T) {
	t.Run("concordant exact", func(t *testing.T) {
		res, err := Kendall([]float64{1, 2, 3, 4, 5}, []float64{1, 2, 3, 4, 5})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, res.R, 1e-12)
		assert.InDelta(t, 2.0/120, res.P, 1e-12)
	})

	t.Run("reversed exact", func(t *testing.T) {
		res, err := Kendall([]float64{1, 2, 3, 4, 5}, []float64{5, 4, 3, 2, 1})
		require.NoError(t, err)
		assert.InDelta(t, -1.0, res.R, 1e-12)
		assert.InDelta(t, 2.0/120, res.P, 1e-12)
	})

	t.Run("one inversion", func(t *testing.T) {
		res, err := Kendall([]float64{1, 2, 3, 4, 5}, []float64{1, 3, 2, 4, 5})
		require.NoError(t, err)
		assert.InDelta(t, 0.8, res.R, 1e-12)
		assert.InDelta(t, 10.0/120, res.P, 1e-12)
	})

	t.Run("ties use tau-b", func(t *testing.T) {
		res, err := Kendall([]float64{1, 2, 2, 3}, []float64{1, 2, 3, 3})
		require.NoError(t, err)
		assert.InDelta(t, 0.8, res.R, 1e-12)
		assert.Greater(t, res.P, 0.0)
		assert.Less(t, res.P, 1.0)
	})

	t.Run("constant column", func(t *testing.T) {
		res, err := Kendall([]float64{1, 1, 1}, []float64{1, 2, 3})
		require.NoError(t, err)
		assert.True(t, math.IsNaN(res.R))
	})
}

func TestCorrelations_AreSymmetric(t *testing.T) {
	x := []float64{3.1, 0.4, 2.2, 5.9, 4.4, 1.0, 2.2}
	y := []float64{1.5, 0.2, 2.9, 4.1, 3.3, 0.9, 1.1}

	for name, fn := range map[string]func(a, b []float64) (CorrelationResult, error){
		"pearson":  Pearson,
		"spearman": Spearman,
		"kendall":  Kendall,
	} {
		t.Run(name, func(t *testing.T) {
			xy, err := fn(x, y)
			require.NoError(t, err)
			yx, err := fn(y, x)
			require.NoError(t, err)
			assert.InDelta(t, xy.R, yx.R, 1e-12)
			assert.InDelta(t, xy.P, yx.P, 1e-12)
		})
	}
}

func TestCorrelations_RejectShortInput(t *testing.T) {
	_, err := Pearson([]float64{1}, []float64{2})
	assert.True(t, errors.Is(err, core.ErrSampleTooSmall))

	_, err = Kendall([]float64{1, 2}, []float64{1})
	assert.Error(t, err)
}

func TestCorrelationPValue_TwoPoints(t *testing.T) {
	assert.Equal(t, 1.0, CorrelationPValue(1, 2))
	assert.True(t, math.IsNaN(CorrelationPValue(math.NaN(), 10)))
}
