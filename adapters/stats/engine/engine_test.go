package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"edustat/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatsEngine_Workers(t *testing.T) {
	assert.Equal(t, 3, NewStatsEngine(WithWorkers(3)).Workers())
	assert.Positive(t, NewStatsEngine(WithWorkers(0)).Workers())
}

func TestCompareMeans(t *testing.T) {
	e := NewStatsEngine()
	cmp, err := e.CompareMeans(groupA, groupB)
	require.NoError(t, err)

	assert.Equal(t, 5, cmp.Group1.N)
	assert.Equal(t, 3.0, cmp.Group1.Mean)
	assert.Equal(t, 8.0, cmp.Group2.Mean)
	assert.InDelta(t, -5.0, cmp.Student.T, 1e-12)
	assert.InDelta(t, cmp.Student.T, cmp.Welch.T, 1e-12)
	assert.InDelta(t, 0.0, cmp.Levene.F, 1e-12)

	_, err = e.CompareMeans(groupA, nil)
	assert.True(t, errors.Is(err, core.ErrEmptySample))
}

func TestCompareRanks(t *testing.T) {
	cmp, err := NewStatsEngine().CompareRanks(groupA, groupB)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cmp.MannWhitney.U)
	assert.Equal(t, 5, cmp.Group2.N)
}

func TestPairwiseComplete(t *testing.T) {
	nan := math.NaN()
	xs, ys := PairwiseComplete([]float64{1, nan, 3, 4}, []float64{1, 2, nan, 5})
	assert.Equal(t, []float64{1, 4}, xs)
	assert.Equal(t, []float64{1, 5}, ys)
	assert.Equal(t, []float64{1, 3}, DropMissing([]float64{nan, 1, 3, nan}))
}

func TestCorrelationMatrix(t *testing.T) {
	samples := []Sample{
		{Name: "a", Values: []float64{1, 2, 3, 4, 5, 6}},
		{Name: "b", Values: []float64{2, 1, 4, 3, 6, 5}},
		{Name: "c", Values: []float64{9, 7, 8, 3, 2, math.NaN()}},
	}

	pairs, err := NewStatsEngine(WithWorkers(2)).CorrelationMatrix(context.Background(), samples)
	require.NoError(t, err)
	require.Len(t, pairs, 9)

	byKey := make(map[string]PairCorrelation, len(pairs))
	for _, p := range pairs {
		byKey[p.X+"_"+p.Y] = p
	}
	assert.Equal(t, "a", pairs[0].X)
	assert.Equal(t, "b", pairs[1].Y)
	assert.Equal(t, "b", pairs[3].X)

	for _, s := range samples {
		self := byKey[s.Name+"_"+s.Name]
		assert.InDelta(t, 1.0, self.Pearson.R, 1e-12, s.Name)
		assert.InDelta(t, 1.0, self.Spearman.R, 1e-12, s.Name)
		assert.InDelta(t, 1.0, self.Kendall.R, 1e-12, s.Name)
	}

	ab, ba := byKey["a_b"], byKey["b_a"]
	assert.Equal(t, ab.Pearson, ba.Pearson)
	assert.Equal(t, ab.Kendall, ba.Kendall)
	assert.Equal(t, 5, byKey["a_c"].Pearson.N)
}

func TestCorrelationMatrix_TooFewCompleteRows(t *testing.T) {
	nan := math.NaN()
	samples := []Sample{
		{Name: "a", Values: []float64{1, nan, 3}},
		{Name: "b", Values: []float64{nan, 2, nan}},
	}
	_, err := NewStatsEngine().CorrelationMatrix(context.Background(), samples)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrSampleTooSmall))
	assert.Contains(t, err.Error(), "a/b")
}

func TestCorrelationMatrix_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStatsEngine().CorrelationMatrix(ctx, []Sample{{Name: "a", Values: groupA}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalityBattery(t *testing.T) {
	samples := []Sample{
		{Name: "normal", Values: normalQuantiles(25)},
		{Name: "skewed", Values: append(exponentialGrowth(20), math.NaN())},
	}

	reports, err := NewStatsEngine(WithWorkers(1)).NormalityBattery(context.Background(), samples)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "normal", reports[0].Column)
	assert.Equal(t, 20, reports[1].N)
	assert.Less(t, reports[1].ShapiroWilk.P, reports[0].ShapiroWilk.P)
}

func TestNormalityBattery_FirstFailingColumnWins(t *testing.T) {
	samples := []Sample{
		{Name: "ok", Values: normalQuantiles(10)},
		{Name: "short", Values: []float64{1, 2}},
		{Name: "flat", Values: []float64{3, 3, 3, 3, 3, 3, 3, 3}},
	}
	for i := 0; i < 5; i++ {
		_, err := NewStatsEngine(WithWorkers(3)).NormalityBattery(context.Background(), samples)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "short")
	}
}
