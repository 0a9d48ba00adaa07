package dataset

import (
	"errors"
	"testing"

	"edustat/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoGroupDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := FromRows(
		[]string{"group", "score"},
		[][]string{
			{"A", "1"}, {"B", "6"}, {"A", "2"}, {"B", "7"}, {"A", "3"},
			{"B", "8"}, {"A", "4"}, {"B", "9"}, {"A", "5"}, {"B", "10"},
		},
	)
	require.NoError(t, err)
	return ds
}

func TestTwoGroups_SplitsByGroupingValue(t *testing.T) {
	ds := twoGroupDataset(t)

	g1, g2, err := TwoGroups(ds, "group", "score")
	require.NoError(t, err)

	assert.Equal(t, "A", g1.Label)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, g1.Values)
	assert.Equal(t, "B", g2.Label)
	assert.Equal(t, []float64{6, 7, 8, 9, 10}, g2.Values)
	assert.Equal(t, ds.Len(), g1.N()+g2.N())
}

func TestTwoGroups_OrdersByDescendingFrequency(t *testing.T) {
	ds, err := FromRows(
		[]string{"treated", "y"},
		[][]string{{"0", "1"}, {"1", "2"}, {"1", "3"}, {"1", "4"}, {"0", "5"}},
	)
	require.NoError(t, err)

	g1, g2, err := TwoGroups(ds, "treated", "y")
	require.NoError(t, err)
	assert.Equal(t, "1", g1.Label, "most frequent value is group 1")
	assert.Equal(t, []float64{2, 3, 4}, g1.Values)
	assert.Equal(t, "0", g2.Label)
}

func TestTwoGroups_NormalisesNumericLabels(t *testing.T) {
	ds, err := FromRows(
		[]string{"g", "y"},
		[][]string{{"1", "1"}, {"1.0", "2"}, {"2", "3"}},
	)
	require.NoError(t, err)

	g1, g2, err := TwoGroups(ds, "g", "y")
	require.NoError(t, err)
	assert.Equal(t, "1", g1.Label)
	assert.Equal(t, 2, g1.N())
	assert.Equal(t, "2", g2.Label)
}

func TestTwoGroups_SkipsMissingValues(t *testing.T) {
	ds, err := FromRows(
		[]string{"group", "score"},
		[][]string{{"A", "1"}, {"A", ""}, {"", "3"}, {"B", "4"}, {"B", "5"}},
	)
	require.NoError(t, err)

	g1, g2, err := TwoGroups(ds, "group", "score")
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, g1.Values)
	assert.Equal(t, []float64{4, 5}, g2.Values)
}

func TestTwoGroups_Preconditions(t *testing.T) {
	three, err := FromRows(
		[]string{"group", "score"},
		[][]string{{"A", "1"}, {"B", "2"}, {"C", "3"}},
	)
	require.NoError(t, err)

	one, err := FromRows([]string{"group", "score"}, [][]string{{"A", "1"}, {"A", "2"}})
	require.NoError(t, err)

	text, err := FromRows([]string{"group", "score"}, [][]string{{"A", "1"}, {"B", "high"}})
	require.NoError(t, err)

	emptyGroup, err := FromRows([]string{"group", "score"}, [][]string{{"A", "1"}, {"B", ""}})
	require.NoError(t, err)

	tests := []struct {
		name      string
		ds        *Dataset
		grouping  string
		dependent string
		kind      error
	}{
		{"no data", nil, "group", "score", core.ErrNoData},
		{"unknown grouping column", twoGroupDataset(t), "class", "score", core.ErrUnknownColumn},
		{"unknown dependent column", twoGroupDataset(t), "group", "height", core.ErrUnknownColumn},
		{"too many groups", three, "group", "score", core.ErrGroupCount},
		{"not enough groups", one, "group", "score", core.ErrGroupCount},
		{"non-numeric dependent", text, "group", "score", core.ErrNonNumeric},
		{"empty group", emptyGroup, "group", "score", core.ErrEmptySample},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := TwoGroups(test.ds, test.grouping, test.dependent)
			require.Error(t, err)
			assert.True(t, errors.Is(err, test.kind), "got %v", err)
			assert.True(t, core.IsPreconditionError(err))
		})
	}
}
