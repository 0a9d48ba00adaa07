package dataset

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRows_ParsesNumericAndCategoricalCells(t *testing.T) {
	ds, err := FromRows(
		[]string{" name ", "age", "score"},
		[][]string{{"ann", "31", "2.5"}, {"bob", "", "3"}, {"cy", "40"}},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "score"}, ds.Names())
	assert.Equal(t, 3, ds.Len())

	age, err := ds.Column("age")
	require.NoError(t, err)
	assert.True(t, age.IsNumeric())
	values, err := age.Floats()
	require.NoError(t, err)
	assert.Equal(t, 31.0, values[0])
	assert.True(t, math.IsNaN(values[1]))

	name, err := ds.Column("name")
	require.NoError(t, err)
	assert.False(t, name.IsNumeric())
	_, err = name.Floats()
	assert.Error(t, err)

	assert.Len(t, ds.NumericColumns(), 2)
}

func TestFromRows_RejectsRaggedInput(t *testing.T) {
	_, err := FromRows([]string{"a"}, [][]string{{"1", "2"}})
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestFromColumns_AcceptsJSONValues(t *testing.T) {
	ds, err := FromColumns([]ColumnData{
		{Name: "group", Values: []interface{}{"A", "B", nil}},
		{Name: "score", Values: []interface{}{1.5, 2, "3"}},
	})
	require.NoError(t, err)

	score, err := ds.Column("score")
	require.NoError(t, err)
	values, err := score.Floats()
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2, 3}, values)

	group, err := ds.Column("group")
	require.NoError(t, err)
	assert.True(t, group.Values[2].Missing())
}

func TestFromColumns_RejectsInconsistentShapes(t *testing.T) {
	tests := []struct {
		name string
		data []ColumnData
	}{
		{"no columns", nil},
		{"duplicate", []ColumnData{{Name: "a", Values: []interface{}{1}}, {Name: "a", Values: []interface{}{2}}}},
		{"unnamed", []ColumnData{{Name: " ", Values: []interface{}{1}}}},
		{"unequal", []ColumnData{{Name: "a", Values: []interface{}{1}}, {Name: "b", Values: []interface{}{1, 2}}}},
		{"bad type", []ColumnData{{Name: "a", Values: []interface{}{[]int{1}}}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := FromColumns(test.data)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestFromFloats(t *testing.T) {
	ds, err := FromFloats([]string{"x", "y"}, []float64{1, 2}, []float64{3, math.NaN()})
	require.NoError(t, err)
	y, err := ds.Column("y")
	require.NoError(t, err)
	assert.True(t, y.Values[1].Missing())

	_, err = FromFloats([]string{"x"}, []float64{1}, []float64{2})
	assert.Error(t, err)
}
