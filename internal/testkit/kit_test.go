package testkit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassroom_Deterministic(t *testing.T) {
	cfg := DefaultClassroomConfig()
	cfg.MissingRate = 0.1

	first, err := Classroom(cfg)
	require.NoError(t, err)
	second, err := Classroom(cfg)
	require.NoError(t, err)

	assert.Equal(t, 60, first.Len())
	assert.Equal(t, []string{"class", "score", "hours", "age"}, first.Names())

	a, err := first.Column("score")
	require.NoError(t, err)
	b, err := second.Column("score")
	require.NoError(t, err)
	if diff := cmp.Diff(a, b, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("same seed produced different scores (-first +second):\n%s", diff)
	}
}

func TestClassroom_UnevenGroups(t *testing.T) {
	cfg := DefaultClassroomConfig()
	cfg.Sizes = [2]int{5, 2}

	ds, err := Classroom(cfg)
	require.NoError(t, err)
	class, err := ds.Column("class")
	require.NoError(t, err)

	counts := map[string]int{}
	for _, v := range class.Values {
		counts[v.Text]++
	}
	assert.Equal(t, map[string]int{"A": 5, "B": 2}, counts)
}

func TestTwoSamples(t *testing.T) {
	ds, err := TwoSamples([]float64{1, 2}, []float64{3})
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
}
