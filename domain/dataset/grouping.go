package dataset

import (
	"sort"
	"strconv"

	"edustat/domain/core"

	"github.com/samber/lo"
)

// Group is one partition of the rows, identified by a distinct value of the
// grouping column, holding the dependent values of those rows.
type Group struct {
	Label  string
	Values []float64
}

// N returns the number of observations in the group
func (g Group) N() int {
	return len(g.Values)
}

// label normalises a grouping cell so that "1" and "1.0" land in the same group.
func label(v Value) string {
	if v.Numeric {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

// Partition splits the dependent column by each distinct value of the grouping
// column. Groups are ordered by descending frequency of the grouping value, ties
// broken by first appearance. Rows missing either value are skipped.
func Partition(d *Dataset, grouping, dependent string) ([]Group, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	groupCol, err := d.Column(grouping)
	if err != nil {
		return nil, err
	}
	depCol, err := d.Column(dependent)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(groupCol.Values))
	for _, v := range groupCol.Values {
		if !v.Missing() {
			labels = append(labels, label(v))
		}
	}
	counts := lo.CountValues(labels)
	order := lo.Uniq(labels)
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	groups := make([]Group, len(order))
	position := make(map[string]int, len(order))
	for i, l := range order {
		groups[i] = Group{Label: l}
		position[l] = i
	}

	for row, g := range groupCol.Values {
		dep := depCol.Values[row]
		if g.Missing() || dep.Missing() {
			continue
		}
		if !dep.Numeric {
			return nil, core.NewNonNumericError(dependent, row+1, dep.Text)
		}
		i := position[label(g)]
		groups[i].Values = append(groups[i].Values, dep.Number)
	}

	return groups, nil
}

// TwoGroups partitions the dataset and requires exactly two groups, which is
// what every two-sample test needs. The first group is the more frequent one.
func TwoGroups(d *Dataset, grouping, dependent string) (Group, Group, error) {
	groups, err := Partition(d, grouping, dependent)
	if err != nil {
		return Group{}, Group{}, err
	}
	if len(groups) != 2 {
		labels := lo.Map(groups, func(g Group, _ int) string { return g.Label })
		return Group{}, Group{}, core.NewGroupCountError(grouping, labels)
	}
	for _, g := range groups {
		if g.N() == 0 {
			return Group{}, Group{}, core.NewEmptySampleError("group " + strconv.Quote(g.Label) + " of " + dependent)
		}
	}
	return groups[0], groups[1], nil
}
