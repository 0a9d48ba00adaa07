package engine

import (
	"sort"
)

// Ranks converts values to 1-based ranks, giving tied values the average of the
// ranks they span.
func Ranks(data []float64) []float64 {
	n := len(data)
	ranks := make([]float64, n)
	if n == 0 {
		return ranks
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return data[order[a]] < data[order[b]]
	})

	i := 0
	for i < n {
		j := i + 1
		for j < n && data[order[j]] == data[order[i]] {
			j++
		}

		avgRank := float64(i+1) + float64(j-i-1)/2.0
		for k := i; k < j; k++ {
			ranks[order[k]] = avgRank
		}
		i = j
	}

	return ranks
}

// tieGroups returns the size of every run of equal values with more than one member
func tieGroups(data []float64) []int {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	var groups []int
	i := 0
	for i < len(sorted) {
		j := i + 1
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		if j-i > 1 {
			groups = append(groups, j-i)
		}
		i = j
	}
	return groups
}
