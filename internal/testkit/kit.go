package testkit

import (
	"math"
	"math/rand/v2"
	"strconv"

	"edustat/domain/dataset"

	"gonum.org/v1/gonum/stat/distuv"
)

// ClassroomConfig describes a synthetic two-class exam dataset
type ClassroomConfig struct {
	Groups      [2]string  // labels of the grouping column
	Sizes       [2]int     // students per group
	Means       [2]float64 // mean score per group
	StdDevs     [2]float64 // score spread per group
	MissingRate float64    // share of scores left blank
	Seed        uint64
}

// DefaultClassroomConfig returns two slightly different classes of 30 students
func DefaultClassroomConfig() ClassroomConfig {
	return ClassroomConfig{
		Groups:  [2]string{"A", "B"},
		Sizes:   [2]int{30, 30},
		Means:   [2]float64{70, 75},
		StdDevs: [2]float64{8, 8},
		Seed:    42,
	}
}

// Classroom generates a dataset with the columns class, score, hours and age.
// Rows alternate between the groups until the smaller one is exhausted. The
// same config always yields the same dataset.
func Classroom(cfg ClassroomConfig) (*dataset.Dataset, error) {
	src := rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)
	rng := rand.New(src)

	scores := [2]distuv.Normal{
		{Mu: cfg.Means[0], Sigma: cfg.StdDevs[0], Src: src},
		{Mu: cfg.Means[1], Sigma: cfg.StdDevs[1], Src: src},
	}
	hours := distuv.Gamma{Alpha: 4, Beta: 0.5, Src: src}

	total := cfg.Sizes[0] + cfg.Sizes[1]
	class := make([]interface{}, 0, total)
	score := make([]interface{}, 0, total)
	study := make([]interface{}, 0, total)
	age := make([]interface{}, 0, total)

	remaining := cfg.Sizes
	for len(class) < total {
		for g := 0; g < 2; g++ {
			if remaining[g] == 0 {
				continue
			}
			remaining[g]--

			h := hours.Rand()
			class = append(class, cfg.Groups[g])
			study = append(study, math.Round(h*10)/10)
			age = append(age, strconv.Itoa(15+rng.IntN(4)))
			if rng.Float64() < cfg.MissingRate {
				score = append(score, nil)
				continue
			}
			score = append(score, math.Round((scores[g].Rand()+0.8*h)*10)/10)
		}
	}

	return dataset.FromColumns([]dataset.ColumnData{
		{Name: "class", Values: class},
		{Name: "score", Values: score},
		{Name: "hours", Values: study},
		{Name: "age", Values: age},
	})
}

// TwoSamples returns a dataset with a group column holding the labels A and B
// and a value column holding a followed by b.
func TwoSamples(a, b []float64) (*dataset.Dataset, error) {
	labels := make([]interface{}, 0, len(a)+len(b))
	values := make([]interface{}, 0, len(a)+len(b))
	for _, v := range a {
		labels = append(labels, "A")
		values = append(values, v)
	}
	for _, v := range b {
		labels = append(labels, "B")
		values = append(values, v)
	}
	return dataset.FromColumns([]dataset.ColumnData{
		{Name: "group", Values: labels},
		{Name: "value", Values: values},
	})
}
