package engine

import (
	"runtime"
)

// StatsEngine runs the test battery over prepared samples. It keeps no
// per-call state, so one engine can serve concurrent callers.
type StatsEngine struct {
	workers int64
}

// Option configures a StatsEngine
type Option func(*StatsEngine)

// WithWorkers bounds how many columns or column pairs are computed at once.
// Values below one fall back to the default.
func WithWorkers(n int) Option {
	return func(e *StatsEngine) {
		if n > 0 {
			e.workers = int64(n)
		}
	}
}

// NewStatsEngine creates a new statistical engine
func NewStatsEngine(opts ...Option) *StatsEngine {
	e := &StatsEngine{workers: int64(runtime.NumCPU())}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Workers returns the concurrency bound
func (e *StatsEngine) Workers() int {
	return int(e.workers)
}

// MeansComparison bundles the parametric two-sample tests for one pair of groups
type MeansComparison struct {
	Group1  Summary
	Group2  Summary
	Student TTestResult
	Welch   TTestResult
	Levene  LeveneResult
}

// RanksComparison is the Mann-Whitney U test with the descriptive stats of both groups
type RanksComparison struct {
	Group1      Summary
	Group2      Summary
	MannWhitney MannWhitneyResult
}

// CompareMeans runs the pooled t-test, Welch's t-test and Levene's test
func (e *StatsEngine) CompareMeans(a, b []float64) (MeansComparison, error) {
	student, err := StudentTTest(a, b)
	if err != nil {
		return MeansComparison{}, err
	}
	welch, err := WelchTTest(a, b)
	if err != nil {
		return MeansComparison{}, err
	}
	levene, err := LeveneTest(a, b)
	if err != nil {
		return MeansComparison{}, err
	}

	return MeansComparison{
		Group1:  Describe(a),
		Group2:  Describe(b),
		Student: student,
		Welch:   welch,
		Levene:  levene,
	}, nil
}

// CompareRanks runs the Mann-Whitney U test
func (e *StatsEngine) CompareRanks(a, b []float64) (RanksComparison, error) {
	mw, err := MannWhitneyUTest(a, b)
	if err != nil {
		return RanksComparison{}, err
	}
	return RanksComparison{
		Group1:      Describe(a),
		Group2:      Describe(b),
		MannWhitney: mw,
	}, nil
}
