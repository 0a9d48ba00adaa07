package engine

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Summary holds the descriptive statistics of one sample
type Summary struct {
	N      int
	Mean   float64 // NaN when N == 0
	StdDev float64 // sample (n-1) standard deviation, NaN when N < 2
	StdErr float64 // StdDev / sqrt(N)
}

// Describe computes count, mean, sample standard deviation and standard error
func Describe(data []float64) Summary {
	s := Summary{N: len(data), Mean: math.NaN(), StdDev: math.NaN(), StdErr: math.NaN()}
	if s.N == 0 {
		return s
	}

	if mean, err := stats.Mean(data); err == nil {
		s.Mean = mean
	}
	if s.N < 2 {
		return s
	}
	if sd, err := stats.StandardDeviationSample(data); err == nil {
		s.StdDev = sd
		s.StdErr = sd / math.Sqrt(float64(s.N))
	}
	return s
}

// Round rounds half away from zero to the given number of decimals. Undefined
// values pass through unchanged. Ties are decided on the scaled float x*10^places,
// not on the exact binary value of x, so a number lying just off a decimal tie
// can differ in the last place from exact-binary rounding.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	rounded, err := stats.Round(x, places)
	if err != nil {
		return x
	}
	return rounded
}

// Rounded returns a copy of s with every float rounded to the given decimals
func (s Summary) Rounded(places int) Summary {
	return Summary{
		N:      s.N,
		Mean:   Round(s.Mean, places),
		StdDev: Round(s.StdDev, places),
		StdErr: Round(s.StdErr, places),
	}
}

func variance(data []float64) float64 {
	if len(data) < 2 {
		return math.NaN()
	}
	v, err := stats.SampleVariance(data)
	if err != nil {
		return math.NaN()
	}
	return v
}
