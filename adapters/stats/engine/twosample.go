package engine

import (
	"math"

	"edustat/domain/core"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TTestResult is a t statistic with its degrees of freedom and two-tailed p-value
type TTestResult struct {
	T  float64
	DF float64
	P  float64
}

// LeveneResult is Levene's F statistic and its p-value
type LeveneResult struct {
	F float64
	P float64
}

// MannWhitneyResult is U for the first sample with its asymptotic two-tailed p-value
type MannWhitneyResult struct {
	U float64
	P float64
}

func checkSamples(a, b []float64) error {
	if len(a) == 0 {
		return core.NewEmptySampleError("sample 1")
	}
	if len(b) == 0 {
		return core.NewEmptySampleError("sample 2")
	}
	return nil
}

// PooledDF returns n1+n2-2
func PooledDF(a, b []float64) int {
	return len(a) + len(b) - 2
}

// StudentTTest performs the equal-variance (pooled) independent samples t-test
func StudentTTest(a, b []float64) (TTestResult, error) {
	if err := checkSamples(a, b); err != nil {
		return TTestResult{}, err
	}

	n1, n2 := float64(len(a)), float64(len(b))
	df := n1 + n2 - 2
	mean1, mean2 := stat.Mean(a, nil), stat.Mean(b, nil)

	// ddof=1 variances; a single observation contributes zero sum of squares
	ss1 := sumSquares(a, mean1)
	ss2 := sumSquares(b, mean2)
	pooled := (ss1 + ss2) / df
	se := math.Sqrt(pooled * (1/n1 + 1/n2))

	t := (mean1 - mean2) / se
	return TTestResult{T: t, DF: df, P: TTestPValue(t, df)}, nil
}

// WelchTTest performs the unequal-variance t-test with Welch–Satterthwaite df
func WelchTTest(a, b []float64) (TTestResult, error) {
	if err := checkSamples(a, b); err != nil {
		return TTestResult{}, err
	}

	n1, n2 := float64(len(a)), float64(len(b))
	mean1, mean2 := stat.Mean(a, nil), stat.Mean(b, nil)
	v1 := variance(a) / n1
	v2 := variance(b) / n2

	t := (mean1 - mean2) / math.Sqrt(v1+v2)
	df := (v1 + v2) * (v1 + v2) / (v1*v1/(n1-1) + v2*v2/(n2-1))

	return TTestResult{T: t, DF: df, P: TTestPValue(t, df)}, nil
}

// LeveneTest tests equality of variances using absolute deviations from each
// group's mean.
func LeveneTest(a, b []float64) (LeveneResult, error) {
	if err := checkSamples(a, b); err != nil {
		return LeveneResult{}, err
	}

	za := absDeviations(a)
	zb := absDeviations(b)

	n1, n2 := float64(len(za)), float64(len(zb))
	total := n1 + n2
	const k = 2.0

	meanA, meanB := stat.Mean(za, nil), stat.Mean(zb, nil)
	grand := (floats.Sum(za) + floats.Sum(zb)) / total

	between := n1*(meanA-grand)*(meanA-grand) + n2*(meanB-grand)*(meanB-grand)
	within := sumSquares(za, meanA) + sumSquares(zb, meanB)

	f := (total - k) / (k - 1) * between / within
	if between == 0 && within == 0 {
		f = math.NaN()
	}
	return LeveneResult{F: f, P: FTestPValue(f, k-1, total-k)}, nil
}

// MannWhitneyUTest performs the two-sided Mann-Whitney U test with the normal
// approximation, tie correction and continuity correction. U is reported for
// the first sample.
func MannWhitneyUTest(a, b []float64) (MannWhitneyResult, error) {
	if err := checkSamples(a, b); err != nil {
		return MannWhitneyResult{}, err
	}

	n1, n2 := float64(len(a)), float64(len(b))
	combined := make([]float64, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	ranks := Ranks(combined)

	r1 := floats.Sum(ranks[:len(a)])
	u1 := r1 - n1*(n1+1)/2
	u2 := n1*n2 - u1
	u := math.Max(u1, u2)

	n := n1 + n2
	tieTerm := 0.0
	for _, t := range tieGroups(combined) {
		tf := float64(t)
		tieTerm += tf*tf*tf - tf
	}
	mu := n1 * n2 / 2
	sigma := math.Sqrt(n1 * n2 / 12 * ((n + 1) - tieTerm/(n*(n-1))))

	var p float64
	if sigma == 0 || math.IsNaN(sigma) {
		p = math.NaN()
	} else {
		z := (u - mu - 0.5) / sigma
		p = 2 * survivalNormal(z)
		p = clampProbability(p)
	}

	return MannWhitneyResult{U: u1, P: p}, nil
}

func absDeviations(data []float64) []float64 {
	mean := stat.Mean(data, nil)
	out := make([]float64, len(data))
	for i, x := range data {
		out[i] = math.Abs(x - mean)
	}
	return out
}

func sumSquares(data []float64, mean float64) float64 {
	ss := 0.0
	for _, x := range data {
		d := x - mean
		ss += d * d
	}
	return ss
}
