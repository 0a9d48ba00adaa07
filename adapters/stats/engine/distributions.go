package engine

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// TTestPValue computes the two-tailed p-value of a t statistic with df degrees of freedom
func TTestPValue(t, df float64) float64 {
	if math.IsNaN(t) || math.IsNaN(df) || df <= 0 {
		return math.NaN()
	}
	if math.IsInf(t, 0) {
		return 0
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return clampProbability(2 * tDist.Survival(math.Abs(t)))
}

// FTestPValue computes the upper-tail p-value for an F statistic
func FTestPValue(f, df1, df2 float64) float64 {
	if math.IsNaN(f) || df1 <= 0 || df2 <= 0 {
		return math.NaN()
	}
	if math.IsInf(f, 1) {
		return 0
	}
	fDist := distuv.F{D1: df1, D2: df2}
	return clampProbability(fDist.Survival(f))
}

// ChiSquarePValue computes the upper-tail p-value of a chi-square statistic
func ChiSquarePValue(chi2 float64, df float64) float64 {
	if math.IsNaN(chi2) || df <= 0 {
		return math.NaN()
	}
	chiDist := distuv.ChiSquared{K: df}
	return clampProbability(chiDist.Survival(chi2))
}

// NormalTwoTailed computes the two-tailed p-value of a z score
func NormalTwoTailed(z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}
	return clampProbability(2 * distuv.UnitNormal.Survival(math.Abs(z)))
}

// CorrelationPValue converts a correlation over n pairs into a two-tailed
// p-value through t = r*sqrt((n-2)/(1-r^2)).
func CorrelationPValue(r float64, n int) float64 {
	if math.IsNaN(r) || n < 3 {
		// two points always lie on a line
		if n == 2 && !math.IsNaN(r) {
			return 1
		}
		return math.NaN()
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	return TTestPValue(t, df)
}

func clampProbability(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return p
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func survivalNormal(z float64) float64 {
	return distuv.UnitNormal.Survival(z)
}
