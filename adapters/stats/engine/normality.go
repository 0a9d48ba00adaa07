package engine

import (
	"math"
	"sort"

	"edustat/domain/core"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Minimum sample sizes for the normality battery
const (
	MinShapiroWilk = 3
	MinDAgostino   = 8
	MinKolmogorov  = 1
)

// NormalityResult is a normality statistic with its p-value
type NormalityResult struct {
	Statistic float64
	P         float64
}

// KolmogorovSmirnov tests the sample against the standard normal distribution
// N(0, 1). The statistic is D = sup|F_n(x) - Φ(x)|.
func KolmogorovSmirnov(column string, data []float64) (NormalityResult, error) {
	n := len(data)
	if n < MinKolmogorov {
		return NormalityResult{}, core.NewSampleTooSmallError("Kolmogorov-Smirnov", column, n, MinKolmogorov)
	}

	sorted := sortedCopy(data)
	nf := float64(n)
	d := 0.0
	for i, x := range sorted {
		cdf := distuv.UnitNormal.CDF(x)
		dPlus := float64(i+1)/nf - cdf
		dMinus := cdf - float64(i)/nf
		d = math.Max(d, math.Max(dPlus, dMinus))
	}

	return NormalityResult{Statistic: d, P: kolmogorovPValue(n, d)}, nil
}

// ShapiroWilk computes W with Royston's (1995) approximation of the coefficients
// and of the p-value.
func ShapiroWilk(column string, data []float64) (NormalityResult, error) {
	n := len(data)
	if n < MinShapiroWilk {
		return NormalityResult{}, core.NewSampleTooSmallError("Shapiro-Wilk", column, n, MinShapiroWilk)
	}

	sorted := sortedCopy(data)
	if sorted[n-1]-sorted[0] < 1e-19 {
		return NormalityResult{}, core.NewDegenerateSampleError("Shapiro-Wilk", column, "all values are identical")
	}

	a := shapiroWilkCoefficients(n)

	mean := stat.Mean(sorted, nil)
	ssq := sumSquares(sorted, mean)
	num := 0.0
	for i := 0; i < n/2; i++ {
		num += a[i] * (sorted[n-1-i] - sorted[i])
	}
	w := num * num / ssq
	if w > 1 {
		w = 1
	}

	return NormalityResult{Statistic: w, P: shapiroWilkPValue(w, n)}, nil
}

// shapiroWilkCoefficients returns the positive half of the antisymmetric
// coefficient vector, largest first.
func shapiroWilkCoefficients(n int) []float64 {
	half := n / 2
	a := make([]float64, half)
	if n == 3 {
		a[0] = math.Sqrt(0.5)
		return a
	}

	c1 := []float64{0, 0.221157, -0.147981, -2.07119, 4.434685, -2.706056}
	c2 := []float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}

	an := float64(n)
	m := make([]float64, half)
	summ2 := 0.0
	for i := 0; i < half; i++ {
		m[i] = -distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (an + 0.25))
		summ2 += m[i] * m[i]
	}
	summ2 *= 2
	ssumm2 := math.Sqrt(summ2)
	rsn := 1 / math.Sqrt(an)

	a1 := poly(c1, rsn) + m[0]/ssumm2
	a[0] = a1

	first := 1
	var fac float64
	if n > 5 {
		first = 2
		a2 := m[1]/ssumm2 + poly(c2, rsn)
		a[1] = a2
		fac = math.Sqrt((summ2 - 2*m[0]*m[0] - 2*m[1]*m[1]) / (1 - 2*a1*a1 - 2*a2*a2))
	} else {
		fac = math.Sqrt((summ2 - 2*m[0]*m[0]) / (1 - 2*a1*a1))
	}
	for i := first; i < half; i++ {
		a[i] = m[i] / fac
	}
	return a
}

func shapiroWilkPValue(w float64, n int) float64 {
	if n == 3 {
		const sixOverPi = 6 / math.Pi
		p := sixOverPi * (math.Asin(math.Sqrt(w)) - math.Pi/3)
		return clampProbability(p)
	}

	w1 := 1 - w
	if w1 <= 0 {
		return 1
	}
	y := math.Log(w1)
	an := float64(n)

	var mu, sigma float64
	if n <= 11 {
		gamma := poly([]float64{-2.273, 0.459}, an)
		if y >= gamma {
			return 1e-99
		}
		y = -math.Log(gamma - y)
		mu = poly([]float64{0.544, -0.39978, 0.025054, -6.714e-4}, an)
		sigma = math.Exp(poly([]float64{1.3822, -0.77857, 0.062767, -0.0020322}, an))
	} else {
		xx := math.Log(an)
		mu = poly([]float64{-1.5861, -0.31082, -0.083751, 0.0038915}, xx)
		sigma = math.Exp(poly([]float64{-0.4803, -0.082676, 0.0030302}, xx))
	}

	return clampProbability(distuv.Normal{Mu: mu, Sigma: sigma}.Survival(y))
}

// DAgostinoPearson computes the K² omnibus statistic from the skewness and
// kurtosis z-scores; p comes from χ² with 2 degrees of freedom.
func DAgostinoPearson(column string, data []float64) (NormalityResult, error) {
	n := len(data)
	if n < MinDAgostino {
		return NormalityResult{}, core.NewSampleTooSmallError("D'Agostino K²", column, n, MinDAgostino)
	}

	mean := stat.Mean(data, nil)
	var m2, m3, m4 float64
	for _, x := range data {
		d := x - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	nf := float64(n)
	m2 /= nf
	m3 /= nf
	m4 /= nf
	if m2 == 0 {
		return NormalityResult{}, core.NewDegenerateSampleError("D'Agostino K²", column, "zero variance")
	}

	z1 := skewnessZ(m3/math.Pow(m2, 1.5), nf)
	z2 := kurtosisZ(m4/(m2*m2), nf)
	k2 := z1*z1 + z2*z2

	return NormalityResult{Statistic: k2, P: ChiSquarePValue(k2, 2)}, nil
}

// skewnessZ transforms the biased sample skewness b1 into a standard normal score
func skewnessZ(b1, n float64) float64 {
	y := b1 * math.Sqrt((n+1)*(n+3)/(6*(n-2)))
	beta2 := 3 * (n*n + 27*n - 70) * (n + 1) * (n + 3) / ((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	delta := 1 / math.Sqrt(0.5*math.Log(w2))
	alpha := math.Sqrt(2 / (w2 - 1))
	if y == 0 {
		y = 1
	}
	ya := y / alpha
	return delta * math.Log(ya+math.Sqrt(ya*ya+1))
}

// kurtosisZ transforms the biased sample kurtosis b2 (normal = 3) into a
// standard normal score (Anscombe & Glynn).
func kurtosisZ(b2, n float64) float64 {
	e := 3 * (n - 1) / (n + 1)
	varB2 := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	x := (b2 - e) / math.Sqrt(varB2)
	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) * math.Sqrt(6*(n+3)*(n+5)/(n*(n-2)*(n-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))
	term1 := 1 - 2/(9*a)
	denom := 1 + x*math.Sqrt(2/(a-4))
	if denom == 0 {
		return math.NaN()
	}
	term2 := math.Copysign(math.Cbrt((1-2/a)/math.Abs(denom)), denom)
	return (term1 - term2) / math.Sqrt(2/(9*a))
}

// poly evaluates c[0] + c[1]*x + c[2]*x^2 + ...
func poly(c []float64, x float64) float64 {
	result := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		result = result*x + c[i]
	}
	return result
}

func sortedCopy(data []float64) []float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	return sorted
}
