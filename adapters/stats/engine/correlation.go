package engine

import (
	"fmt"
	"math"

	"edustat/domain/core"

	"gonum.org/v1/gonum/stat"
)

// CorrelationResult is a correlation coefficient with its two-tailed p-value
type CorrelationResult struct {
	R float64
	P float64
	N int
}

// kendallExactMaxN is the largest tie-free sample for which Kendall's p-value
// is computed from the exact permutation distribution.
const kendallExactMaxN = 33

func checkPairs(test string, x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%s: samples have different lengths (%d vs %d)", test, len(x), len(y))
	}
	if len(x) < 2 {
		return core.NewSampleTooSmallError(test, "sample", len(x), 2)
	}
	return nil
}

// Pearson computes the product-moment correlation and its t-based p-value
func Pearson(x, y []float64) (CorrelationResult, error) {
	if err := checkPairs("Pearson", x, y); err != nil {
		return CorrelationResult{}, err
	}
	r := clampCorrelation(stat.Correlation(x, y, nil))
	return CorrelationResult{R: r, P: CorrelationPValue(r, len(x)), N: len(x)}, nil
}

// Spearman computes the rank correlation using tie-averaged ranks
func Spearman(x, y []float64) (CorrelationResult, error) {
	if err := checkPairs("Spearman", x, y); err != nil {
		return CorrelationResult{}, err
	}
	rho := clampCorrelation(stat.Correlation(Ranks(x), Ranks(y), nil))
	return CorrelationResult{R: rho, P: CorrelationPValue(rho, len(x)), N: len(x)}, nil
}

// Kendall computes tau-b, which adjusts for ties in either variable. The p-value
// is exact for small tie-free samples and uses the tie-corrected normal
// approximation otherwise.
func Kendall(x, y []float64) (CorrelationResult, error) {
	if err := checkPairs("Kendall", x, y); err != nil {
		return CorrelationResult{}, err
	}

	n := len(x)
	var concordant, discordant, xTies, yTies int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := sign(x[i] - x[j])
			dy := sign(y[i] - y[j])
			switch {
			case dx == 0 && dy == 0:
				xTies++
				yTies++
			case dx == 0:
				xTies++
			case dy == 0:
				yTies++
			case dx == dy:
				concordant++
			default:
				discordant++
			}
		}
	}

	total := n * (n - 1) / 2
	diff := float64(concordant - discordant)
	tau := diff / math.Sqrt(float64(total-xTies)) / math.Sqrt(float64(total-yTies))
	if math.IsNaN(tau) || math.IsInf(tau, 0) {
		return CorrelationResult{R: math.NaN(), P: math.NaN(), N: n}, nil
	}
	tau = clampCorrelation(tau)

	var p float64
	c := discordant
	if total-discordant < c {
		c = total - discordant
	}
	if xTies == 0 && yTies == 0 && (n <= kendallExactMaxN || c <= 1) {
		p = kendallExactPValue(n, c)
	} else {
		p = kendallAsymptoticPValue(n, diff, tieGroups(x), tieGroups(y))
	}

	return CorrelationResult{R: tau, P: p, N: n}, nil
}

// kendallExactPValue returns 2*P(inversions <= c) over the permutations of n
// items, counting permutations by inversions (Mahonian numbers).
func kendallExactPValue(n, c int) float64 {
	counts := make([]float64, c+1)
	counts[0] = 1
	for size := 2; size <= n; size++ {
		next := make([]float64, c+1)
		running := 0.0
		for k := 0; k <= c; k++ {
			running += counts[k]
			if k-size >= 0 {
				running -= counts[k-size]
			}
			next[k] = running
		}
		counts = next
	}

	sum := 0.0
	for _, v := range counts {
		sum += v
	}
	lgammaN, _ := math.Lgamma(float64(n) + 1)
	return clampProbability(2 * math.Exp(math.Log(sum)-lgammaN))
}

func kendallAsymptoticPValue(n int, diff float64, xGroups, yGroups []int) float64 {
	size := float64(n)
	xTie, x0, x1 := tieTerms(xGroups)
	yTie, y0, y1 := tieTerms(yGroups)

	m := size * (size - 1)
	v := (m*(2*size+5)-x1-y1)/18 + (2*xTie*yTie)/m
	if n > 2 {
		v += x0 * y0 / (9 * m * (size - 2))
	}
	if v <= 0 {
		return math.NaN()
	}
	return NormalTwoTailed(diff / math.Sqrt(v))
}

func tieTerms(groups []int) (pairs, t0, t1 float64) {
	for _, g := range groups {
		t := float64(g)
		pairs += t * (t - 1) / 2
		t0 += t * (t - 1) * (t - 2)
		t1 += t * (t - 1) * (2*t + 5)
	}
	return pairs, t0, t1
}

func clampCorrelation(r float64) float64 {
	switch {
	case math.IsNaN(r):
		return r
	case r > 1:
		return 1
	case r < -1:
		return -1
	}
	return r
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
