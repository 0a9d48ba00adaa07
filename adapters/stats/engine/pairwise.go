package engine

import (
	"context"
	"fmt"
	"math"

	"edustat/domain/core"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Sample is a named numeric column. NaN marks a missing observation.
type Sample struct {
	Name   string
	Values []float64
}

// PairCorrelation holds the three correlation measures for an ordered column pair
type PairCorrelation struct {
	X        string
	Y        string
	Pearson  CorrelationResult
	Spearman CorrelationResult
	Kendall  CorrelationResult
}

// PairwiseComplete keeps only the rows where both x and y are present
func PairwiseComplete(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

// DropMissing returns the present observations of a column
func DropMissing(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// CorrelationMatrix correlates every ordered pair of samples, self-pairs
// included, in row-major order. Only the upper triangle is computed; (j, i)
// mirrors (i, j), so the matrix is exactly symmetric.
func (e *StatsEngine) CorrelationMatrix(ctx context.Context, samples []Sample) ([]PairCorrelation, error) {
	n := len(samples)
	type job struct{ i, j int }
	jobs := make([]job, 0, n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			jobs = append(jobs, job{i, j})
		}
	}

	upper := make([]PairCorrelation, len(jobs))
	errs := make([]error, len(jobs))
	err := e.fanOut(ctx, len(jobs), func(k int) {
		x, y := samples[jobs[k].i], samples[jobs[k].j]
		upper[k], errs[k] = correlatePair(x, y)
	})
	if err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	slot := make(map[[2]int]int, len(jobs))
	for k, jb := range jobs {
		slot[[2]int{jb.i, jb.j}] = k
	}
	out := make([]PairCorrelation, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i <= j {
				out = append(out, upper[slot[[2]int{i, j}]])
				continue
			}
			mirrored := upper[slot[[2]int{j, i}]]
			mirrored.X, mirrored.Y = samples[i].Name, samples[j].Name
			out = append(out, mirrored)
		}
	}
	return out, nil
}

func correlatePair(x, y Sample) (PairCorrelation, error) {
	xs, ys := PairwiseComplete(x.Values, y.Values)
	if len(xs) < 2 {
		return PairCorrelation{}, core.NewSampleTooSmallError("correlation", fmt.Sprintf("%s/%s", x.Name, y.Name), len(xs), 2)
	}

	pc := PairCorrelation{X: x.Name, Y: y.Name}
	var err error
	if pc.Pearson, err = Pearson(xs, ys); err != nil {
		return PairCorrelation{}, err
	}
	if pc.Spearman, err = Spearman(xs, ys); err != nil {
		return PairCorrelation{}, err
	}
	if pc.Kendall, err = Kendall(xs, ys); err != nil {
		return PairCorrelation{}, err
	}
	return pc, nil
}

// fanOut runs fn for every index in [0, count) with at most e.workers running
// at once. fn records its own outcome; fanOut only reports cancellation.
func (e *StatsEngine) fanOut(ctx context.Context, count int, fn func(int)) error {
	sem := semaphore.NewWeighted(e.workers)
	g, gctx := errgroup.WithContext(ctx)

	for k := 0; k < count; k++ {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			fn(k)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
