package app

import (
	"context"
	"time"

	"edustat/adapters/stats/engine"
	"edustat/domain/core"
	"edustat/domain/dataset"
	"edustat/domain/stats"
	"edustat/internal"
)

// ReportDecimals is the precision of every number in an independent t-test result
const ReportDecimals = 3

// AnalysisService dispatches the statistical tests over a dataset and shapes
// the engine output into result records.
type AnalysisService struct {
	engine *engine.StatsEngine
	logger *internal.Logger
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(e *engine.StatsEngine, logger *internal.Logger) *AnalysisService {
	if e == nil {
		e = engine.NewStatsEngine()
	}
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &AnalysisService{engine: e, logger: logger}
}

// IndependentTTest compares the dependent column across the two groups of the
// independent column with the pooled t-test, Levene's test and Welch's test.
// Every number is rounded to ReportDecimals.
func (s *AnalysisService) IndependentTTest(ds *dataset.Dataset, ind, dep string) (*stats.IndependentTTest, error) {
	g1, g2, err := dataset.TwoGroups(ds, ind, dep)
	if err != nil {
		return nil, err
	}

	cmp, err := s.engine.CompareMeans(g1.Values, g2.Values)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("[AnalysisService] indt %s by %s: %s n=%d, %s n=%d", dep, ind, g1.Label, g1.N(), g2.Label, g2.N())

	return &stats.IndependentTTest{
		IndVariable: ind,
		DepVariable: dep,
		GroupStats: stats.GroupStatsList{
			{Group: g1.Label, Stats: sampleStats(cmp.Group1.Rounded(ReportDecimals))},
			{Group: g2.Label, Stats: sampleStats(cmp.Group2.Rounded(ReportDecimals))},
		},
		TTest: stats.TTest{
			T:            rounded(cmp.Student.T),
			DF:           engine.PooledDF(g1.Values, g2.Values),
			SigTwoTailed: rounded(cmp.Student.P),
		},
		LeveneTest: stats.LeveneTest{
			F:            rounded(cmp.Levene.F),
			SigTwoTailed: rounded(cmp.Levene.P),
		},
		WelchTest: stats.WelchTest{
			T:            rounded(cmp.Welch.T),
			SigTwoTailed: rounded(cmp.Welch.P),
		},
	}, nil
}

// MannWhitneyU compares the two groups with the rank-sum test. Numbers are
// reported unrounded and df is the pooled n1+n2-2.
func (s *AnalysisService) MannWhitneyU(ds *dataset.Dataset, ind, dep string) (*stats.MannWhitneyU, error) {
	g1, g2, err := dataset.TwoGroups(ds, ind, dep)
	if err != nil {
		return nil, err
	}

	cmp, err := s.engine.CompareRanks(g1.Values, g2.Values)
	if err != nil {
		return nil, err
	}

	return &stats.MannWhitneyU{
		IndVariable: ind,
		DepVariable: dep,
		GroupStats: stats.GroupStatsList{
			{Group: g1.Label, Stats: sampleStats(cmp.Group1)},
			{Group: g2.Label, Stats: sampleStats(cmp.Group2)},
		},
		MannWhitneyUTest: stats.MannWhitneyUTest{
			U:            stats.Float(cmp.MannWhitney.U),
			DF:           engine.PooledDF(g1.Values, g2.Values),
			SigTwoTailed: stats.Float(cmp.MannWhitney.P),
		},
	}, nil
}

// Correlation computes Pearson, Spearman and Kendall for every ordered pair of
// numeric columns, self-pairs included. Rows missing either value are dropped
// per pair.
func (s *AnalysisService) Correlation(ctx context.Context, ds *dataset.Dataset) (*stats.Correlation, error) {
	samples, err := numericSamples(ds)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	pairs, err := s.engine.CorrelationMatrix(ctx, samples)
	if err != nil {
		return nil, err
	}

	out := &stats.Correlation{
		Pearsons:  make(map[string]stats.Coefficient, len(pairs)),
		Spearmans: make(map[string]stats.Coefficient, len(pairs)),
		Kendalls:  make(map[string]stats.Coefficient, len(pairs)),
	}
	for _, p := range pairs {
		key := core.PairKey(p.X, p.Y)
		out.Pearsons[key] = coefficient(p.Pearson)
		out.Spearmans[key] = coefficient(p.Spearman)
		out.Kendalls[key] = coefficient(p.Kendall)
	}

	s.logger.Info("[AnalysisService] correlation over %d columns (%d pairs) in %v", len(samples), len(pairs), time.Since(start))
	return out, nil
}

// Normality runs Kolmogorov-Smirnov, Shapiro-Wilk and D'Agostino K² on every
// numeric column with its missing values dropped.
func (s *AnalysisService) Normality(ctx context.Context, ds *dataset.Dataset) (*stats.Normality, error) {
	samples, err := numericSamples(ds)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	reports, err := s.engine.NormalityBattery(ctx, samples)
	if err != nil {
		return nil, err
	}

	out := &stats.Normality{
		KolmogorovSmirnov: make(map[string]stats.NormalityStat, len(reports)),
		ShapiroWilk:       make(map[string]stats.NormalityStat, len(reports)),
		DAgostino:         make(map[string]stats.NormalityStat, len(reports)),
	}
	for _, r := range reports {
		out.KolmogorovSmirnov[r.Column] = normalityStat(r.KolmogorovSmirnov)
		out.ShapiroWilk[r.Column] = normalityStat(r.ShapiroWilk)
		out.DAgostino[r.Column] = normalityStat(r.DAgostino)
	}

	s.logger.Info("[AnalysisService] normality over %d columns in %v", len(samples), time.Since(start))
	return out, nil
}

// numericSamples converts the numeric columns of a dataset to engine samples
func numericSamples(ds *dataset.Dataset) ([]engine.Sample, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	columns := ds.NumericColumns()
	if len(columns) == 0 {
		return nil, core.NewNoNumericColumnsError(ds.Names())
	}

	samples := make([]engine.Sample, len(columns))
	for i, c := range columns {
		values, err := c.Floats()
		if err != nil {
			return nil, err
		}
		samples[i] = engine.Sample{Name: c.Name, Values: values}
	}
	return samples, nil
}

func sampleStats(s engine.Summary) stats.SampleStats {
	return stats.SampleStats{
		N:      s.N,
		Mean:   stats.Float(s.Mean),
		StdDev: stats.Float(s.StdDev),
		StdErr: stats.Float(s.StdErr),
	}
}

func rounded(x float64) stats.Float {
	return stats.Float(engine.Round(x, ReportDecimals))
}

func coefficient(r engine.CorrelationResult) stats.Coefficient {
	return stats.Coefficient{Correlation: stats.Float(r.R), P: stats.Float(r.P)}
}

func normalityStat(r engine.NormalityResult) stats.NormalityStat {
	return stats.NormalityStat{Normality: stats.Float(r.Statistic), P: stats.Float(r.P)}
}
