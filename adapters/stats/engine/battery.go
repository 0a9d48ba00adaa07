package engine

import (
	"context"
)

// NormalityReport is the normality battery for one column
type NormalityReport struct {
	Column            string
	N                 int
	KolmogorovSmirnov NormalityResult
	ShapiroWilk       NormalityResult
	DAgostino         NormalityResult
}

// Normality runs Kolmogorov-Smirnov, Shapiro-Wilk and D'Agostino K² on one
// sample whose missing values have already been removed.
func (e *StatsEngine) Normality(column string, data []float64) (NormalityReport, error) {
	ks, err := KolmogorovSmirnov(column, data)
	if err != nil {
		return NormalityReport{}, err
	}
	sw, err := ShapiroWilk(column, data)
	if err != nil {
		return NormalityReport{}, err
	}
	k2, err := DAgostinoPearson(column, data)
	if err != nil {
		return NormalityReport{}, err
	}
	return NormalityReport{
		Column:            column,
		N:                 len(data),
		KolmogorovSmirnov: ks,
		ShapiroWilk:       sw,
		DAgostino:         k2,
	}, nil
}

// NormalityBattery runs the battery on every sample, dropping missing values
// first. Reports keep the order of samples. When several columns fail, the
// error of the first one in column order is returned.
func (e *StatsEngine) NormalityBattery(ctx context.Context, samples []Sample) ([]NormalityReport, error) {
	reports := make([]NormalityReport, len(samples))
	errs := make([]error, len(samples))

	err := e.fanOut(ctx, len(samples), func(k int) {
		s := samples[k]
		reports[k], errs[k] = e.Normality(s.Name, DropMissing(s.Values))
	})
	if err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return reports, nil
}
