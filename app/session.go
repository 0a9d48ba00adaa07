package app

import (
	"context"
	"sync"

	"edustat/domain/core"
	"edustat/domain/dataset"
	"edustat/domain/stats"
	"edustat/ports"
)

// Session holds one loaded dataset and runs tests against it. Calling a test
// before anything is loaded fails with core.ErrNoData.
type Session struct {
	mu       sync.RWMutex
	data     *dataset.Dataset
	source   string
	service  *AnalysisService
	reader   ports.DatasetReader
	renderer ports.ReportRenderer
}

// NewSession creates an empty session
func NewSession(service *AnalysisService, reader ports.DatasetReader, renderer ports.ReportRenderer) *Session {
	return &Session{service: service, reader: reader, renderer: renderer}
}

// Load reads a file and makes it the session's dataset. On failure the
// previously loaded dataset is kept.
func (s *Session) Load(ctx context.Context, path string) error {
	ds, err := s.reader.Read(ctx, path)
	if err != nil {
		return err
	}
	s.set(ds, path)
	return nil
}

// LoadColumns makes an in-memory table the session's dataset
func (s *Session) LoadColumns(columns []dataset.ColumnData) error {
	ds, err := dataset.FromColumns(columns)
	if err != nil {
		return err
	}
	s.set(ds, "memory")
	return nil
}

func (s *Session) set(ds *dataset.Dataset, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = ds
	s.source = source
	s.service.logger.Info("[Session] loaded %s (%d columns, %d rows)", source, len(ds.Names()), ds.Len())
}

// Dataset returns the loaded dataset, or core.ErrNoData
func (s *Session) Dataset() (*dataset.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, core.NewNoDataError()
	}
	return s.data, nil
}

// Source names where the loaded dataset came from
func (s *Session) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// IndependentTTest runs the independent samples t-test on the loaded dataset
func (s *Session) IndependentTTest(ind, dep string) (*stats.IndependentTTest, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return s.service.IndependentTTest(ds, ind, dep)
}

// MannWhitneyU runs the Mann-Whitney U test on the loaded dataset
func (s *Session) MannWhitneyU(ind, dep string) (*stats.MannWhitneyU, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return s.service.MannWhitneyU(ds, ind, dep)
}

// Correlation runs the correlation matrix on the loaded dataset
func (s *Session) Correlation(ctx context.Context) (*stats.Correlation, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return s.service.Correlation(ctx, ds)
}

// Normality runs the normality battery on the loaded dataset
func (s *Session) Normality(ctx context.Context) (*stats.Normality, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return s.service.Normality(ctx, ds)
}

// Report renders a result into destination and returns the written path
func (s *Session) Report(r stats.Result, destination string) (string, error) {
	return s.renderer.Render(r, destination)
}
