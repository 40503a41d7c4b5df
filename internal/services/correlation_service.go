package services

import (
	"context"
	"sync"
	"time"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/logging"
	"github.com/soltixdb/insight/internal/models"
	"github.com/soltixdb/insight/internal/source"
)

// CorrelationService finds correlated field pairs within a collection
type CorrelationService struct {
	logger         *logging.Logger
	source         source.Source
	maxConcurrency int
}

// NewCorrelationService creates a new CorrelationService
func NewCorrelationService(logger *logging.Logger, src source.Source, maxConcurrency int) *CorrelationService {
	if maxConcurrency <= 0 {
		maxConcurrency = 4
	}
	return &CorrelationService{logger: logger, source: src, maxConcurrency: maxConcurrency}
}

// Analyze fetches every requested field over the same range and
// interval concurrently, then correlates all pairs. A failed fetch
// aborts the whole call; correlating a partial set would silently
// change the answer.
func (s *CorrelationService) Analyze(ctx context.Context, collection string, req *models.ParsedCorrelation) ([]analysis.CorrelationPair, error) {
	started := time.Now()

	series := make([]analysis.NamedSeries, len(req.Fields))
	errs := make([]error, len(req.Fields))
	sem := make(chan struct{}, s.maxConcurrency)
	var wg sync.WaitGroup

	for i, field := range req.Fields {
		wg.Add(1)
		go func(i int, field string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			points, err := s.source.FetchBucketed(ctx, source.Query{
				Collection:  collection,
				Field:       field,
				Aggregation: source.AggregationAvg,
				Interval:    req.Interval,
				Start:       req.Start,
				End:         req.End,
			})
			if err != nil {
				errs[i] = err
				return
			}
			series[i] = analysis.NamedSeries{Name: field, Points: points}
		}(i, field)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	pairs, err := analysis.Correlate(series, req.Options)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Correlation analysis completed",
		"collection", collection,
		"fields", len(req.Fields),
		"pairs", len(pairs),
		"latency_ms", time.Since(started).Milliseconds())

	return pairs, nil
}
