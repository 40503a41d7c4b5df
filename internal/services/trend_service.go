package services

import (
	"context"
	"time"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/logging"
	"github.com/soltixdb/insight/internal/models"
	"github.com/soltixdb/insight/internal/source"
)

// TrendService characterizes the direction and strength of one field
// over a time range
type TrendService struct {
	logger *logging.Logger
	source source.Source
}

// NewTrendService creates a new TrendService
func NewTrendService(logger *logging.Logger, src source.Source) *TrendService {
	return &TrendService{logger: logger, source: src}
}

// Analyze fetches the field's series and fits a least-squares line
// over it. Counters are analyzed on their rate series.
func (s *TrendService) Analyze(ctx context.Context, collection string, req *models.ParsedTrend) (*analysis.TrendResult, error) {
	started := time.Now()

	points, err := s.source.FetchBucketed(ctx, source.Query{
		Collection:  collection,
		Field:       req.Field,
		Aggregation: aggregationFor(req.Kind),
		Interval:    req.Interval,
		Start:       req.Start,
		End:         req.End,
	})
	if err != nil {
		return nil, err
	}

	transformed, err := req.Kind.Transform(points)
	if err != nil {
		return nil, err
	}

	result, err := analysis.AnalyzeTrend(transformed.Values())
	if err != nil {
		return nil, err
	}

	s.logger.Info("Trend analysis completed",
		"collection", collection,
		"field", req.Field,
		"direction", result.Direction,
		"r_squared", result.RSquared,
		"latency_ms", time.Since(started).Milliseconds())

	return result, nil
}
