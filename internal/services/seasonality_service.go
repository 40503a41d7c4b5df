package services

import (
	"context"
	"time"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/logging"
	"github.com/soltixdb/insight/internal/models"
	"github.com/soltixdb/insight/internal/source"
)

// SeasonalityService detects recurring periodicity in one field
type SeasonalityService struct {
	logger *logging.Logger
	source source.Source
}

// NewSeasonalityService creates a new SeasonalityService
func NewSeasonalityService(logger *logging.Logger, src source.Source) *SeasonalityService {
	return &SeasonalityService{logger: logger, source: src}
}

// Analyze fetches the field's series and scans its autocorrelation for
// periodicity peaks. Lags are measured in buckets of the requested
// interval.
func (s *SeasonalityService) Analyze(ctx context.Context, collection string, req *models.ParsedTrend) ([]analysis.SeasonalPattern, error) {
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

	patterns, err := analysis.DetectSeasonality(transformed.Values())
	if err != nil {
		return nil, err
	}

	s.logger.Info("Seasonality analysis completed",
		"collection", collection,
		"field", req.Field,
		"patterns", len(patterns),
		"latency_ms", time.Since(started).Milliseconds())

	return patterns, nil
}
