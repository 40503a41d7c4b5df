package services

import (
	"context"
	"time"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/detectors"
	"github.com/soltixdb/insight/internal/logging"
	"github.com/soltixdb/insight/internal/models"
	"github.com/soltixdb/insight/internal/source"
)

// LogAnalysisService flags anomalies in log volume and in the
// frequency of specific log patterns
type LogAnalysisService struct {
	logger    *logging.Logger
	frequency *detectors.FrequencyDetector
	pattern   *detectors.PatternDetector
}

// NewLogAnalysisService creates a new LogAnalysisService
func NewLogAnalysisService(logger *logging.Logger, src source.Source) *LogAnalysisService {
	return &LogAnalysisService{
		logger:    logger,
		frequency: detectors.NewFrequencyDetector(src),
		pattern:   detectors.NewPatternDetector(src),
	}
}

// AnalyzeVolume detects spikes and drops in per-interval log counts
func (s *LogAnalysisService) AnalyzeVolume(ctx context.Context, collection string, req *models.ParsedAnalyze) (*analysis.DetectionResult, error) {
	started := time.Now()

	result, err := s.frequency.Detect(ctx, detectors.FrequencyRequest{
		Collection: collection,
		Start:      req.Start,
		End:        req.End,
		Cutoff:     req.Cutoff,
		Interval:   req.Interval,
		Threshold:  req.Threshold,
		MaxResults: req.MaxResults,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Log volume analysis completed",
		"collection", collection,
		"anomalies", len(result.Anomalies),
		"latency_ms", time.Since(started).Milliseconds())

	return result, nil
}

// AnalyzePattern detects frequency spikes of a text pattern
func (s *LogAnalysisService) AnalyzePattern(ctx context.Context, collection, pattern string, req *models.ParsedAnalyze) (*analysis.DetectionResult, error) {
	started := time.Now()

	result, err := s.pattern.Detect(ctx, detectors.PatternRequest{
		Collection: collection,
		Pattern:    pattern,
		Start:      req.Start,
		End:        req.End,
		Cutoff:     req.Cutoff,
		Interval:   req.Interval,
		Threshold:  req.Threshold,
		MaxResults: req.MaxResults,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Log pattern analysis completed",
		"collection", collection,
		"pattern", pattern,
		"anomalies", len(result.Anomalies),
		"latency_ms", time.Since(started).Milliseconds())

	return result, nil
}
