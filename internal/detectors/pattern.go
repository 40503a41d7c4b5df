package detectors

import (
	"context"
	"strings"
	"time"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/source"
)

// PatternDetector flags frequency spikes of a text pattern in logs
type PatternDetector struct {
	source source.Source
}

// NewPatternDetector creates a pattern-frequency detector over a series source
func NewPatternDetector(src source.Source) *PatternDetector {
	return &PatternDetector{source: src}
}

// PatternRequest describes one pattern-frequency detection run
type PatternRequest struct {
	Collection string
	Pattern    string
	Start      time.Time
	End        time.Time
	Cutoff     time.Time
	Interval   time.Duration
	Threshold  analysis.ThresholdSpec
	MaxResults int
}

// Detect fetches the per-interval count of log entries matching the
// pattern and runs detection on it. Matching happens in the backend;
// the detector only validates the pattern is non-empty.
func (d *PatternDetector) Detect(ctx context.Context, req PatternRequest) (*analysis.DetectionResult, error) {
	if strings.TrimSpace(req.Pattern) == "" {
		return nil, analysis.NewInvalidParameter("pattern must not be empty")
	}

	points, err := d.source.FetchBucketed(ctx, source.Query{
		Collection:  req.Collection,
		Aggregation: source.AggregationCount,
		Pattern:     req.Pattern,
		Interval:    req.Interval,
		Start:       req.Start,
		End:         req.End,
	})
	if err != nil {
		return nil, err
	}

	return analysis.Detect(analysis.DetectionRequest{
		Points:     points,
		Cutoff:     req.Cutoff,
		Kind:       analysis.MetricKindGauge,
		Threshold:  req.Threshold,
		MaxResults: req.MaxResults,
	})
}
