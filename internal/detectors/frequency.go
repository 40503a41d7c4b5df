// Package detectors feeds derived log series through the anomaly
// detection pipeline. Nothing here adds algorithms; both detectors are
// thin adapters over a count-series fetch plus the shared pipeline.
package detectors

import (
	"context"
	"time"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/source"
)

// FrequencyDetector flags spikes and drops in per-interval log volume
type FrequencyDetector struct {
	source source.Source
}

// NewFrequencyDetector creates a log-volume detector over a series source
func NewFrequencyDetector(src source.Source) *FrequencyDetector {
	return &FrequencyDetector{source: src}
}

// FrequencyRequest describes one log-volume detection run
type FrequencyRequest struct {
	Collection string
	Start      time.Time
	End        time.Time
	Cutoff     time.Time
	Interval   time.Duration
	Threshold  analysis.ThresholdSpec
	MaxResults int
}

// Detect fetches the per-interval log count series and runs detection
// on it. Volume behaves like a gauge: drops matter as much as spikes,
// so percentile and mad thresholds work on it directly.
func (d *FrequencyDetector) Detect(ctx context.Context, req FrequencyRequest) (*analysis.DetectionResult, error) {
	points, err := d.source.FetchBucketed(ctx, source.Query{
		Collection:  req.Collection,
		Aggregation: source.AggregationCount,
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
