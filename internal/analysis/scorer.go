package analysis

import (
	"sort"
	"time"
)

// DefaultMaxResults caps the ranked anomaly list when the caller does
// not supply a limit
const DefaultMaxResults = 50

// AnomalyContext is optional enrichment attached to an anomaly by an
// injected callback (dominant service/level plus sampled examples).
// It is never computed by this package.
type AnomalyContext struct {
	DominantService string   `json:"dominant_service,omitempty"`
	DominantLevel   string   `json:"dominant_level,omitempty"`
	Examples        []string `json:"examples,omitempty"`
}

// Anomaly is a single analysis-window point that crossed the threshold
type Anomaly struct {
	Time          time.Time       `json:"time"`
	Observed      float64         `json:"observed"`
	Expected      float64         `json:"expected"`
	Score         float64         `json:"score"`
	ThresholdKind ThresholdKind   `json:"threshold_kind"`
	Context       *AnomalyContext `json:"context,omitempty"`
}

// ScoreAnomalies compares each analysis-window point (post metric-kind
// transform) to the threshold and emits ranked anomalies. The score is
// the z-score against the baseline, 0 for a constant baseline. Results
// are sorted by score descending, ties broken by earlier timestamp, and
// truncated to maxResults (DefaultMaxResults when maxResults <= 0).
func ScoreAnomalies(points TimeSeriesData, stats *BaselineStats, threshold *Threshold, maxResults int) []Anomaly {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	// A constant baseline gives every point a z-score of 0, so nothing
	// can meaningfully exceed a deviation-based boundary.
	if stats.StdDev == 0 && (threshold.Kind == ThresholdZScore || threshold.Kind == ThresholdRateOfChange) {
		return []Anomaly{}
	}

	anomalies := make([]Anomaly, 0)
	for _, p := range points {
		if p.Value == nil {
			continue
		}
		v := *p.Value
		if v <= threshold.Value {
			continue
		}
		anomalies = append(anomalies, Anomaly{
			Time:          p.Time,
			Observed:      v,
			Expected:      stats.Mean,
			Score:         stats.ZScore(v),
			ThresholdKind: threshold.Kind,
		})
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		if anomalies[i].Score != anomalies[j].Score {
			return anomalies[i].Score > anomalies[j].Score
		}
		return anomalies[i].Time.Before(anomalies[j].Time)
	})

	if len(anomalies) > maxResults {
		anomalies = anomalies[:maxResults]
	}

	return anomalies
}
