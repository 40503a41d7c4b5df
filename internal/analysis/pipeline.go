package analysis

import "time"

// DetectionRequest bundles the parameters of one detection pipeline run
type DetectionRequest struct {
	// Points is the full fetched series, baseline and analysis together
	Points TimeSeriesData

	// Cutoff splits Points into baseline (before) and analysis (at or
	// after) windows
	Cutoff time.Time

	// Kind selects the per-kind preprocessing (default gauge)
	Kind MetricKind

	// Threshold selects the decision boundary method
	Threshold ThresholdSpec

	// MaxResults caps the ranked anomaly list (DefaultMaxResults if 0)
	MaxResults int
}

// DetectionResult is the outcome of one pipeline run. When the series
// was too thin to analyze, Anomalies is empty and Message carries the
// diagnostic instead of the call failing.
type DetectionResult struct {
	Baseline  *BaselineStats `json:"baseline,omitempty"`
	Threshold *Threshold     `json:"threshold,omitempty"`
	Anomalies []Anomaly      `json:"anomalies"`
	Message   string         `json:"message,omitempty"`
}

// Detect runs the full detection pipeline: validate, split, transform
// per metric kind, estimate the baseline, resolve the threshold, score
// and rank. InvalidParameter errors are returned as errors;
// InsufficientData is folded into the result's Message so callers can
// distinguish "no baseline" from "computation failed".
func Detect(req DetectionRequest) (*DetectionResult, error) {
	kind := req.Kind
	if kind == "" {
		kind = MetricKindGauge
	}

	if err := req.Threshold.Validate(kind); err != nil {
		return nil, err
	}

	window, err := SplitWindow(req.Points, req.Cutoff)
	if err != nil {
		return insufficientResult(err)
	}

	baselinePoints, err := kind.Transform(window.Baseline)
	if err != nil {
		return insufficientResult(err)
	}
	analysisPoints, err := kind.Transform(window.Analysis)
	if err != nil {
		return insufficientResult(err)
	}

	baselineValues := baselinePoints.Values()
	stats, err := EstimateBaseline(baselineValues)
	if err != nil {
		return insufficientResult(err)
	}

	threshold, err := req.Threshold.Resolve(stats, baselineValues)
	if err != nil {
		return nil, err
	}

	return &DetectionResult{
		Baseline:  stats,
		Threshold: threshold,
		Anomalies: ScoreAnomalies(analysisPoints, stats, threshold, req.MaxResults),
	}, nil
}

// insufficientResult converts an InsufficientData error into an empty
// result with a diagnostic; any other error stays an error
func insufficientResult(err error) (*DetectionResult, error) {
	if IsInsufficientData(err) {
		return &DetectionResult{
			Anomalies: []Anomaly{},
			Message:   err.Error(),
		}, nil
	}
	return nil, err
}
