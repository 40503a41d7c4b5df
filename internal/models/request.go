package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/soltixdb/insight/internal/analysis"
)

// DefaultInterval is used when a request omits the bucket interval
const DefaultInterval = time.Minute

// ThresholdRequest selects the decision boundary for a detection run
type ThresholdRequest struct {
	Kind  string   `json:"kind"`            // zscore (default), percentile, mad, fixed, rate_of_change
	Value *float64 `json:"value,omitempty"` // Sensitivity parameter, meaning depends on kind
}

// AnalyzeRequest represents an anomaly detection request for one
// collection. An empty Field means every registered numeric field.
type AnalyzeRequest struct {
	Field      string           `json:"field,omitempty"`
	MetricKind string           `json:"metric_kind,omitempty"` // gauge (default), counter, histogram
	Threshold  ThresholdRequest `json:"threshold"`
	Start      string           `json:"start"`
	End        string           `json:"end"`
	Cutoff     string           `json:"cutoff,omitempty"` // Defaults to the midpoint of [start, end)
	Interval   string           `json:"interval,omitempty"`
	MaxResults int              `json:"max_results,omitempty"`
}

// ParsedAnalyze is the validated form of AnalyzeRequest
type ParsedAnalyze struct {
	Field      string
	Kind       analysis.MetricKind
	Threshold  analysis.ThresholdSpec
	Start      time.Time
	End        time.Time
	Cutoff     time.Time
	Interval   time.Duration
	MaxResults int
}

// Parse validates the request and resolves defaults
func (r *AnalyzeRequest) Parse() (*ParsedAnalyze, error) {
	start, end, err := parseTimeRange(r.Start, r.End)
	if err != nil {
		return nil, err
	}

	cutoff, err := parseCutoff(r.Cutoff, start, end)
	if err != nil {
		return nil, err
	}

	interval, err := parseInterval(r.Interval)
	if err != nil {
		return nil, err
	}

	kind, err := analysis.ParseMetricKind(r.MetricKind)
	if err != nil {
		return nil, err
	}

	spec := analysis.ThresholdSpec{
		Kind:  analysis.ThresholdKind(r.thresholdKind()),
		Value: r.Threshold.Value,
	}
	if err := spec.Validate(kind); err != nil {
		return nil, err
	}

	if r.MaxResults < 0 {
		return nil, analysis.NewInvalidParameter("max_results must not be negative")
	}

	return &ParsedAnalyze{
		Field:      r.Field,
		Kind:       kind,
		Threshold:  spec,
		Start:      start,
		End:        end,
		Cutoff:     cutoff,
		Interval:   interval,
		MaxResults: r.MaxResults,
	}, nil
}

// thresholdKind returns the threshold kind with the zscore default applied
func (r *AnalyzeRequest) thresholdKind() string {
	if r.Threshold.Kind == "" {
		return string(analysis.ThresholdZScore)
	}
	return r.Threshold.Kind
}

// TrendRequest represents a trend analysis request for one field
type TrendRequest struct {
	Field      string `json:"field"`
	MetricKind string `json:"metric_kind,omitempty"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Interval   string `json:"interval,omitempty"`
}

// ParsedTrend is the validated form of TrendRequest
type ParsedTrend struct {
	Field    string
	Kind     analysis.MetricKind
	Start    time.Time
	End      time.Time
	Interval time.Duration
}

// Parse validates the request and resolves defaults
func (r *TrendRequest) Parse() (*ParsedTrend, error) {
	if strings.TrimSpace(r.Field) == "" {
		return nil, analysis.NewInvalidParameter("field is required")
	}

	start, end, err := parseTimeRange(r.Start, r.End)
	if err != nil {
		return nil, err
	}

	interval, err := parseInterval(r.Interval)
	if err != nil {
		return nil, err
	}

	kind, err := analysis.ParseMetricKind(r.MetricKind)
	if err != nil {
		return nil, err
	}

	return &ParsedTrend{
		Field:    r.Field,
		Kind:     kind,
		Start:    start,
		End:      end,
		Interval: interval,
	}, nil
}

// SeasonalityRequest represents a seasonality detection request
type SeasonalityRequest struct {
	Field      string `json:"field"`
	MetricKind string `json:"metric_kind,omitempty"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Interval   string `json:"interval,omitempty"`
}

// Parse validates the request; seasonality shares the trend shape
func (r *SeasonalityRequest) Parse() (*ParsedTrend, error) {
	trend := TrendRequest{
		Field:      r.Field,
		MetricKind: r.MetricKind,
		Start:      r.Start,
		End:        r.End,
		Interval:   r.Interval,
	}
	return trend.Parse()
}

// CorrelationRequest represents a cross-field correlation request
type CorrelationRequest struct {
	Fields                  []string `json:"fields"`
	Start                   string   `json:"start"`
	End                     string   `json:"end"`
	Interval                string   `json:"interval,omitempty"`
	MinCorrelation          *float64 `json:"min_correlation,omitempty"`
	IncludeAntiCorrelations bool     `json:"include_anti_correlations,omitempty"`
}

// ParsedCorrelation is the validated form of CorrelationRequest
type ParsedCorrelation struct {
	Fields   []string
	Start    time.Time
	End      time.Time
	Interval time.Duration
	Options  analysis.CorrelationOptions
}

// Parse validates the request and resolves defaults
func (r *CorrelationRequest) Parse() (*ParsedCorrelation, error) {
	if len(r.Fields) < 2 {
		return nil, analysis.NewInvalidParameter("correlation requires at least 2 fields")
	}
	seen := make(map[string]bool, len(r.Fields))
	for _, field := range r.Fields {
		if strings.TrimSpace(field) == "" {
			return nil, analysis.NewInvalidParameter("fields must not contain empty names")
		}
		if seen[field] {
			return nil, analysis.NewInvalidParameter(fmt.Sprintf("duplicate field: %s", field))
		}
		seen[field] = true
	}

	start, end, err := parseTimeRange(r.Start, r.End)
	if err != nil {
		return nil, err
	}

	interval, err := parseInterval(r.Interval)
	if err != nil {
		return nil, err
	}

	if r.MinCorrelation != nil {
		if *r.MinCorrelation < 0 || *r.MinCorrelation > 1 {
			return nil, analysis.NewInvalidParameter("min_correlation must be in [0, 1]")
		}
	}

	return &ParsedCorrelation{
		Fields:   r.Fields,
		Start:    start,
		End:      end,
		Interval: interval,
		Options: analysis.CorrelationOptions{
			MinCorrelation:          r.MinCorrelation,
			IncludeAntiCorrelations: r.IncludeAntiCorrelations,
		},
	}, nil
}

// LogVolumeRequest represents a log-volume anomaly detection request
type LogVolumeRequest struct {
	Threshold  ThresholdRequest `json:"threshold"`
	Start      string           `json:"start"`
	End        string           `json:"end"`
	Cutoff     string           `json:"cutoff,omitempty"`
	Interval   string           `json:"interval,omitempty"`
	MaxResults int              `json:"max_results,omitempty"`
}

// Parse validates the request; log volume is a gauge-shaped series
func (r *LogVolumeRequest) Parse() (*ParsedAnalyze, error) {
	analyze := AnalyzeRequest{
		Threshold:  r.Threshold,
		Start:      r.Start,
		End:        r.End,
		Cutoff:     r.Cutoff,
		Interval:   r.Interval,
		MaxResults: r.MaxResults,
	}
	return analyze.Parse()
}

// LogPatternRequest represents a pattern-frequency detection request
type LogPatternRequest struct {
	Pattern    string           `json:"pattern"`
	Threshold  ThresholdRequest `json:"threshold"`
	Start      string           `json:"start"`
	End        string           `json:"end"`
	Cutoff     string           `json:"cutoff,omitempty"`
	Interval   string           `json:"interval,omitempty"`
	MaxResults int              `json:"max_results,omitempty"`
}

// Parse validates the request including the pattern
func (r *LogPatternRequest) Parse() (*ParsedAnalyze, error) {
	if strings.TrimSpace(r.Pattern) == "" {
		return nil, analysis.NewInvalidParameter("pattern is required")
	}

	analyze := AnalyzeRequest{
		Threshold:  r.Threshold,
		Start:      r.Start,
		End:        r.End,
		Cutoff:     r.Cutoff,
		Interval:   r.Interval,
		MaxResults: r.MaxResults,
	}
	return analyze.Parse()
}

// parseTimeRange parses RFC3339 start/end and checks ordering
func parseTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, analysis.NewInvalidParameter("start and end are required")
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, analysis.NewInvalidParameter(fmt.Sprintf("invalid start time: %s", startStr))
	}

	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, analysis.NewInvalidParameter(fmt.Sprintf("invalid end time: %s", endStr))
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, analysis.NewInvalidParameter("end must be after start")
	}

	return start, end, nil
}

// parseCutoff parses the baseline/analysis split instant. An empty
// cutoff defaults to the midpoint of the range.
func parseCutoff(cutoffStr string, start, end time.Time) (time.Time, error) {
	if cutoffStr == "" {
		return start.Add(end.Sub(start) / 2), nil
	}

	cutoff, err := time.Parse(time.RFC3339, cutoffStr)
	if err != nil {
		return time.Time{}, analysis.NewInvalidParameter(fmt.Sprintf("invalid cutoff time: %s", cutoffStr))
	}

	if !cutoff.After(start) || !cutoff.Before(end) {
		return time.Time{}, analysis.NewInvalidParameter("cutoff must fall inside (start, end)")
	}

	return cutoff, nil
}

// parseInterval parses bucket intervals like 30s, 5m, 1h, 2d
func parseInterval(s string) (time.Duration, error) {
	if s == "" {
		return DefaultInterval, nil
	}

	// time.ParseDuration has no day unit
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days <= 0 {
			return 0, analysis.NewInvalidParameter(fmt.Sprintf("invalid interval: %s", s))
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	interval, err := time.ParseDuration(s)
	if err != nil || interval <= 0 {
		return 0, analysis.NewInvalidParameter(fmt.Sprintf("invalid interval: %s", s))
	}
	return interval, nil
}
