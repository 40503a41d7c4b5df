package models

import (
	"time"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/utils"
)

// HealthResponse represents health check response
type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Version    string            `json:"version"`
	Components map[string]string `json:"components,omitempty"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PercentilesView is the rounded wire form of baseline percentiles
type PercentilesView struct {
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

// BaselineView is the rounded wire form of baseline statistics
type BaselineView struct {
	Mean        float64         `json:"mean"`
	StdDev      float64         `json:"std_dev"`
	MAD         float64         `json:"mad"`
	Percentiles PercentilesView `json:"percentiles"`
	Count       int             `json:"count"`
}

// ThresholdView is the rounded wire form of a resolved threshold
type ThresholdView struct {
	Kind        string  `json:"kind"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

// AnomalyContextView carries optional enrichment for one anomaly
type AnomalyContextView struct {
	DominantService string   `json:"dominant_service,omitempty"`
	DominantLevel   string   `json:"dominant_level,omitempty"`
	Examples        []string `json:"examples,omitempty"`
}

// AnomalyView is the rounded wire form of one anomaly
type AnomalyView struct {
	Time          string              `json:"time"`
	Observed      float64             `json:"observed"`
	Expected      float64             `json:"expected"`
	Score         float64             `json:"score"`
	ThresholdKind string              `json:"threshold_kind"`
	Context       *AnomalyContextView `json:"context,omitempty"`
}

// DetectionResponse represents one field's anomaly detection result
type DetectionResponse struct {
	Collection string         `json:"collection"`
	Field      string         `json:"field,omitempty"`
	MetricKind string         `json:"metric_kind,omitempty"`
	Baseline   *BaselineView  `json:"baseline,omitempty"`
	Threshold  *ThresholdView `json:"threshold,omitempty"`
	Anomalies  []AnomalyView  `json:"anomalies"`
	Message    string         `json:"message,omitempty"`
}

// FieldDetectionResult is one entry of a multi-field analysis response
type FieldDetectionResult struct {
	Field      string         `json:"field"`
	MetricKind string         `json:"metric_kind"`
	Baseline   *BaselineView  `json:"baseline,omitempty"`
	Threshold  *ThresholdView `json:"threshold,omitempty"`
	Anomalies  []AnomalyView  `json:"anomalies"`
	Message    string         `json:"message,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// MultiDetectionResponse represents an all-fields analysis response
type MultiDetectionResponse struct {
	Collection string                 `json:"collection"`
	Results    []FieldDetectionResult `json:"results"`
}

// TrendResponse is the rounded wire form of a trend analysis
type TrendResponse struct {
	Collection   string  `json:"collection"`
	Field        string  `json:"field"`
	Slope        float64 `json:"slope"`
	Intercept    float64 `json:"intercept"`
	RSquared     float64 `json:"r_squared"`
	Direction    string  `json:"direction"`
	StrengthPct  float64 `json:"strength_pct"`
	Significance string  `json:"significance"`
	Message      string  `json:"message,omitempty"`
}

// SeasonalPatternView is one detected periodicity peak
type SeasonalPatternView struct {
	Lag             int     `json:"lag"`
	Autocorrelation float64 `json:"autocorrelation"`
}

// SeasonalityResponse represents a seasonality detection response
type SeasonalityResponse struct {
	Collection string                `json:"collection"`
	Field      string                `json:"field"`
	Patterns   []SeasonalPatternView `json:"patterns"`
	Message    string                `json:"message,omitempty"`
}

// CorrelationPairView is the rounded wire form of one correlated pair
type CorrelationPairView struct {
	SeriesA     string  `json:"series_a"`
	SeriesB     string  `json:"series_b"`
	Coefficient float64 `json:"coefficient"`
	Sign        string  `json:"sign"`
	Strength    string  `json:"strength"`
}

// CorrelationResponse represents a cross-field correlation response
type CorrelationResponse struct {
	Collection string                `json:"collection"`
	Pairs      []CorrelationPairView `json:"pairs"`
	Message    string                `json:"message,omitempty"`
}

// FieldView describes one registered field
type FieldView struct {
	Name       string `json:"name"`
	MetricKind string `json:"metric_kind"`
}

// CollectionFieldsResponse lists one collection's registered fields
type CollectionFieldsResponse struct {
	Collection string      `json:"collection"`
	Fields     []FieldView `json:"fields"`
	UpdatedAt  string      `json:"updated_at,omitempty"`
}

// FieldsResponse lists every registered collection
type FieldsResponse struct {
	Collections []CollectionFieldsResponse `json:"collections"`
}

// NewBaselineView rounds baseline statistics for the wire
func NewBaselineView(stats *analysis.BaselineStats) *BaselineView {
	if stats == nil {
		return nil
	}
	return &BaselineView{
		Mean:   utils.Round2(stats.Mean),
		StdDev: utils.Round2(stats.StdDev),
		MAD:    utils.Round2(stats.MAD),
		Percentiles: PercentilesView{
			P50: utils.Round2(stats.Percentiles.P50),
			P75: utils.Round2(stats.Percentiles.P75),
			P90: utils.Round2(stats.Percentiles.P90),
			P95: utils.Round2(stats.Percentiles.P95),
			P99: utils.Round2(stats.Percentiles.P99),
		},
		Count: stats.Count,
	}
}

// NewThresholdView rounds a resolved threshold for the wire
func NewThresholdView(threshold *analysis.Threshold) *ThresholdView {
	if threshold == nil {
		return nil
	}
	return &ThresholdView{
		Kind:        string(threshold.Kind),
		Value:       utils.Round2(threshold.Value),
		Description: threshold.Description,
	}
}

// NewAnomalyViews rounds anomalies for the wire, never returning nil so
// the JSON field is always an array
func NewAnomalyViews(anomalies []analysis.Anomaly) []AnomalyView {
	views := make([]AnomalyView, 0, len(anomalies))
	for _, a := range anomalies {
		view := AnomalyView{
			Time:          a.Time.UTC().Format(time.RFC3339),
			Observed:      utils.Round2(a.Observed),
			Expected:      utils.Round2(a.Expected),
			Score:         utils.Round2(a.Score),
			ThresholdKind: string(a.ThresholdKind),
		}
		if a.Context != nil {
			view.Context = &AnomalyContextView{
				DominantService: a.Context.DominantService,
				DominantLevel:   a.Context.DominantLevel,
				Examples:        a.Context.Examples,
			}
		}
		views = append(views, view)
	}
	return views
}

// NewDetectionResponse maps one detection result for the wire
func NewDetectionResponse(collection, field string, kind analysis.MetricKind, result *analysis.DetectionResult) DetectionResponse {
	return DetectionResponse{
		Collection: collection,
		Field:      field,
		MetricKind: string(kind),
		Baseline:   NewBaselineView(result.Baseline),
		Threshold:  NewThresholdView(result.Threshold),
		Anomalies:  NewAnomalyViews(result.Anomalies),
		Message:    result.Message,
	}
}

// NewTrendResponse rounds a trend result for the wire
func NewTrendResponse(collection, field string, result *analysis.TrendResult) TrendResponse {
	return TrendResponse{
		Collection:   collection,
		Field:        field,
		Slope:        utils.Round2(result.Slope),
		Intercept:    utils.Round2(result.Intercept),
		RSquared:     utils.Round2(result.RSquared),
		Direction:    string(result.Direction),
		StrengthPct:  utils.Round2(result.StrengthPct),
		Significance: string(result.Significance),
	}
}

// NewSeasonalityResponse rounds seasonal patterns for the wire
func NewSeasonalityResponse(collection, field string, patterns []analysis.SeasonalPattern) SeasonalityResponse {
	views := make([]SeasonalPatternView, 0, len(patterns))
	for _, p := range patterns {
		views = append(views, SeasonalPatternView{
			Lag:             p.Lag,
			Autocorrelation: utils.Round2(p.Autocorrelation),
		})
	}
	return SeasonalityResponse{
		Collection: collection,
		Field:      field,
		Patterns:   views,
	}
}

// NewCorrelationResponse rounds correlation pairs for the wire
func NewCorrelationResponse(collection string, pairs []analysis.CorrelationPair) CorrelationResponse {
	views := make([]CorrelationPairView, 0, len(pairs))
	for _, p := range pairs {
		views = append(views, CorrelationPairView{
			SeriesA:     p.SeriesA,
			SeriesB:     p.SeriesB,
			Coefficient: utils.Round2(p.Coefficient),
			Sign:        string(p.Sign),
			Strength:    string(p.Strength),
		})
	}
	return CorrelationResponse{
		Collection: collection,
		Pairs:      views,
	}
}
