package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/insight/internal/analysis"
)

func TestNewBaselineViewRounds(t *testing.T) {
	view := NewBaselineView(&analysis.BaselineStats{
		Mean:   10.4567,
		StdDev: 1.2349,
		MAD:    0.996,
		Percentiles: analysis.Percentiles{
			P50: 10.111, P75: 11.119, P90: 12.005, P95: 12.5, P99: 13.999,
		},
		Count: 120,
	})

	require.NotNil(t, view)
	assert.Equal(t, 10.46, view.Mean)
	assert.Equal(t, 1.23, view.StdDev)
	assert.Equal(t, 1.0, view.MAD)
	assert.Equal(t, 10.11, view.Percentiles.P50)
	assert.Equal(t, 14.0, view.Percentiles.P99)
	assert.Equal(t, 120, view.Count)
}

func TestNewBaselineViewNil(t *testing.T) {
	assert.Nil(t, NewBaselineView(nil))
}

func TestNewAnomalyViews(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	views := NewAnomalyViews([]analysis.Anomaly{
		{
			Time:          at,
			Observed:      42.556,
			Expected:      10.004,
			Score:         6.789,
			ThresholdKind: analysis.ThresholdZScore,
			Context:       &analysis.AnomalyContext{DominantService: "api", Examples: []string{"timeout"}},
		},
	})

	require.Len(t, views, 1)
	assert.Equal(t, "2026-03-01T12:30:00Z", views[0].Time)
	assert.Equal(t, 42.56, views[0].Observed)
	assert.Equal(t, 10.0, views[0].Expected)
	assert.Equal(t, 6.79, views[0].Score)
	assert.Equal(t, "zscore", views[0].ThresholdKind)
	require.NotNil(t, views[0].Context)
	assert.Equal(t, "api", views[0].Context.DominantService)
}

func TestNewAnomalyViewsNeverNil(t *testing.T) {
	views := NewAnomalyViews(nil)
	require.NotNil(t, views)
	assert.Empty(t, views)
}

func TestNewDetectionResponseCarriesMessage(t *testing.T) {
	resp := NewDetectionResponse("logs", "count", analysis.MetricKindGauge, &analysis.DetectionResult{
		Message: "baseline window is empty",
	})

	assert.Equal(t, "logs", resp.Collection)
	assert.Nil(t, resp.Baseline)
	assert.Nil(t, resp.Threshold)
	assert.Empty(t, resp.Anomalies)
	assert.Equal(t, "baseline window is empty", resp.Message)
}

func TestNewTrendResponseRounds(t *testing.T) {
	resp := NewTrendResponse("metrics", "cpu", &analysis.TrendResult{
		Slope:        0.04567,
		Intercept:    3.14159,
		RSquared:     0.98765,
		Direction:    analysis.TrendIncreasing,
		StrengthPct:  12.346,
		Significance: analysis.SignificanceHigh,
	})

	assert.Equal(t, 0.05, resp.Slope)
	assert.Equal(t, 3.14, resp.Intercept)
	assert.Equal(t, 0.99, resp.RSquared)
	assert.Equal(t, "increasing", resp.Direction)
	assert.Equal(t, 12.35, resp.StrengthPct)
	assert.Equal(t, "high", resp.Significance)
}

func TestNewCorrelationResponseRounds(t *testing.T) {
	resp := NewCorrelationResponse("metrics", []analysis.CorrelationPair{
		{SeriesA: "cpu", SeriesB: "latency", Coefficient: 0.91234, Sign: analysis.SignPositive, Strength: analysis.StrengthVeryStrong},
	})

	require.Len(t, resp.Pairs, 1)
	assert.Equal(t, 0.91, resp.Pairs[0].Coefficient)
	assert.Equal(t, "very_strong", resp.Pairs[0].Strength)
}
