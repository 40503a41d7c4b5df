package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/insight/internal/analysis"
)

func TestAnalyzeRequestParseDefaults(t *testing.T) {
	req := AnalyzeRequest{
		Field: "latency_ms",
		Start: "2026-03-01T00:00:00Z",
		End:   "2026-03-01T02:00:00Z",
	}

	parsed, err := req.Parse()
	require.NoError(t, err)

	assert.Equal(t, analysis.MetricKindGauge, parsed.Kind)
	assert.Equal(t, analysis.ThresholdZScore, parsed.Threshold.Kind)
	assert.Nil(t, parsed.Threshold.Value)
	assert.Equal(t, DefaultInterval, parsed.Interval)
	// Cutoff defaults to the midpoint
	assert.Equal(t, time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC), parsed.Cutoff)
}

func TestAnalyzeRequestParseErrors(t *testing.T) {
	value := 2.5
	tests := []struct {
		name string
		req  AnalyzeRequest
	}{
		{"missing start", AnalyzeRequest{End: "2026-03-01T00:00:00Z"}},
		{"bad start", AnalyzeRequest{Start: "yesterday", End: "2026-03-01T00:00:00Z"}},
		{"end before start", AnalyzeRequest{Start: "2026-03-01T01:00:00Z", End: "2026-03-01T00:00:00Z"}},
		{"cutoff outside range", AnalyzeRequest{
			Start: "2026-03-01T00:00:00Z", End: "2026-03-01T01:00:00Z", Cutoff: "2026-03-01T01:00:00Z",
		}},
		{"bad interval", AnalyzeRequest{
			Start: "2026-03-01T00:00:00Z", End: "2026-03-01T01:00:00Z", Interval: "fortnight",
		}},
		{"unknown metric kind", AnalyzeRequest{
			Start: "2026-03-01T00:00:00Z", End: "2026-03-01T01:00:00Z", MetricKind: "ratio",
		}},
		{"fixed without value", AnalyzeRequest{
			Start: "2026-03-01T00:00:00Z", End: "2026-03-01T01:00:00Z",
			Threshold: ThresholdRequest{Kind: "fixed"},
		}},
		{"rate_of_change on gauge", AnalyzeRequest{
			Start: "2026-03-01T00:00:00Z", End: "2026-03-01T01:00:00Z",
			Threshold: ThresholdRequest{Kind: "rate_of_change", Value: &value},
		}},
		{"negative max_results", AnalyzeRequest{
			Start: "2026-03-01T00:00:00Z", End: "2026-03-01T01:00:00Z", MaxResults: -1,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.Parse()
			require.Error(t, err)
			assert.Equal(t, analysis.ErrInvalidParameter, analysis.KindOf(err))
		})
	}
}

func TestAnalyzeRequestCounterRateOfChange(t *testing.T) {
	req := AnalyzeRequest{
		Field:      "requests_total",
		MetricKind: "counter",
		Threshold:  ThresholdRequest{Kind: "rate_of_change"},
		Start:      "2026-03-01T00:00:00Z",
		End:        "2026-03-01T01:00:00Z",
	}

	parsed, err := req.Parse()
	require.NoError(t, err)
	assert.Equal(t, analysis.MetricKindCounter, parsed.Kind)
	assert.Equal(t, analysis.ThresholdRateOfChange, parsed.Threshold.Kind)
}

func TestParseIntervalDays(t *testing.T) {
	parsed, err := (&AnalyzeRequest{
		Start:    "2026-03-01T00:00:00Z",
		End:      "2026-03-15T00:00:00Z",
		Interval: "2d",
	}).Parse()
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, parsed.Interval)
}

func TestTrendRequestRequiresField(t *testing.T) {
	_, err := (&TrendRequest{
		Start: "2026-03-01T00:00:00Z",
		End:   "2026-03-01T01:00:00Z",
	}).Parse()
	require.Error(t, err)
	assert.Equal(t, analysis.ErrInvalidParameter, analysis.KindOf(err))
}

func TestCorrelationRequestParse(t *testing.T) {
	req := CorrelationRequest{
		Fields: []string{"cpu", "memory", "latency"},
		Start:  "2026-03-01T00:00:00Z",
		End:    "2026-03-01T01:00:00Z",
	}

	parsed, err := req.Parse()
	require.NoError(t, err)
	assert.Nil(t, parsed.Options.MinCorrelation)
	assert.False(t, parsed.Options.IncludeAntiCorrelations)
}

func TestCorrelationRequestExplicitZeroMinCorrelation(t *testing.T) {
	zero := 0.0
	parsed, err := (&CorrelationRequest{
		Fields:         []string{"cpu", "memory"},
		Start:          "2026-03-01T00:00:00Z",
		End:            "2026-03-01T01:00:00Z",
		MinCorrelation: &zero,
	}).Parse()
	require.NoError(t, err)
	require.NotNil(t, parsed.Options.MinCorrelation)
	assert.Equal(t, 0.0, *parsed.Options.MinCorrelation)
}

func TestCorrelationRequestTooFewFields(t *testing.T) {
	_, err := (&CorrelationRequest{
		Fields: []string{"cpu"},
		Start:  "2026-03-01T00:00:00Z",
		End:    "2026-03-01T01:00:00Z",
	}).Parse()
	require.Error(t, err)
	assert.Equal(t, analysis.ErrInvalidParameter, analysis.KindOf(err))
}

func TestCorrelationRequestDuplicateFields(t *testing.T) {
	_, err := (&CorrelationRequest{
		Fields: []string{"cpu", "cpu"},
		Start:  "2026-03-01T00:00:00Z",
		End:    "2026-03-01T01:00:00Z",
	}).Parse()
	require.Error(t, err)
	assert.Equal(t, analysis.ErrInvalidParameter, analysis.KindOf(err))
}

func TestCorrelationRequestBadMinCorrelation(t *testing.T) {
	bad := 1.5
	_, err := (&CorrelationRequest{
		Fields:         []string{"cpu", "memory"},
		Start:          "2026-03-01T00:00:00Z",
		End:            "2026-03-01T01:00:00Z",
		MinCorrelation: &bad,
	}).Parse()
	require.Error(t, err)
	assert.Equal(t, analysis.ErrInvalidParameter, analysis.KindOf(err))
}

func TestLogPatternRequestRequiresPattern(t *testing.T) {
	_, err := (&LogPatternRequest{
		Start: "2026-03-01T00:00:00Z",
		End:   "2026-03-01T01:00:00Z",
	}).Parse()
	require.Error(t, err)
	assert.Equal(t, analysis.ErrInvalidParameter, analysis.KindOf(err))
}
