package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/models"
)

func parsedTrend(field string) *models.ParsedTrend {
	return &models.ParsedTrend{
		Field:    field,
		Kind:     analysis.MetricKindGauge,
		Start:    testStart,
		End:      testStart.Add(time.Hour),
		Interval: time.Minute,
	}
}

func TestTrendServiceLinearSeries(t *testing.T) {
	src := newFakeSource()
	points := make(analysis.TimeSeriesData, 20)
	for i := range points {
		points[i] = analysis.TimeSeriesPoint{
			Time:  testStart.Add(time.Duration(i) * time.Minute),
			Value: analysis.Value(3*float64(i) + 7),
		}
	}
	src.series["cpu"] = points

	svc := NewTrendService(testLogger(), src)

	result, err := svc.Analyze(context.Background(), "metrics", parsedTrend("cpu"))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, result.Slope, 1e-9)
	assert.InDelta(t, 1.0, result.RSquared, 1e-9)
	assert.Equal(t, analysis.TrendIncreasing, result.Direction)
	assert.Equal(t, analysis.SignificanceHigh, result.Significance)
}

func TestTrendServiceTooFewPoints(t *testing.T) {
	src := newFakeSource()
	src.series["cpu"] = analysis.TimeSeriesData{
		{Time: testStart, Value: analysis.Value(1)},
		{Time: testStart.Add(time.Minute), Value: analysis.Value(2)},
	}

	svc := NewTrendService(testLogger(), src)

	_, err := svc.Analyze(context.Background(), "metrics", parsedTrend("cpu"))
	require.Error(t, err)
	assert.True(t, analysis.IsInsufficientData(err))
}

func TestSeasonalityServiceFindsPeriod(t *testing.T) {
	src := newFakeSource()
	points := make(analysis.TimeSeriesData, 56)
	for i := range points {
		points[i] = analysis.TimeSeriesPoint{
			Time:  testStart.Add(time.Duration(i) * time.Hour),
			Value: analysis.Value(10 + 5*math.Sin(2*math.Pi*float64(i)/7)),
		}
	}
	src.series["traffic"] = points

	svc := NewSeasonalityService(testLogger(), src)

	req := parsedTrend("traffic")
	req.Interval = time.Hour
	req.End = testStart.Add(56 * time.Hour)
	patterns, err := svc.Analyze(context.Background(), "metrics", req)
	require.NoError(t, err)
	require.NotEmpty(t, patterns)

	lags := make([]int, 0, len(patterns))
	for _, p := range patterns {
		lags = append(lags, p.Lag)
	}
	assert.Contains(t, lags, 7)
}

func TestCorrelationServicePerfectPair(t *testing.T) {
	src := newFakeSource()
	x := make(analysis.TimeSeriesData, 20)
	y := make(analysis.TimeSeriesData, 20)
	for i := range x {
		at := testStart.Add(time.Duration(i) * time.Minute)
		x[i] = analysis.TimeSeriesPoint{Time: at, Value: analysis.Value(float64(i))}
		y[i] = analysis.TimeSeriesPoint{Time: at, Value: analysis.Value(2 * float64(i))}
	}
	src.series["cpu"] = x
	src.series["latency"] = y

	svc := NewCorrelationService(testLogger(), src, 2)

	pairs, err := svc.Analyze(context.Background(), "metrics", &models.ParsedCorrelation{
		Fields:   []string{"cpu", "latency"},
		Start:    testStart,
		End:      testStart.Add(20 * time.Minute),
		Interval: time.Minute,
		Options:  analysis.CorrelationOptions{MinCorrelation: analysis.Value(analysis.DefaultMinCorrelation)},
	})
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.InDelta(t, 1.0, pairs[0].Coefficient, 1e-9)
	assert.Equal(t, analysis.SignPositive, pairs[0].Sign)
	assert.Equal(t, analysis.StrengthVeryStrong, pairs[0].Strength)
}

func TestCorrelationServiceFetchFailureAborts(t *testing.T) {
	src := newFakeSource()
	src.series["cpu"] = flatSeries()
	src.errs["latency"] = analysis.NewSourceUnavailable("shard offline", nil)

	svc := NewCorrelationService(testLogger(), src, 2)

	_, err := svc.Analyze(context.Background(), "metrics", &models.ParsedCorrelation{
		Fields:   []string{"cpu", "latency"},
		Start:    testStart,
		End:      testStart.Add(time.Hour),
		Interval: time.Minute,
		Options:  analysis.CorrelationOptions{MinCorrelation: analysis.Value(0.5)},
	})
	require.Error(t, err)
	assert.Equal(t, analysis.ErrSourceUnavailable, analysis.KindOf(err))
}

func TestLogAnalysisServiceVolume(t *testing.T) {
	src := newFakeSource()
	src.series[""] = spikySeries()

	svc := NewLogAnalysisService(testLogger(), src)

	result, err := svc.AnalyzeVolume(context.Background(), "app_logs", parsedAnalyze(""))
	require.NoError(t, err)
	require.Len(t, result.Anomalies, 1)

	q := src.queryFor("")
	require.NotNil(t, q)
	assert.Equal(t, "app_logs", q.Collection)
}

func TestLogAnalysisServicePattern(t *testing.T) {
	src := newFakeSource()
	src.series[""] = spikySeries()

	svc := NewLogAnalysisService(testLogger(), src)

	result, err := svc.AnalyzePattern(context.Background(), "app_logs", "connection refused", parsedAnalyze(""))
	require.NoError(t, err)
	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, "connection refused", src.queries[0].Pattern)
}
