package detectors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/source"
)

// fakeSource returns a canned series and records the last query
type fakeSource struct {
	points    analysis.TimeSeriesData
	err       error
	lastQuery source.Query
}

func (f *fakeSource) FetchBucketed(_ context.Context, q source.Query) (analysis.TimeSeriesData, error) {
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	return f.points, nil
}

func countSeries(start time.Time, counts ...float64) analysis.TimeSeriesData {
	points := make(analysis.TimeSeriesData, len(counts))
	for i, c := range counts {
		points[i] = analysis.TimeSeriesPoint{
			Time:  start.Add(time.Duration(i) * time.Minute),
			Value: analysis.Value(c),
		}
	}
	return points
}

func TestFrequencyDetectorFlagsVolumeSpike(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// Steady volume around 100, then a spike in the analysis window
	src := &fakeSource{points: countSeries(start,
		100, 102, 98, 101, 99, 100, 103, 97, 100, 101,
		100, 500,
	)}

	d := NewFrequencyDetector(src)
	result, err := d.Detect(context.Background(), FrequencyRequest{
		Collection: "app_logs",
		Start:      start,
		End:        start.Add(12 * time.Minute),
		Cutoff:     start.Add(10 * time.Minute),
		Interval:   time.Minute,
		Threshold:  analysis.ThresholdSpec{Kind: analysis.ThresholdZScore},
	})
	require.NoError(t, err)
	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, 500.0, result.Anomalies[0].Observed)

	assert.Equal(t, source.AggregationCount, src.lastQuery.Aggregation)
	assert.Equal(t, "app_logs", src.lastQuery.Collection)
	assert.Empty(t, src.lastQuery.Pattern)
}

func TestFrequencyDetectorPropagatesSourceErrors(t *testing.T) {
	src := &fakeSource{err: analysis.NewSourceUnavailable("backend down", nil)}

	d := NewFrequencyDetector(src)
	_, err := d.Detect(context.Background(), FrequencyRequest{
		Collection: "app_logs",
		Interval:   time.Minute,
		Threshold:  analysis.ThresholdSpec{Kind: analysis.ThresholdZScore},
	})
	require.Error(t, err)
	assert.Equal(t, analysis.ErrSourceUnavailable, analysis.KindOf(err))
}

func TestPatternDetectorRequiresPattern(t *testing.T) {
	d := NewPatternDetector(&fakeSource{})

	_, err := d.Detect(context.Background(), PatternRequest{
		Collection: "app_logs",
		Pattern:    "   ",
		Interval:   time.Minute,
		Threshold:  analysis.ThresholdSpec{Kind: analysis.ThresholdZScore},
	})
	require.Error(t, err)
	assert.Equal(t, analysis.ErrInvalidParameter, analysis.KindOf(err))
}

func TestPatternDetectorQueriesWithPattern(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{points: countSeries(start,
		2, 3, 2, 1, 3, 2, 2, 3, 1, 2,
		2, 40,
	)}

	d := NewPatternDetector(src)
	result, err := d.Detect(context.Background(), PatternRequest{
		Collection: "app_logs",
		Pattern:    "connection refused",
		Start:      start,
		End:        start.Add(12 * time.Minute),
		Cutoff:     start.Add(10 * time.Minute),
		Interval:   time.Minute,
		Threshold:  analysis.ThresholdSpec{Kind: analysis.ThresholdZScore},
	})
	require.NoError(t, err)
	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, 40.0, result.Anomalies[0].Observed)
	assert.Equal(t, "connection refused", src.lastQuery.Pattern)
	assert.Equal(t, source.AggregationCount, src.lastQuery.Aggregation)
}

func TestPatternDetectorInsufficientData(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// All points after cutoff leaves an empty baseline
	src := &fakeSource{points: countSeries(start, 1, 2, 3)}

	d := NewPatternDetector(src)
	result, err := d.Detect(context.Background(), PatternRequest{
		Collection: "app_logs",
		Pattern:    "timeout",
		Start:      start,
		End:        start.Add(3 * time.Minute),
		Cutoff:     start,
		Interval:   time.Minute,
		Threshold:  analysis.ThresholdSpec{Kind: analysis.ThresholdZScore},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Anomalies)
	assert.NotEmpty(t, result.Message)
}
