package analysis

import (
	"testing"
	"time"
)

func seriesAt(start time.Time, step time.Duration, values ...float64) TimeSeriesData {
	points := make(TimeSeriesData, len(values))
	for i, v := range values {
		points[i] = TimeSeriesPoint{Time: start.Add(time.Duration(i) * step), Value: Value(v)}
	}
	return points
}

var testStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestCounterRates_SteadyCounter(t *testing.T) {
	points := seriesAt(testStart, time.Second, 0, 100, 200, 300)

	rates, err := MetricKindCounter.Transform(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rates) != 3 {
		t.Fatalf("expected 3 rate points, got %d", len(rates))
	}
	for i, r := range rates {
		if *r.Value != 100 {
			t.Errorf("rate[%d]: expected 100/s, got %f", i, *r.Value)
		}
	}
}

func TestCounterRates_Reset(t *testing.T) {
	// counter resets between 200 and 50; that single rate is skipped
	points := seriesAt(testStart, time.Second, 0, 100, 200, 50, 150)

	rates, err := MetricKindCounter.Transform(points)
	if err != nil {
		t.Fatalf("reset must not error: %v", err)
	}

	if len(rates) != 3 {
		t.Fatalf("expected 3 rate points (reset skipped), got %d", len(rates))
	}
	for i, r := range rates {
		if *r.Value != 100 {
			t.Errorf("rate[%d]: expected 100/s, got %f", i, *r.Value)
		}
	}
}

func TestCounterRates_TooFewPoints(t *testing.T) {
	points := seriesAt(testStart, time.Second, 42)

	_, err := MetricKindCounter.Transform(points)
	if !IsInsufficientData(err) {
		t.Errorf("expected InsufficientData for a 1-point counter, got %v", err)
	}
}

func TestCounterRates_IntervalScaling(t *testing.T) {
	// 60 per minute is 1 per second
	points := seriesAt(testStart, time.Minute, 0, 60, 120)

	rates, err := MetricKindCounter.Transform(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range rates {
		if *r.Value != 1 {
			t.Errorf("rate[%d]: expected 1/s, got %f", i, *r.Value)
		}
	}
}

func TestGaugeTransform_FiltersMissingBuckets(t *testing.T) {
	points := TimeSeriesData{
		{Time: testStart, Value: Value(1)},
		{Time: testStart.Add(time.Minute), Value: nil},
		{Time: testStart.Add(2 * time.Minute), Value: Value(3)},
	}

	out, err := MetricKindGauge.Transform(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected missing bucket filtered, got %d points", len(out))
	}
}

func TestHistogramTransform_PassThrough(t *testing.T) {
	points := seriesAt(testStart, time.Minute, 120, 130, 125)

	out, err := MetricKindHistogram.Transform(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Errorf("histogram percentile series must pass through, got %d points", len(out))
	}
}

func TestParseMetricKind(t *testing.T) {
	if k, err := ParseMetricKind(""); err != nil || k != MetricKindGauge {
		t.Errorf("empty kind must default to gauge, got %s (%v)", k, err)
	}
	if _, err := ParseMetricKind("widget"); !IsInvalidParameter(err) {
		t.Error("expected InvalidParameter for unknown metric kind")
	}
}
