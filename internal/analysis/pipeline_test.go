package analysis

import (
	"testing"
	"time"
)

func TestDetect_GaugeSpike(t *testing.T) {
	// 30 baseline points around 10, then a spike in the analysis window
	points := make(TimeSeriesData, 0, 34)
	for i := 0; i < 30; i++ {
		v := 10.0
		if i%2 == 0 {
			v = 11.0
		}
		points = append(points, TimeSeriesPoint{Time: testStart.Add(time.Duration(i) * time.Minute), Value: Value(v)})
	}
	cutoff := testStart.Add(30 * time.Minute)
	points = append(points,
		TimeSeriesPoint{Time: cutoff, Value: Value(10)},
		TimeSeriesPoint{Time: cutoff.Add(time.Minute), Value: Value(50)},
		TimeSeriesPoint{Time: cutoff.Add(2 * time.Minute), Value: Value(11)},
		TimeSeriesPoint{Time: cutoff.Add(3 * time.Minute), Value: Value(10)},
	)

	result, err := Detect(DetectionRequest{
		Points:    points,
		Cutoff:    cutoff,
		Kind:      MetricKindGauge,
		Threshold: ThresholdSpec{Kind: ThresholdZScore},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Message != "" {
		t.Fatalf("unexpected diagnostic: %s", result.Message)
	}
	if len(result.Anomalies) != 1 {
		t.Fatalf("expected exactly the spike flagged, got %d", len(result.Anomalies))
	}
	if result.Anomalies[0].Observed != 50 {
		t.Errorf("expected observed 50, got %f", result.Anomalies[0].Observed)
	}
	if result.Baseline == nil || result.Threshold == nil {
		t.Error("result must carry baseline stats and resolved threshold")
	}
}

func TestDetect_InvalidParameterBeforeAnyWork(t *testing.T) {
	_, err := Detect(DetectionRequest{
		Points:    nil, // validation must fire before the series is touched
		Cutoff:    testStart,
		Threshold: ThresholdSpec{Kind: ThresholdFixed},
	})
	if !IsInvalidParameter(err) {
		t.Errorf("expected InvalidParameter, got %v", err)
	}
}

func TestDetect_EmptyBaselineIsDiagnosticNotError(t *testing.T) {
	points := seriesAt(testStart, time.Minute, 1, 2, 3)

	result, err := Detect(DetectionRequest{
		Points:    points,
		Cutoff:    testStart, // everything lands in the analysis window
		Threshold: ThresholdSpec{Kind: ThresholdZScore},
	})
	if err != nil {
		t.Fatalf("insufficient data must not be an error: %v", err)
	}
	if result.Message == "" {
		t.Error("expected a diagnostic message for an empty baseline")
	}
	if len(result.Anomalies) != 0 {
		t.Errorf("expected empty result set, got %d", len(result.Anomalies))
	}
}

func TestDetect_SteadyCounterNoRateAnomalies(t *testing.T) {
	// steady counter: rate series is constant, stddev 0, nothing flagged
	points := make(TimeSeriesData, 0, 12)
	for i := 0; i < 12; i++ {
		points = append(points, TimeSeriesPoint{
			Time:  testStart.Add(time.Duration(i) * time.Second),
			Value: Value(float64(i * 100)),
		})
	}

	result, err := Detect(DetectionRequest{
		Points:    points,
		Cutoff:    testStart.Add(8 * time.Second),
		Kind:      MetricKindCounter,
		Threshold: ThresholdSpec{Kind: ThresholdRateOfChange},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Anomalies) != 0 {
		t.Errorf("constant rate series must yield no anomalies, got %d", len(result.Anomalies))
	}
}

func TestDetect_CounterResetNotAnAnomaly(t *testing.T) {
	// counter increments by 100/s but resets once inside the analysis window
	values := []float64{0, 100, 200, 300, 400, 500, 600, 700, 10, 110, 210, 310}
	points := make(TimeSeriesData, len(values))
	for i, v := range values {
		points[i] = TimeSeriesPoint{Time: testStart.Add(time.Duration(i) * time.Second), Value: Value(v)}
	}

	result, err := Detect(DetectionRequest{
		Points:    points,
		Cutoff:    testStart.Add(6 * time.Second),
		Kind:      MetricKindCounter,
		Threshold: ThresholdSpec{Kind: ThresholdRateOfChange},
	})
	if err != nil {
		t.Fatalf("a counter reset must not error: %v", err)
	}
	if len(result.Anomalies) != 0 {
		t.Errorf("the reset itself must not be flagged, got %+v", result.Anomalies)
	}
}

func TestSplitWindow_OrdersUnsortedInput(t *testing.T) {
	points := TimeSeriesData{
		{Time: testStart.Add(2 * time.Minute), Value: Value(3)},
		{Time: testStart, Value: Value(1)},
		{Time: testStart.Add(time.Minute), Value: Value(2)},
	}

	w, err := SplitWindow(points, testStart.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Baseline) != 2 || len(w.Analysis) != 1 {
		t.Fatalf("unexpected split: %d/%d", len(w.Baseline), len(w.Analysis))
	}
	if !w.Baseline[0].Time.Equal(testStart) {
		t.Error("baseline must be sorted chronologically")
	}
}

func TestSplitWindow_CutoffPointBelongsToAnalysis(t *testing.T) {
	cutoff := testStart.Add(time.Minute)
	points := TimeSeriesData{
		{Time: testStart, Value: Value(1)},
		{Time: cutoff, Value: Value(2)},
	}

	w, err := SplitWindow(points, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Analysis) != 1 || !w.Analysis[0].Time.Equal(cutoff) {
		t.Error("point at the cutoff instant belongs to the analysis window")
	}
}

func TestSplitWindow_EmptySide(t *testing.T) {
	points := seriesAt(testStart, time.Minute, 1, 2, 3)

	if _, err := SplitWindow(points, testStart.Add(time.Hour)); !IsInsufficientData(err) {
		t.Error("expected InsufficientData when the analysis window is empty")
	}
	if _, err := SplitWindow(points, testStart); !IsInsufficientData(err) {
		t.Error("expected InsufficientData when the baseline window is empty")
	}
}
