package analysis

import "fmt"

// MetricKind selects the per-kind preprocessing applied before scoring
type MetricKind string

const (
	// MetricKindGauge scores raw values as-is
	MetricKindGauge MetricKind = "gauge"

	// MetricKindCounter scores the rate of change (value/second) of a
	// monotonically increasing counter
	MetricKindCounter MetricKind = "counter"

	// MetricKindHistogram scores a pre-extracted percentile series
	// (typically p99 per bucket) exactly like a gauge
	MetricKindHistogram MetricKind = "histogram"
)

// ParseMetricKind validates a metric kind string, defaulting to gauge
// for empty input
func ParseMetricKind(s string) (MetricKind, error) {
	switch MetricKind(s) {
	case "":
		return MetricKindGauge, nil
	case MetricKindGauge, MetricKindCounter, MetricKindHistogram:
		return MetricKind(s), nil
	default:
		return "", NewInvalidParameter(fmt.Sprintf("unknown metric kind: %s", s))
	}
}

// Transform applies the kind-specific preprocessing to a window of
// points. Missing buckets are dropped first. Gauge and histogram series
// pass through; counter series become their derived rate series.
func (k MetricKind) Transform(points TimeSeriesData) (TimeSeriesData, error) {
	present := points.Present()

	switch k {
	case MetricKindGauge, MetricKindHistogram:
		return present, nil
	case MetricKindCounter:
		return counterRates(present)
	default:
		return nil, NewInvalidParameter(fmt.Sprintf("unknown metric kind: %s", k))
	}
}

// counterRates converts a cumulative counter series into per-second
// rates over consecutive points. A rate point is stamped at the later
// point's time. When the counter appears to reset (value decreases)
// that single rate is skipped, not emitted and not treated as an
// anomaly. Buckets with zero elapsed time are skipped for the same
// reason.
func counterRates(points TimeSeriesData) (TimeSeriesData, error) {
	if len(points) < 2 {
		return nil, NewInsufficientData("counter rate requires at least 2 points")
	}

	rates := make(TimeSeriesData, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]

		if *curr.Value < *prev.Value {
			// counter reset
			continue
		}

		seconds := curr.Time.Sub(prev.Time).Seconds()
		if seconds <= 0 {
			continue
		}

		rate := (*curr.Value - *prev.Value) / seconds
		rates = append(rates, TimeSeriesPoint{Time: curr.Time, Value: Value(rate)})
	}

	if len(rates) == 0 {
		return nil, NewInsufficientData("no valid rate points after reset filtering")
	}

	return rates, nil
}
