// Package analysis implements the statistical core of Soltix Insight:
// baseline estimation, threshold resolution, metric-kind preprocessing,
// anomaly scoring, trend and seasonality analysis, and cross-series
// correlation. All computation is synchronous, in-memory, and free of
// shared mutable state; every call is a pure function of the series it
// is given.
package analysis

import (
	"sort"
	"time"
)

// TimeSeriesPoint represents a single bucketed data point.
// A nil Value marks a missing bucket; missing buckets are filtered out
// before any statistics are computed.
type TimeSeriesPoint struct {
	Time  time.Time
	Value *float64
}

// Value constructs a *float64 for building series literals.
func Value(v float64) *float64 {
	return &v
}

// TimeSeriesData represents an ordered collection of time-series points
type TimeSeriesData []TimeSeriesPoint

// Values extracts the non-missing values, preserving order
func (ts TimeSeriesData) Values() []float64 {
	values := make([]float64, 0, len(ts))
	for _, p := range ts {
		if p.Value != nil {
			values = append(values, *p.Value)
		}
	}
	return values
}

// Present returns the points that carry a value, preserving order
func (ts TimeSeriesData) Present() TimeSeriesData {
	present := make(TimeSeriesData, 0, len(ts))
	for _, p := range ts {
		if p.Value != nil {
			present = append(present, p)
		}
	}
	return present
}

// Len returns the number of points, missing buckets included
func (ts TimeSeriesData) Len() int {
	return len(ts)
}

// SeriesWindow holds a series split into its baseline and analysis
// sub-windows. Baseline points strictly precede the cutoff; analysis
// points are at or after it.
type SeriesWindow struct {
	Baseline TimeSeriesData
	Analysis TimeSeriesData
}

// SplitWindow partitions points at the cutoff instant. Points are sorted
// by time before splitting so callers may pass unsorted input. Returns
// InsufficientData when either side ends up empty.
func SplitWindow(points TimeSeriesData, cutoff time.Time) (*SeriesWindow, error) {
	sorted := make(TimeSeriesData, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	w := &SeriesWindow{}
	for _, p := range sorted {
		if p.Time.Before(cutoff) {
			w.Baseline = append(w.Baseline, p)
		} else {
			w.Analysis = append(w.Analysis, p)
		}
	}

	if len(w.Baseline) == 0 {
		return nil, NewInsufficientData("no points before baseline cutoff")
	}
	if len(w.Analysis) == 0 {
		return nil, NewInsufficientData("no points at or after baseline cutoff")
	}

	return w, nil
}
