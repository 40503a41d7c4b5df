package analysis

import (
	"math"
	"sort"
)

// Percentiles holds the standard percentile set computed for a baseline
type Percentiles struct {
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

// BaselineStats describes the "normal" behavior of a series over its
// baseline window. StdDev == 0 is a valid state (constant series); the
// z-score of any point against such a baseline is defined as 0.
type BaselineStats struct {
	Mean        float64     `json:"mean"`
	StdDev      float64     `json:"std_dev"`
	MAD         float64     `json:"mad"`
	Percentiles Percentiles `json:"percentiles"`
	Count       int         `json:"count"`
}

// EstimateBaseline computes descriptive statistics over the given values.
// Variance is population variance (divide by n); the same convention is
// used by every component in this package. Returns InsufficientData for
// empty input.
func EstimateBaseline(values []float64) (*BaselineStats, error) {
	if len(values) == 0 {
		return nil, NewInsufficientData("baseline window has no values")
	}

	n := float64(len(values))

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var varianceSum float64
	for _, v := range values {
		diff := v - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / n)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return &BaselineStats{
		Mean:   mean,
		StdDev: stdDev,
		MAD:    madFromSorted(values, sorted),
		Percentiles: Percentiles{
			P50: percentileSorted(sorted, 0.50),
			P75: percentileSorted(sorted, 0.75),
			P90: percentileSorted(sorted, 0.90),
			P95: percentileSorted(sorted, 0.95),
			P99: percentileSorted(sorted, 0.99),
		},
		Count: len(values),
	}, nil
}

// ZScore returns how many standard deviations value is from the mean,
// or 0 when the baseline is constant
func (s *BaselineStats) ZScore(value float64) float64 {
	if s.StdDev == 0 {
		return 0
	}
	return (value - s.Mean) / s.StdDev
}

// Percentile computes the p-th percentile (p in [0,1]) of values by
// sorting ascending and indexing at floor(n*p)
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, NewInsufficientData("cannot compute percentile of empty values")
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p), nil
}

// percentileSorted indexes already-sorted values at floor(n*p), clamped
// to the last element
func percentileSorted(sorted []float64, p float64) float64 {
	idx := int(math.Floor(float64(len(sorted)) * p))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// madFromSorted computes the median absolute deviation from the median.
// sorted must be the ascending copy of values.
func madFromSorted(values, sorted []float64) float64 {
	median := percentileSorted(sorted, 0.50)

	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = math.Abs(v - median)
	}
	sort.Float64s(deviations)

	return percentileSorted(deviations, 0.50)
}
