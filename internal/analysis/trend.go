package analysis

import "math"

// TrendDirection labels the sign of a fitted slope
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// TrendSignificance buckets the goodness of fit
type TrendSignificance string

const (
	SignificanceHigh   TrendSignificance = "high"   // R^2 > 0.7
	SignificanceMedium TrendSignificance = "medium" // R^2 > 0.3
	SignificanceLow    TrendSignificance = "low"
)

// TrendResult describes an ordinary-least-squares fit over a series
type TrendResult struct {
	Slope        float64           `json:"slope"`
	Intercept    float64           `json:"intercept"`
	RSquared     float64           `json:"r_squared"`
	Direction    TrendDirection    `json:"direction"`
	StrengthPct  float64           `json:"strength_pct"`
	Significance TrendSignificance `json:"significance"`
}

// AnalyzeTrend fits a least-squares line through (index, value) pairs.
// The x axis is the ordinal bucket index, not wall-clock time: the fit
// assumes roughly uniform bucket spacing, so with sparse or uneven
// buckets the slope is per-bucket, not per-second. Requires at least
// 3 values. A constant series (SS_tot == 0) has an undefined R^2 and
// reports direction stable, significance low.
func AnalyzeTrend(values []float64) (*TrendResult, error) {
	if len(values) < 3 {
		return nil, NewInsufficientData("trend analysis requires at least 3 values")
	}

	n := float64(len(values))

	var sumX, sumY, sumXY, sumX2 float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumX2 += x * x
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return nil, NewInsufficientData("cannot fit a line: degenerate x values")
	}

	slope := (n*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / n
	mean := sumY / n

	var ssTot, ssRes float64
	for i, v := range values {
		fitted := intercept + slope*float64(i)
		ssTot += (v - mean) * (v - mean)
		ssRes += (v - fitted) * (v - fitted)
	}

	result := &TrendResult{
		Slope:     slope,
		Intercept: intercept,
	}

	if ssTot == 0 {
		// constant series
		result.Direction = TrendStable
		result.Significance = SignificanceLow
		return result, nil
	}

	result.RSquared = 1 - ssRes/ssTot

	switch {
	case slope > 0:
		result.Direction = TrendIncreasing
	case slope < 0:
		result.Direction = TrendDecreasing
	default:
		result.Direction = TrendStable
	}

	if mean != 0 {
		result.StrengthPct = math.Abs(slope) / math.Abs(mean) * 100
	}

	switch {
	case result.RSquared > 0.7:
		result.Significance = SignificanceHigh
	case result.RSquared > 0.3:
		result.Significance = SignificanceMedium
	default:
		result.Significance = SignificanceLow
	}

	return result, nil
}
