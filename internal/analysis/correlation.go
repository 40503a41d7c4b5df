package analysis

import (
	"math"
	"sort"
)

// CorrelationSign labels the direction of a correlation
type CorrelationSign string

const (
	SignPositive CorrelationSign = "positive"
	SignNegative CorrelationSign = "negative"
)

// CorrelationStrength buckets |r| into qualitative labels
type CorrelationStrength string

const (
	StrengthVeryStrong CorrelationStrength = "very_strong" // |r| >= 0.9
	StrengthStrong     CorrelationStrength = "strong"      // |r| >= 0.7
	StrengthModerate   CorrelationStrength = "moderate"    // |r| >= 0.5
	StrengthWeak       CorrelationStrength = "weak"        // |r| >= 0.3
	StrengthVeryWeak   CorrelationStrength = "very_weak"
)

// DefaultMinCorrelation filters reported pairs when the caller does not
// supply a threshold
const DefaultMinCorrelation = 0.7

// NamedSeries is one input series for correlation analysis
type NamedSeries struct {
	Name   string
	Points TimeSeriesData
}

// CorrelationPair is the Pearson correlation between two aligned series
type CorrelationPair struct {
	SeriesA     string              `json:"series_a"`
	SeriesB     string              `json:"series_b"`
	Coefficient float64             `json:"coefficient"`
	Sign        CorrelationSign     `json:"sign"`
	Strength    CorrelationStrength `json:"strength"`
}

// CorrelationOptions tunes pair filtering
type CorrelationOptions struct {
	// MinCorrelation drops pairs with |r| below this bound. Nil means
	// DefaultMinCorrelation; an explicit 0 disables filtering.
	MinCorrelation *float64

	// IncludeAntiCorrelations keeps negatively correlated pairs
	IncludeAntiCorrelations bool
}

// DefaultCorrelationOptions returns the default filtering options
func DefaultCorrelationOptions() CorrelationOptions {
	return CorrelationOptions{
		IncludeAntiCorrelations: true,
	}
}

// Correlate computes pairwise Pearson correlations across 2+ named
// series. Series are aligned by exact bucket timestamp with inner-join
// semantics: only instants present and non-missing in every series are
// kept. Buckets that drift across sources therefore reduce the aligned
// set; callers are expected to fetch all series at the same interval.
// Output is sorted by |r| descending.
func Correlate(series []NamedSeries, opts CorrelationOptions) ([]CorrelationPair, error) {
	if len(series) < 2 {
		return nil, NewInvalidParameter("correlation requires at least 2 series")
	}
	minCorrelation := DefaultMinCorrelation
	if opts.MinCorrelation != nil {
		minCorrelation = *opts.MinCorrelation
	}

	aligned, err := alignSeries(series)
	if err != nil {
		return nil, err
	}

	pairs := make([]CorrelationPair, 0)
	for i := 0; i < len(series); i++ {
		for j := i + 1; j < len(series); j++ {
			r := pearson(aligned[i], aligned[j])

			if math.Abs(r) < minCorrelation {
				continue
			}
			if r < 0 && !opts.IncludeAntiCorrelations {
				continue
			}

			sign := SignPositive
			if r < 0 {
				sign = SignNegative
			}

			pairs = append(pairs, CorrelationPair{
				SeriesA:     series[i].Name,
				SeriesB:     series[j].Name,
				Coefficient: r,
				Sign:        sign,
				Strength:    classifyStrength(r),
			})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].Coefficient) > math.Abs(pairs[j].Coefficient)
	})

	return pairs, nil
}

// alignSeries inner-joins all series on exact timestamps, returning one
// value slice per input series, all the same length and in chronological
// order. Fewer than 2 aligned instants is InsufficientData.
func alignSeries(series []NamedSeries) ([][]float64, error) {
	// count how many series carry a value at each instant
	counts := make(map[int64]int)
	for _, s := range series {
		seen := make(map[int64]bool)
		for _, p := range s.Points {
			if p.Value == nil {
				continue
			}
			ts := p.Time.UnixNano()
			if !seen[ts] {
				seen[ts] = true
				counts[ts]++
			}
		}
	}

	shared := make([]int64, 0)
	for ts, c := range counts {
		if c == len(series) {
			shared = append(shared, ts)
		}
	}
	if len(shared) < 2 {
		return nil, NewInsufficientData("fewer than 2 timestamps shared by all series")
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i] < shared[j] })

	aligned := make([][]float64, len(series))
	for i, s := range series {
		byTime := make(map[int64]float64, len(s.Points))
		for _, p := range s.Points {
			if p.Value != nil {
				byTime[p.Time.UnixNano()] = *p.Value
			}
		}
		values := make([]float64, len(shared))
		for j, ts := range shared {
			values[j] = byTime[ts]
		}
		aligned[i] = values
	}

	return aligned, nil
}

// pearson computes the Pearson correlation coefficient of two
// equal-length value slices, 0 when either variance is 0
func pearson(x, y []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return 0
	}

	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var covSum, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		covSum += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}

	return covSum / math.Sqrt(varX*varY)
}

// classifyStrength buckets |r| into qualitative labels
func classifyStrength(r float64) CorrelationStrength {
	abs := math.Abs(r)
	switch {
	case abs >= 0.9:
		return StrengthVeryStrong
	case abs >= 0.7:
		return StrengthStrong
	case abs >= 0.5:
		return StrengthModerate
	case abs >= 0.3:
		return StrengthWeak
	default:
		return StrengthVeryWeak
	}
}
