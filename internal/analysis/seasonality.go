package analysis

import "sort"

const (
	// minAutocorrelation is the peak height below which a lag is not
	// considered a seasonal candidate
	minAutocorrelation = 0.3

	// maxSeasonalPatterns caps the number of reported peaks
	maxSeasonalPatterns = 3
)

// SeasonalPattern is one detected periodicity candidate: the lag (in
// buckets) at an autocorrelation peak
type SeasonalPattern struct {
	Lag             int     `json:"lag"`
	Autocorrelation float64 `json:"autocorrelation"`
}

// DetectSeasonality computes the autocorrelation function for lags
// 1..n/2 and returns the top local maxima with acf > 0.3 as candidate
// periods, at most 3, sorted by autocorrelation descending. A constant
// series has no defined autocorrelation and yields no patterns.
func DetectSeasonality(values []float64) ([]SeasonalPattern, error) {
	if len(values) < 4 {
		return nil, NewInsufficientData("seasonality detection requires at least 4 values")
	}

	acf := autocorrelations(values)
	if len(acf) == 0 {
		return []SeasonalPattern{}, nil
	}

	patterns := make([]SeasonalPattern, 0)
	for lag := 1; lag <= len(acf); lag++ {
		v := acf[lag-1]
		if v <= minAutocorrelation {
			continue
		}
		if !isLocalMaximum(acf, lag-1) {
			continue
		}
		patterns = append(patterns, SeasonalPattern{Lag: lag, Autocorrelation: v})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Autocorrelation > patterns[j].Autocorrelation
	})

	if len(patterns) > maxSeasonalPatterns {
		patterns = patterns[:maxSeasonalPatterns]
	}

	return patterns, nil
}

// autocorrelations returns acf values for lags 1..floor(n/2). A zero
// denominator (constant series) yields an empty result.
func autocorrelations(values []float64) []float64 {
	n := len(values)

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	var denominator float64
	for _, v := range values {
		diff := v - mean
		denominator += diff * diff
	}
	if denominator == 0 {
		return nil
	}

	maxLag := n / 2
	acf := make([]float64, maxLag)
	for lag := 1; lag <= maxLag; lag++ {
		var numerator float64
		for i := 0; i+lag < n; i++ {
			numerator += (values[i] - mean) * (values[i+lag] - mean)
		}
		acf[lag-1] = numerator / denominator
	}

	return acf
}

// isLocalMaximum reports whether acf[i] is a peak. Boundary lags are
// compared to their single neighbor.
func isLocalMaximum(acf []float64, i int) bool {
	if len(acf) == 1 {
		return true
	}
	if i == 0 {
		return acf[0] > acf[1]
	}
	if i == len(acf)-1 {
		return acf[i] > acf[i-1]
	}
	return acf[i] > acf[i-1] && acf[i] > acf[i+1]
}
