package analysis

import "fmt"

// ThresholdKind selects how the decision boundary is derived from
// baseline statistics
type ThresholdKind string

const (
	// ThresholdZScore flags values above mean + k*stddev (default k=3)
	ThresholdZScore ThresholdKind = "zscore"

	// ThresholdPercentile flags values above the p-th baseline
	// percentile (default p=99)
	ThresholdPercentile ThresholdKind = "percentile"

	// ThresholdMAD flags values above median + k*scaledMAD, a robust
	// alternative to zscore
	ThresholdMAD ThresholdKind = "mad"

	// ThresholdFixed uses a caller-supplied absolute boundary
	ThresholdFixed ThresholdKind = "fixed"

	// ThresholdRateOfChange applies zscore math over the derived
	// rate series of a counter
	ThresholdRateOfChange ThresholdKind = "rate_of_change"
)

const (
	// DefaultZScoreMultiplier is the default k for zscore thresholds
	DefaultZScoreMultiplier = 3.0

	// DefaultPercentile is the default p for percentile thresholds
	DefaultPercentile = 0.99

	// madScale approximates stddev from MAD under normality
	madScale = 1.4826
)

// ThresholdSpec is the caller's choice of threshold method. Value is the
// sensitivity parameter: the multiplier k for zscore/mad/rate_of_change,
// the percentile p in [0,1] for percentile, and the absolute boundary
// for fixed. A nil Value selects the method default; fixed has no
// default and rejects a nil Value.
type ThresholdSpec struct {
	Kind  ThresholdKind
	Value *float64
}

// Threshold is a resolved decision boundary
type Threshold struct {
	Kind        ThresholdKind `json:"kind"`
	Value       float64       `json:"value"`
	Description string        `json:"description"`
}

// Validate checks the threshold parameters against the metric kind.
// Called before any series is fetched.
func (s ThresholdSpec) Validate(kind MetricKind) error {
	switch s.Kind {
	case ThresholdZScore, ThresholdPercentile, ThresholdMAD:
	case ThresholdFixed:
		if s.Value == nil {
			return NewInvalidParameter("fixed threshold requires an explicit value")
		}
	case ThresholdRateOfChange:
		if kind != MetricKindCounter {
			return NewInvalidParameter(
				fmt.Sprintf("rate_of_change threshold is only valid for counter series, got %s", kind))
		}
	default:
		return NewInvalidParameter(fmt.Sprintf("unknown threshold kind: %s", s.Kind))
	}

	if s.Kind == ThresholdPercentile && s.Value != nil && (*s.Value <= 0 || *s.Value >= 1) {
		return NewInvalidParameter("percentile threshold value must be in (0,1)")
	}

	return nil
}

// Resolve derives the scalar decision boundary from baseline statistics.
// baselineValues are the raw (post metric-kind transform) baseline
// values, needed for arbitrary percentiles.
func (s ThresholdSpec) Resolve(stats *BaselineStats, baselineValues []float64) (*Threshold, error) {
	switch s.Kind {
	case ThresholdZScore, ThresholdRateOfChange:
		k := DefaultZScoreMultiplier
		if s.Value != nil {
			k = *s.Value
		}
		return &Threshold{
			Kind:        s.Kind,
			Value:       stats.Mean + k*stats.StdDev,
			Description: fmt.Sprintf("mean + %.2g*stddev", k),
		}, nil

	case ThresholdPercentile:
		p := DefaultPercentile
		if s.Value != nil {
			p = *s.Value
		}
		v, err := Percentile(baselineValues, p)
		if err != nil {
			return nil, err
		}
		return &Threshold{
			Kind:        s.Kind,
			Value:       v,
			Description: fmt.Sprintf("baseline p%g", p*100),
		}, nil

	case ThresholdMAD:
		k := DefaultZScoreMultiplier
		if s.Value != nil {
			k = *s.Value
		}
		median := stats.Percentiles.P50
		return &Threshold{
			Kind:        s.Kind,
			Value:       median + k*madScale*stats.MAD,
			Description: fmt.Sprintf("median + %.2g*scaled MAD", k),
		}, nil

	case ThresholdFixed:
		if s.Value == nil {
			return nil, NewInvalidParameter("fixed threshold requires an explicit value")
		}
		return &Threshold{
			Kind:        s.Kind,
			Value:       *s.Value,
			Description: "fixed",
		}, nil

	default:
		return nil, NewInvalidParameter(fmt.Sprintf("unknown threshold kind: %s", s.Kind))
	}
}
