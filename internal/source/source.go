// Package source provides the series-fetching boundary of Insight: the
// Source interface the engine consumes, the SoltixDB HTTP adapter, and
// an optional Redis caching layer. Query construction, pagination, and
// response parsing all live here, outside the statistical core.
package source

import (
	"context"
	"time"

	"github.com/soltixdb/insight/internal/analysis"
)

// Aggregation selects how the backend buckets raw points
type Aggregation string

const (
	// AggregationAvg averages raw values per bucket (gauge/histogram series)
	AggregationAvg Aggregation = "avg"

	// AggregationMax takes the bucket maximum (cumulative counter series)
	AggregationMax Aggregation = "max"

	// AggregationCount counts raw points per bucket (log volume series)
	AggregationCount Aggregation = "count"
)

// Query describes one bucketed series fetch
type Query struct {
	Collection  string
	Field       string      // Empty for count queries
	Aggregation Aggregation // Defaults to avg
	Pattern     string      // Optional text token filter (log pattern series)
	Interval    time.Duration
	Start       time.Time
	End         time.Time
}

// Source supplies ordered bucketed series for analysis. Implementations
// must return one point per interval bucket in [Start, End), with a nil
// value for empty buckets, and surface fetch failures as
// analysis.ErrSourceUnavailable.
type Source interface {
	FetchBucketed(ctx context.Context, q Query) (analysis.TimeSeriesData, error)
}

// EnrichmentSource optionally decorates anomalies with sampled context
// around a timestamp. A nil EnrichmentSource (or a nil result) leaves
// anomalies undecorated; scoring is unaffected either way.
type EnrichmentSource interface {
	SampleContext(ctx context.Context, at time.Time, window time.Duration) *analysis.AnomalyContext
}
